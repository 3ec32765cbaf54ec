package core

// normalize.go turns validated raw rows into canonical leads.
//
// Alias resolution (snake_case preferred over camelCase) happens in
// RawRow.Lookup; this file handles typing, defaulting, and owner binding.
// Numeric coercion degrades to null on any parse failure instead of
// raising: normalization never rejects a row, that is the validator's job.

import (
	"strconv"
	"strings"
)

// Defaults applied when the input carries no value for the field.
const (
	DefaultPropertyType = "Unknown"
	DefaultStatus       = "New"
)

// ParseIntOrNull parses s as a base-10 integer. Absent or unparseable input
// yields nil, never zero; a literal "0" parses to a concrete 0.
func ParseIntOrNull(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseFloatOrNull parses s as a decimal number with the same null-on-failure
// contract as ParseIntOrNull.
func ParseFloatOrNull(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Normalize converts a row that passed validation into a canonical Lead
// owned by userID. Every declared field ends up either concrete or
// explicitly nil; there is no "missing key" state on the output.
func Normalize(row RawRow, userID string) Lead {
	return Lead{
		UserID: userID,

		Address: lookupString(row, FieldAddress),
		City:    lookupString(row, FieldCity),
		State:   lookupString(row, FieldState),
		ZipCode: lookupString(row, FieldZipCode),

		County:     lookupOptional(row, FieldCounty),
		OwnerName:  lookupOptional(row, FieldOwnerName),
		OwnerPhone: lookupOptional(row, FieldOwnerPhone),
		OwnerEmail: lookupOptional(row, FieldOwnerEmail),

		PropertyType: lookupDefault(row, FieldPropertyType, DefaultPropertyType),
		Bedrooms:     lookupInt(row, FieldBedrooms),
		Bathrooms:    lookupFloat(row, FieldBathrooms),
		SquareFeet:   lookupInt(row, FieldSquareFeet),
		YearBuilt:    lookupInt(row, FieldYearBuilt),

		EstimatedValue:  lookupFloat(row, FieldEstimatedValue),
		EstimatedEquity: lookupFloat(row, FieldEstimatedEquity),
		MortgageBalance: lookupFloat(row, FieldMortgageBalance),
		LastSaleDate:    lookupOptional(row, FieldLastSaleDate),
		LastSalePrice:   lookupFloat(row, FieldLastSalePrice),

		Status: lookupDefault(row, FieldStatus, DefaultStatus),
		Notes:  lookupOptional(row, FieldNotes),
	}
}

func lookupString(row RawRow, f Field) string {
	v, _ := row.Lookup(f)
	return v
}

func lookupOptional(row RawRow, f Field) *string {
	v, ok := row.Lookup(f)
	if !ok {
		return nil
	}
	return &v
}

func lookupDefault(row RawRow, f Field, def string) string {
	if v, ok := row.Lookup(f); ok {
		return v
	}
	return def
}

func lookupInt(row RawRow, f Field) *int {
	v, ok := row.Lookup(f)
	if !ok {
		return nil
	}
	return ParseIntOrNull(v)
}

func lookupFloat(row RawRow, f Field) *float64 {
	v, ok := row.Lookup(f)
	if !ok {
		return nil
	}
	return ParseFloatOrNull(v)
}
