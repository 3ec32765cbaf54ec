package core

import "testing"

// ============================================================================
// Coercion Tests
// ============================================================================

func TestParseIntOrNull(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "plain integer", input: "3", want: intPtr(3)},
		{name: "zero is kept, not nulled", input: "0", want: intPtr(0)},
		{name: "negative", input: "-2", want: intPtr(-2)},
		{name: "surrounding whitespace", input: " 1850 ", want: intPtr(1850)},
		{name: "empty is null", input: "", want: nil},
		{name: "non-numeric is null", input: "three", want: nil},
		{name: "decimal is null for int field", input: "2.5", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIntOrNull(tt.input)
			if !intPtrEq(got, tt.want) {
				t.Errorf("ParseIntOrNull(%q) = %v, want %v", tt.input, fmtIntPtr(got), fmtIntPtr(tt.want))
			}
		})
	}
}

func TestParseFloatOrNull(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "decimal", input: "2.5", want: floatPtr(2.5)},
		{name: "integer shaped", input: "250000", want: floatPtr(250000)},
		{name: "zero is kept", input: "0", want: floatPtr(0)},
		{name: "empty is null", input: "", want: nil},
		{name: "garbage is null", input: "N/A", want: nil},
		{name: "currency symbol is null, not a guess", input: "$250,000", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFloatOrNull(tt.input)
			if !floatPtrEq(got, tt.want) {
				t.Errorf("ParseFloatOrNull(%q) = %v, want %v", tt.input, fmtFloatPtr(got), fmtFloatPtr(tt.want))
			}
		})
	}
}

// ============================================================================
// Normalize Tests
// ============================================================================

func TestNormalize_Defaults(t *testing.T) {
	row := rowFromMap(map[string]string{
		"address":  "123 Main St",
		"city":     "Springfield",
		"state":    "IL",
		"zip_code": "62701",
	})

	lead := Normalize(row, "user-1")

	if lead.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", lead.UserID)
	}
	if lead.PropertyType != DefaultPropertyType {
		t.Errorf("PropertyType = %q, want %q", lead.PropertyType, DefaultPropertyType)
	}
	if lead.Status != DefaultStatus {
		t.Errorf("Status = %q, want %q", lead.Status, DefaultStatus)
	}
	if lead.County != nil || lead.OwnerName != nil || lead.Notes != nil {
		t.Errorf("absent optional strings must be nil")
	}
	if lead.Bedrooms != nil || lead.EstimatedValue != nil || lead.LastSaleDate != nil {
		t.Errorf("absent numeric and date fields must be nil")
	}
}

func TestNormalize_ExplicitValuesOverrideDefaults(t *testing.T) {
	row := rowFromMap(map[string]string{
		"address":       "123 Main St",
		"city":          "Springfield",
		"state":         "IL",
		"zip_code":      "62701",
		"property_type": "Single Family",
		"status":        "Contacted",
	})

	lead := Normalize(row, "user-1")

	if lead.PropertyType != "Single Family" {
		t.Errorf("PropertyType = %q, want Single Family", lead.PropertyType)
	}
	if lead.Status != "Contacted" {
		t.Errorf("Status = %q, want Contacted", lead.Status)
	}
}

func TestNormalize_AliasPrecedence(t *testing.T) {
	row := NewRawRow()
	row.Set("address", "123 Main St")
	row.Set("city", "Springfield")
	row.Set("state", "IL")
	row.Set("zip_code", "62701")
	row.Set("owner_phone", "+12175551234")
	row.Set("ownerPhone", "+19998887777")

	lead := Normalize(row, "user-1")

	if lead.OwnerPhone == nil || *lead.OwnerPhone != "+12175551234" {
		t.Errorf("OwnerPhone = %v, want snake_case value +12175551234", fmtStrPtr(lead.OwnerPhone))
	}
}

func TestNormalize_EmptySnakeFallsBackToCamel(t *testing.T) {
	row := NewRawRow()
	row.Set("address", "123 Main St")
	row.Set("city", "Springfield")
	row.Set("state", "IL")
	row.Set("zip_code", "62701")
	row.Set("owner_email", "")
	row.Set("ownerEmail", "fallback@example.com")

	lead := Normalize(row, "user-1")

	if lead.OwnerEmail == nil || *lead.OwnerEmail != "fallback@example.com" {
		t.Errorf("OwnerEmail = %v, want camelCase fallback", fmtStrPtr(lead.OwnerEmail))
	}
}

func TestNormalize_NumericCoercion(t *testing.T) {
	row := rowFromMap(map[string]string{
		"address":         "123 Main St",
		"city":            "Springfield",
		"state":           "IL",
		"zip_code":        "62701",
		"bedrooms":        "3",
		"bathrooms":       "2.5",
		"square_feet":     "lots",
		"year_built":      "1987",
		"estimated_value": "250000",
		"last_sale_price": "unknown",
	})

	lead := Normalize(row, "user-1")

	if lead.Bedrooms == nil || *lead.Bedrooms != 3 {
		t.Errorf("Bedrooms = %v, want 3", fmtIntPtr(lead.Bedrooms))
	}
	if lead.Bathrooms == nil || *lead.Bathrooms != 2.5 {
		t.Errorf("Bathrooms = %v, want 2.5", fmtFloatPtr(lead.Bathrooms))
	}
	if lead.SquareFeet != nil {
		t.Errorf("unparseable SquareFeet must be nil, got %v", fmtIntPtr(lead.SquareFeet))
	}
	if lead.YearBuilt == nil || *lead.YearBuilt != 1987 {
		t.Errorf("YearBuilt = %v, want 1987", fmtIntPtr(lead.YearBuilt))
	}
	if lead.EstimatedValue == nil || *lead.EstimatedValue != 250000 {
		t.Errorf("EstimatedValue = %v, want 250000", fmtFloatPtr(lead.EstimatedValue))
	}
	if lead.LastSalePrice != nil {
		t.Errorf("unparseable LastSalePrice must be nil, got %v", fmtFloatPtr(lead.LastSalePrice))
	}
}

// Zero values survive normalization; only parse failures collapse to null.
func TestNormalize_ZeroIsNotNull(t *testing.T) {
	row := rowFromMap(map[string]string{
		"address":          "123 Main St",
		"city":             "Springfield",
		"state":            "IL",
		"zip_code":         "62701",
		"bedrooms":         "0",
		"mortgage_balance": "0",
	})

	lead := Normalize(row, "user-1")

	if lead.Bedrooms == nil || *lead.Bedrooms != 0 {
		t.Errorf("Bedrooms = %v, want concrete 0", fmtIntPtr(lead.Bedrooms))
	}
	if lead.MortgageBalance == nil || *lead.MortgageBalance != 0 {
		t.Errorf("MortgageBalance = %v, want concrete 0", fmtFloatPtr(lead.MortgageBalance))
	}
}

func TestNormalize_UnrecognizedColumnsIgnored(t *testing.T) {
	row := rowFromMap(map[string]string{
		"address":      "123 Main St",
		"city":         "Springfield",
		"state":        "IL",
		"zip_code":     "62701",
		"pipeline_tag": "hot",
		"id":           "should-not-leak",
	})

	lead := Normalize(row, "user-1")

	if lead.ID != "" {
		t.Errorf("ID must stay storage-assigned, got %q", lead.ID)
	}
	if lead.Address != "123 Main St" {
		t.Errorf("Address = %q", lead.Address)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
func strPtr(s string) *string       { return &s }

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntPtr(i *int) any {
	if i == nil {
		return "<nil>"
	}
	return *i
}

func fmtFloatPtr(f *float64) any {
	if f == nil {
		return "<nil>"
	}
	return *f
}

func fmtStrPtr(s *string) any {
	if s == nil {
		return "<nil>"
	}
	return *s
}
