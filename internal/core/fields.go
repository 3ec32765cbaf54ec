package core

import (
	"encoding/json"
	"strings"
)

// Field is a canonical lead attribute name. Canonical names use snake_case;
// input headers may also use the camelCase spelling of the same field.
type Field string

const (
	FieldAddress         Field = "address"
	FieldCity            Field = "city"
	FieldState           Field = "state"
	FieldZipCode         Field = "zip_code"
	FieldCounty          Field = "county"
	FieldOwnerName       Field = "owner_name"
	FieldOwnerPhone      Field = "owner_phone"
	FieldOwnerEmail      Field = "owner_email"
	FieldPropertyType    Field = "property_type"
	FieldBedrooms        Field = "bedrooms"
	FieldBathrooms       Field = "bathrooms"
	FieldSquareFeet      Field = "square_feet"
	FieldYearBuilt       Field = "year_built"
	FieldEstimatedValue  Field = "estimated_value"
	FieldEstimatedEquity Field = "estimated_equity"
	FieldMortgageBalance Field = "mortgage_balance"
	FieldLastSaleDate    Field = "last_sale_date"
	FieldLastSalePrice   Field = "last_sale_price"
	FieldStatus          Field = "status"
	FieldNotes           Field = "notes"
)

// aliasKind records which spelling of a field a header used.
type aliasKind int

const (
	aliasSnake aliasKind = iota
	aliasCamel
)

type fieldAlias struct {
	field Field
	kind  aliasKind
}

// columnAliases maps header names to canonical fields. Single-word fields
// have one spelling; multi-word fields accept both snake_case and camelCase.
// Headers not listed here are ignored by normalization.
var columnAliases = map[string]fieldAlias{
	"address": {FieldAddress, aliasSnake},
	"city":    {FieldCity, aliasSnake},
	"state":   {FieldState, aliasSnake},
	"county":  {FieldCounty, aliasSnake},
	"status":  {FieldStatus, aliasSnake},
	"notes":   {FieldNotes, aliasSnake},

	"bedrooms":  {FieldBedrooms, aliasSnake},
	"bathrooms": {FieldBathrooms, aliasSnake},

	"zip_code": {FieldZipCode, aliasSnake},
	"zipcode":  {FieldZipCode, aliasCamel},

	"owner_name": {FieldOwnerName, aliasSnake},
	"ownername":  {FieldOwnerName, aliasCamel},

	"owner_phone": {FieldOwnerPhone, aliasSnake},
	"ownerphone":  {FieldOwnerPhone, aliasCamel},

	"owner_email": {FieldOwnerEmail, aliasSnake},
	"owneremail":  {FieldOwnerEmail, aliasCamel},

	"property_type": {FieldPropertyType, aliasSnake},
	"propertytype":  {FieldPropertyType, aliasCamel},

	"square_feet": {FieldSquareFeet, aliasSnake},
	"squarefeet":  {FieldSquareFeet, aliasCamel},

	"year_built": {FieldYearBuilt, aliasSnake},
	"yearbuilt":  {FieldYearBuilt, aliasCamel},

	"estimated_value": {FieldEstimatedValue, aliasSnake},
	"estimatedvalue":  {FieldEstimatedValue, aliasCamel},

	"estimated_equity": {FieldEstimatedEquity, aliasSnake},
	"estimatedequity":  {FieldEstimatedEquity, aliasCamel},

	"mortgage_balance": {FieldMortgageBalance, aliasSnake},
	"mortgagebalance":  {FieldMortgageBalance, aliasCamel},

	"last_sale_date": {FieldLastSaleDate, aliasSnake},
	"lastsaledate":   {FieldLastSaleDate, aliasCamel},

	"last_sale_price": {FieldLastSalePrice, aliasSnake},
	"lastsaleprice":   {FieldLastSalePrice, aliasCamel},
}

// rawCell holds the values a row supplied for one canonical field, keeping
// the snake_case and camelCase spellings separate so precedence between
// them stays explicit.
type rawCell struct {
	snake    string
	camel    string
	hasSnake bool
	hasCamel bool
}

// RawRow is one decoded, untyped input record prior to validation.
// Cells are keyed by canonical field; columns with unrecognized headers are
// ignored for validation and normalization but retained in the source map
// so row-error reports show the row as it was received.
type RawRow struct {
	cells  map[Field]rawCell
	source map[string]string
}

// NewRawRow returns an empty row ready for Set calls.
func NewRawRow() RawRow {
	return RawRow{
		cells:  make(map[Field]rawCell),
		source: make(map[string]string),
	}
}

// Set records one cell under its original header. The header is matched
// case-insensitively against the alias table; unknown headers are kept only
// for diagnostics. Values are trimmed of surrounding whitespace.
func (r RawRow) Set(header, value string) {
	header = strings.TrimSpace(header)
	value = strings.TrimSpace(value)
	if header == "" {
		return
	}
	r.source[header] = value

	alias, ok := columnAliases[strings.ToLower(header)]
	if !ok {
		return
	}
	cell := r.cells[alias.field]
	if alias.kind == aliasSnake {
		cell.snake = value
		cell.hasSnake = true
	} else {
		cell.camel = value
		cell.hasCamel = true
	}
	r.cells[alias.field] = cell
}

// Lookup resolves the value for f with snake_case precedence: a non-empty
// snake_case cell wins; an absent or empty one falls back to the camelCase
// cell. The second return is false when neither spelling carries a value.
func (r RawRow) Lookup(f Field) (string, bool) {
	cell, ok := r.cells[f]
	if !ok {
		return "", false
	}
	if cell.hasSnake && cell.snake != "" {
		return cell.snake, true
	}
	if cell.hasCamel && cell.camel != "" {
		return cell.camel, true
	}
	return "", false
}

// IsEmpty reports whether every cell of the row, recognized or not, is blank.
func (r RawRow) IsEmpty() bool {
	for _, v := range r.source {
		if v != "" {
			return false
		}
	}
	return true
}

// Source returns the row's original header-to-value cells.
func (r RawRow) Source() map[string]string {
	return r.source
}

// MarshalJSON renders the row as the original header-to-value object, which
// is what import reports echo back for failed rows.
func (r RawRow) MarshalJSON() ([]byte, error) {
	if r.source == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.source)
}
