package core

import "time"

// Lead is the canonical, fully-typed representation of one lead record.
// Optional fields are pointers so the distinction between "absent" and a
// concrete value (including zero) survives normalization and storage.
type Lead struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"userId"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`

	County     *string `json:"county"`
	OwnerName  *string `json:"ownerName"`
	OwnerPhone *string `json:"ownerPhone"`
	OwnerEmail *string `json:"ownerEmail"`

	PropertyType string   `json:"propertyType"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	SquareFeet   *int     `json:"squareFeet"`
	YearBuilt    *int     `json:"yearBuilt"`

	EstimatedValue  *float64 `json:"estimatedValue"`
	EstimatedEquity *float64 `json:"estimatedEquity"`
	MortgageBalance *float64 `json:"mortgageBalance"`
	LastSaleDate    *string  `json:"lastSaleDate"`
	LastSalePrice   *float64 `json:"lastSalePrice"`

	Status string  `json:"status"`
	Notes  *string `json:"notes"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Verdict is the outcome of validating one raw row.
// Errors holds every violation found, in check order; a row missing three
// required fields reports all three.
type Verdict struct {
	Valid  bool
	Errors []string
}

// RowError describes one input row that was excluded from the insert set.
// Row numbering is 1-based and excludes the header row.
type RowError struct {
	Row    int      `json:"row"`
	Data   RawRow   `json:"data"`
	Errors []string `json:"errors"`
}

// ImportReport is the result of one import call.
// Imported + Failed always equals the number of decoded input rows.
type ImportReport struct {
	Imported    int        `json:"imported"`
	Failed      int        `json:"failed"`
	InsertedIDs []string   `json:"insertedIds"`
	RowErrors   []RowError `json:"errors,omitempty"`
}

// ExportPayload is the result of one export call: the encoded bytes plus
// the content metadata the transport layer needs to serve them.
type ExportPayload struct {
	MIMEType string
	Filename string
	Bytes    []byte
}
