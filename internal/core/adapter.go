package core

import "fmt"

// Format identifies a supported interchange format. It is a closed
// enumeration: adding a format means adding a tag here and one Adapter
// implementation, not new branches in the import and export paths.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat resolves a wire-level format string. It returns
// ErrUnknownFormat for anything other than the recognized tags.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel:
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Adapter converts between an opaque payload and the pipeline's row types.
// Implementations are stateless and safe for concurrent use.
type Adapter interface {
	// Decode parses the payload into ordered raw rows. A payload that is
	// structurally broken for the format fails as a whole; per-row gaps
	// (short lines, missing cells) degrade field-by-field instead and are
	// left for validation to judge.
	Decode(data []byte) ([]RawRow, error)

	// Encode serializes leads in order into the format's output bytes.
	Encode(leads []Lead) ([]byte, error)

	// MIMEType is the Content-Type for encoded output.
	MIMEType() string

	// Ext is the filename extension for encoded output, without the dot.
	Ext() string
}

// adapterFor returns the adapter for a parsed format tag.
func adapterFor(f Format) (Adapter, bool) {
	switch f {
	case FormatCSV:
		return csvAdapter{}, true
	case FormatExcel:
		return excelAdapter{}, true
	default:
		return nil, false
	}
}
