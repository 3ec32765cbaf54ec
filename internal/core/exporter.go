package core

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// exportColumns is the fixed column order for every export, regardless of
// format. Import recognizes the camelCase spellings, so a stripped export
// round-trips back through ImportBatch.
var exportColumns = []string{
	"id", "address", "city", "state", "zipCode", "county",
	"ownerName", "ownerPhone", "ownerEmail", "propertyType",
	"bedrooms", "bathrooms", "squareFeet", "yearBuilt",
	"estimatedValue", "estimatedEquity", "mortgageBalance",
	"lastSaleDate", "lastSalePrice", "status", "notes",
	"createdAt", "updatedAt",
}

// ExportBatch fetches every lead owned by userID, newest first, and encodes
// the set in the requested format. Storage is never mutated.
func (p *Pipeline) ExportBatch(ctx context.Context, format Format, userID string) (*ExportPayload, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	adapter, ok := adapterFor(format)
	if !ok {
		return nil, ErrUnknownFormat
	}

	leads, err := p.store.LeadsByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	data, err := adapter.Encode(leads)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	slog.InfoContext(ctx, "export batch produced",
		"user_id", userID,
		"format", format,
		"rows", len(leads),
		"bytes", len(data),
	)

	return &ExportPayload{
		MIMEType: adapter.MIMEType(),
		Filename: fmt.Sprintf("leads_export_%s.%s", time.Now().Format("20060102_150405"), adapter.Ext()),
		Bytes:    data,
	}, nil
}

// exportRecord flattens a lead into the exportColumns order. Nil optionals
// become empty cells.
func exportRecord(l Lead) []string {
	return []string{
		l.ID,
		l.Address,
		l.City,
		l.State,
		l.ZipCode,
		strOrEmpty(l.County),
		strOrEmpty(l.OwnerName),
		strOrEmpty(l.OwnerPhone),
		strOrEmpty(l.OwnerEmail),
		l.PropertyType,
		intOrEmpty(l.Bedrooms),
		floatOrEmpty(l.Bathrooms),
		intOrEmpty(l.SquareFeet),
		intOrEmpty(l.YearBuilt),
		floatOrEmpty(l.EstimatedValue),
		floatOrEmpty(l.EstimatedEquity),
		floatOrEmpty(l.MortgageBalance),
		strOrEmpty(l.LastSaleDate),
		floatOrEmpty(l.LastSalePrice),
		l.Status,
		strOrEmpty(l.Notes),
		timeOrEmpty(l.CreatedAt),
		timeOrEmpty(l.UpdatedAt),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func timeOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
