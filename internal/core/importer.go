package core

import (
	"context"
	"log/slog"
)

// Pipeline runs batch imports and exports against a Store. It holds no
// per-call state; one Pipeline serves any number of concurrent requests.
type Pipeline struct {
	store Store
}

// NewPipeline creates a Pipeline backed by the given store.
func NewPipeline(store Store) *Pipeline {
	return &Pipeline{store: store}
}

// ImportBatch decodes payload in the given format, validates and normalizes
// every row, and inserts the valid subset in one transaction owned by
// userID.
//
// Row numbering in the report is 1-based and excludes the header. Rows that
// fail validation never abort the batch; they are excluded from the insert
// set and fully described in the report. A decode or storage failure aborts
// the whole call with no report.
func (p *Pipeline) ImportBatch(ctx context.Context, payload []byte, format Format, userID string) (*ImportReport, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if len(payload) == 0 {
		return nil, ErrPayloadRequired
	}
	adapter, ok := adapterFor(format)
	if !ok {
		return nil, ErrUnknownFormat
	}

	rows, err := adapter.Decode(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	var (
		validLeads []Lead
		rowErrors  []RowError
	)
	for i, row := range rows {
		verdict := Validate(row)
		if verdict.Valid {
			validLeads = append(validLeads, Normalize(row, userID))
			continue
		}
		rowErrors = append(rowErrors, RowError{
			Row:    i + 1,
			Data:   row,
			Errors: verdict.Errors,
		})
	}

	insertedIDs := []string{}
	if len(validLeads) > 0 {
		ids, err := p.store.InsertBatch(ctx, validLeads)
		if err != nil {
			return nil, &StorageError{Err: err}
		}
		insertedIDs = ids
	}

	slog.InfoContext(ctx, "import batch processed",
		"user_id", userID,
		"format", format,
		"rows", len(rows),
		"imported", len(validLeads),
		"failed", len(rowErrors),
	)

	return &ImportReport{
		Imported:    len(validLeads),
		Failed:      len(rowErrors),
		InsertedIDs: insertedIDs,
		RowErrors:   rowErrors,
	}, nil
}
