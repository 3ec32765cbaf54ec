package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory transactional store. Leads are only visible in
// saved after a fully successful InsertBatch, mirroring the rollback
// behavior of the real store.
type fakeStore struct {
	mu     sync.Mutex
	saved  []Lead
	nextID int

	// failOnInsert makes InsertBatch fail when it reaches the lead whose
	// address matches, after earlier leads in the batch "succeeded".
	failOnInsert string
	listErr      error
}

func (s *fakeStore) InsertBatch(_ context.Context, leads []Lead) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]Lead, 0, len(leads))
	ids := make([]string, 0, len(leads))

	for _, lead := range leads {
		if s.failOnInsert != "" && lead.Address == s.failOnInsert {
			// Whole transaction rolls back: nothing from this batch lands.
			return nil, fmt.Errorf("duplicate key value violates unique constraint")
		}
		s.nextID++
		lead.ID = fmt.Sprintf("lead-%d", s.nextID)
		ids = append(ids, lead.ID)
		staged = append(staged, lead)
	}

	s.saved = append(s.saved, staged...)
	return ids, nil
}

func (s *fakeStore) LeadsByUser(_ context.Context, userID string) ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Lead
	// saved is append-ordered; newest first means reverse order.
	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].UserID == userID {
			out = append(out, s.saved[i])
		}
	}
	return out, nil
}

const sampleCSV = "address,city,state,zip_code,owner_phone\n" +
	"123 Main St,Springfield,IL,62701,+12175551234\n" +
	",Springfield,IL,62701,\n" +
	"9 Oak Ave,Reno,NV,89501,123\n" +
	"42 Elm St,Dayton,OH,45402,\n"

func TestImportBatch(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(store)

	report, err := p.ImportBatch(context.Background(), []byte(sampleCSV), FormatCSV, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, []string{"lead-1", "lead-2"}, report.InsertedIDs)
	require.Len(t, report.RowErrors, 2)

	// Row numbering is 1-based, header excluded, and row order is preserved.
	assert.Equal(t, 2, report.RowErrors[0].Row)
	assert.Equal(t, []string{"Address is required"}, report.RowErrors[0].Errors)
	assert.Equal(t, 3, report.RowErrors[1].Row)
	assert.Equal(t, []string{"Invalid phone number format"}, report.RowErrors[1].Errors)

	// Every stored lead carries the caller's identity.
	require.Len(t, store.saved, 2)
	for _, lead := range store.saved {
		assert.Equal(t, "user-1", lead.UserID)
	}
	assert.Equal(t, "123 Main St", store.saved[0].Address)
	assert.Equal(t, "42 Elm St", store.saved[1].Address)
}

func TestImportBatch_RowAccounting(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(store)

	report, err := p.ImportBatch(context.Background(), []byte(sampleCSV), FormatCSV, "user-1")
	require.NoError(t, err)

	// Imported + Failed always equals the number of decoded rows.
	assert.Equal(t, 4, report.Imported+report.Failed)
}

func TestImportBatch_FullyInvalidIsStillAReport(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(store)

	payload := []byte("address,city\n,\n,\n")
	report, err := p.ImportBatch(context.Background(), payload, FormatCSV, "user-1")
	require.NoError(t, err, "an all-invalid batch is a successful call")

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 2, report.Failed)
	assert.Empty(t, report.InsertedIDs)
	assert.NotNil(t, report.InsertedIDs, "insertedIds must serialize as [], not null")
	assert.Empty(t, store.saved, "no storage traffic for an empty valid set")
}

func TestImportBatch_RequestShapeErrors(t *testing.T) {
	p := NewPipeline(&fakeStore{})
	ctx := context.Background()
	payload := []byte("address\n123 Main St\n")

	_, err := p.ImportBatch(ctx, payload, FormatCSV, "")
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = p.ImportBatch(ctx, nil, FormatCSV, "user-1")
	assert.ErrorIs(t, err, ErrPayloadRequired)

	_, err = p.ImportBatch(ctx, payload, Format("tsv"), "user-1")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestImportBatch_DecodeFailureAbortsCall(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(store)

	report, err := p.ImportBatch(context.Background(), []byte("not a workbook"), FormatExcel, "user-1")
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.Nil(t, report, "no partial report on decode failure")
	assert.Empty(t, store.saved)
}

func TestImportBatch_Atomicity(t *testing.T) {
	// Both rows are valid; the second violates a storage constraint.
	store := &fakeStore{failOnInsert: "9 Oak Ave"}
	p := NewPipeline(store)

	payload := []byte("address,city,state,zip_code\n" +
		"123 Main St,Springfield,IL,62701\n" +
		"9 Oak Ave,Reno,NV,89501\n")

	report, err := p.ImportBatch(context.Background(), payload, FormatCSV, "user-1")
	require.Error(t, err)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr, "storage failure must not look like validation")
	assert.Nil(t, report)
	assert.Empty(t, store.saved, "row one must not survive a failed batch")
}

func TestImportBatch_ExcelPayload(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]any{
		{"address", "city", "state", "zipCode", "owner_email"},
		{"123 Main St", "Springfield", "IL", "62701", "john@example.com"},
		{"9 Oak Ave", "Reno", "NV", "", "bad-email"},
	})

	store := &fakeStore{}
	p := NewPipeline(store)

	report, err := p.ImportBatch(context.Background(), data, FormatExcel, "user-7")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.RowErrors, 1)
	assert.ElementsMatch(t, []string{"Zip code is required", "Invalid email format"}, report.RowErrors[0].Errors)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "user-7", store.saved[0].UserID)
	require.NotNil(t, store.saved[0].OwnerEmail)
	assert.Equal(t, "john@example.com", *store.saved[0].OwnerEmail)
}

func TestImportBatch_ConcurrentCallsAreIndependent(t *testing.T) {
	// The pipeline itself is stateless; two owners importing at once must
	// not bleed into each other's reports.
	store := &fakeStore{}
	p := NewPipeline(store)

	done := make(chan error, 2)
	for _, user := range []string{"user-a", "user-b"} {
		go func(u string) {
			_, err := p.ImportBatch(context.Background(), []byte(sampleCSV), FormatCSV, u)
			done <- err
		}(user)
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}

	var a, b int
	for _, lead := range store.saved {
		switch lead.UserID {
		case "user-a":
			a++
		case "user-b":
			b++
		}
	}
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

var errConnRefused = errors.New("connection refused")
