package batch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
	"github.com/Up-Bizz/ContactVerifier/internal/store"
)

// fakeVerifier returns scripted results keyed by record ID.
type fakeVerifier struct {
	results map[string]model.VerificationResult
	calls   []string
}

func (f *fakeVerifier) Verify(ctx context.Context, rec model.Record) model.VerificationResult {
	f.calls = append(f.calls, rec.ID)
	return f.results[rec.ID]
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "batch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func seedRecords(t *testing.T, st store.Store, ids ...string) {
	t.Helper()
	recs := make([]model.Record, len(ids))
	for i, id := range ids {
		recs[i] = model.Record{
			ID:        id,
			FirstName: "Jane",
			LastName:  id,
			SourceURL: "https://example.com/" + id,
		}
	}
	n, err := st.InsertRecords(context.Background(), recs)
	require.NoError(t, err)
	require.Equal(t, len(ids), n)
}

func TestRunner_ProcessesQueueInOrder(t *testing.T) {
	st := newTestStore(t)
	seedRecords(t, st, "a", "b", "c")

	v := &fakeVerifier{results: map[string]model.VerificationResult{
		"a": {NamePresent: true, PhonePresent: true, TitlePresent: true},
		"b": {},
		"c": {Error: "After 2 attempts, did not reach website."},
	}}

	sum, err := New(st, v).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 2, Errors: 1, NamesFound: 1}, sum)
	assert.Equal(t, []string{"a", "b", "c"}, v.calls)

	counts, err := st.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts[model.StatusProcessed])
	assert.Equal(t, 1, counts[model.StatusError])
	assert.Zero(t, counts[model.StatusNotProcessed])
}

func TestRunner_ReclaimsOrphanedRecords(t *testing.T) {
	st := newTestStore(t)
	seedRecords(t, st, "a", "b")

	// Simulate a crashed run that left a record stuck in processing.
	require.NoError(t, st.SetStatus(context.Background(), "a", model.StatusProcessing))

	v := &fakeVerifier{results: map[string]model.VerificationResult{
		"a": {NamePresent: true},
		"b": {NamePresent: true},
	}}

	sum, err := New(st, v).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.Contains(t, v.calls, "a")
}

func TestRunner_EmptyQueue(t *testing.T) {
	st := newTestStore(t)

	sum, err := New(st, &fakeVerifier{}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}

func TestRunner_CancelledContext(t *testing.T) {
	st := newTestStore(t)
	seedRecords(t, st, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := &fakeVerifier{}
	_, err := New(st, v).Run(ctx)

	require.Error(t, err)
	assert.Empty(t, v.calls)
}

// stuckStore keeps handing out the same record because every status update
// fails.
type stuckStore struct {
	rec model.Record
}

func (s *stuckStore) InsertRecords(ctx context.Context, recs []model.Record) (int, error) {
	return 0, nil
}

func (s *stuckStore) NextUnprocessed(ctx context.Context) (*model.Record, error) {
	rec := s.rec
	return &rec, nil
}

func (s *stuckStore) SetStatus(ctx context.Context, id string, status model.RecordStatus) error {
	return eris.New("disk full")
}

func (s *stuckStore) SaveResult(ctx context.Context, id string, result *model.VerificationResult) error {
	return eris.New("disk full")
}

func (s *stuckStore) SetError(ctx context.Context, id string, msg string) error {
	return eris.New("disk full")
}

func (s *stuckStore) ResetProcessing(ctx context.Context) (int, error) { return 0, nil }

func (s *stuckStore) ListRecords(ctx context.Context, filter store.RecordFilter) ([]model.Record, error) {
	return nil, nil
}

func (s *stuckStore) CountByStatus(ctx context.Context) (map[model.RecordStatus]int, error) {
	return nil, nil
}

func (s *stuckStore) Migrate(ctx context.Context) error { return nil }
func (s *stuckStore) Close() error                      { return nil }

func TestRunner_AbortsWhenRecordKeepsReturning(t *testing.T) {
	st := &stuckStore{rec: model.Record{ID: "loop", SourceURL: "https://example.com"}}

	sum, err := New(st, &fakeVerifier{}).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "keeps returning")
	assert.Equal(t, 2, sum.Errors)
}
