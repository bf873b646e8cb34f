package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/wyfcoding/ssrequity/internal/auth/domain"
	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
)

type fakeVerifier struct {
	identity *authdomain.Identity
	err      error
	calls    int
}

func (v *fakeVerifier) Verify(ctx context.Context, key string) (*authdomain.Identity, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type fakeRepo struct {
	err     error
	uploads []*domain.UploadBatch
	rows    [][]*domain.PositionRow
}

func (r *fakeRepo) StoreBatch(ctx context.Context, upload *domain.UploadBatch, rows []*domain.PositionRow) error {
	if r.err != nil {
		return r.err
	}
	r.uploads = append(r.uploads, upload)
	r.rows = append(r.rows, rows)
	return nil
}

type fakePublisher struct {
	err    error
	events []domain.BatchStoredEvent
}

func (p *fakePublisher) PublishBatchStored(ctx context.Context, event domain.BatchStoredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

const validCSV = "ticker,instrument_type,country,quantity,notional,as_of_date\n" +
	"AAPL,EQUITY,US,\"1,000\",50000.25,2024-01-15\n" +
	"MSFT,EQUITY,US,200,8000,2024-01-15\n"

func newService(v *fakeVerifier, r *fakeRepo, p *fakePublisher) *ImportService {
	var pub domain.EventPublisher
	if p != nil {
		pub = p
	}
	return NewImportService(1<<20, v, r, pub)
}

func TestImport(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{KeyID: 1, ClientID: 42, Name: "acme"}}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	svc := newService(verifier, repo, publisher)

	result, err := svc.Import(context.Background(), "ssr_key", []byte(validCSV), "fund_positions.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.ClientID)
	assert.Equal(t, 2, result.TotalRows)
	assert.NotEmpty(t, result.BatchID)

	require.Len(t, repo.uploads, 1)
	upload := repo.uploads[0]
	assert.Equal(t, result.BatchID, upload.BatchID)
	assert.Equal(t, "fund_positions.csv", upload.FileName)
	assert.Equal(t, 2, upload.TotalRows)

	require.Len(t, repo.rows, 1)
	rows := repo.rows[0]
	require.Len(t, rows, 2)
	assert.Equal(t, "1000", rows[0].Quantity.String())
	assert.Equal(t, 2, rows[0].SourceRowNo)
	assert.Equal(t, 3, rows[1].SourceRowNo)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, result.BatchID, publisher.events[0].BatchID)
	assert.Equal(t, "2024-01-15", publisher.events[0].AsOfDate)
}

func TestImportBatchIDsAreUnique(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	svc := newService(verifier, repo, nil)

	first, err := svc.Import(context.Background(), "k", []byte(validCSV), "a.csv")
	require.NoError(t, err)
	second, err := svc.Import(context.Background(), "k", []byte(validCSV), "a.csv")
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
}

func TestImportDefaultFilename(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	svc := newService(verifier, repo, nil)

	_, err := svc.Import(context.Background(), "k", []byte(validCSV), "")
	require.NoError(t, err)

	require.Len(t, repo.uploads, 1)
	assert.Equal(t, DefaultFilename, repo.uploads[0].FileName)
}

func TestImportEmptyUpload(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	svc := newService(verifier, repo, nil)

	_, err := svc.Import(context.Background(), "k", nil, "a.csv")
	assert.ErrorIs(t, err, domain.ErrEmptyUpload)
	assert.Zero(t, verifier.calls, "auth is not consulted for empty uploads")
	assert.Empty(t, repo.uploads)
}

func TestImportTooLarge(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	svc := NewImportService(16, verifier, repo, nil)

	raw := []byte(strings.Repeat("x", 17))
	_, err := svc.Import(context.Background(), "k", raw, "a.csv")

	var tooLarge *domain.UploadTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(16), tooLarge.Limit)
	assert.Empty(t, repo.uploads)
}

func TestImportUnauthenticated(t *testing.T) {
	verifier := &fakeVerifier{err: authdomain.ErrUnauthenticated}
	repo := &fakeRepo{}
	svc := newService(verifier, repo, nil)

	_, err := svc.Import(context.Background(), "bogus", []byte(validCSV), "a.csv")
	assert.ErrorIs(t, err, authdomain.ErrUnauthenticated)
	assert.Empty(t, repo.uploads, "no writes on auth failure")
}

func TestImportValidationFailureWritesNothing(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	svc := newService(verifier, repo, nil)

	// Second row has an invalid quantity; nothing may be persisted.
	raw := []byte("ticker,instrument_type,country,quantity,notional,as_of_date\n" +
		"AAPL,EQUITY,US,100,1,2024-01-15\n" +
		"MSFT,EQUITY,US,abc,1,2024-01-15\n")

	_, err := svc.Import(context.Background(), "k", raw, "a.csv")

	var rowErr *domain.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.RowNo)
	assert.Empty(t, repo.uploads)
	assert.Empty(t, repo.rows)
}

func TestImportRepositoryFailure(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{err: errors.New("deadlock")}
	svc := newService(verifier, repo, nil)

	_, err := svc.Import(context.Background(), "k", []byte(validCSV), "a.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store upload batch")
}

func TestImportPublisherFailureIsTolerated(t *testing.T) {
	verifier := &fakeVerifier{identity: &authdomain.Identity{ClientID: 1}}
	repo := &fakeRepo{}
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := newService(verifier, repo, publisher)

	result, err := svc.Import(context.Background(), "k", []byte(validCSV), "a.csv")
	require.NoError(t, err, "publish failures never fail the import")
	assert.Equal(t, 2, result.TotalRows)
	require.Len(t, repo.uploads, 1)
}
