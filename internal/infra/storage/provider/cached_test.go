package provider

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
)

// committedStore отдает изменения транзакции другим читателям только после commit
type committedStore struct {
	mu        sync.Mutex
	committed map[int64]domain.Provider
	pending   map[int64]domain.Provider
}

func newCommittedStore(p domain.Provider) *committedStore {
	return &committedStore{
		committed: map[int64]domain.Provider{p.ID: p},
		pending:   map[int64]domain.Provider{},
	}
}

func (s *committedStore) Create(_ context.Context, p *domain.Provider) (*domain.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed[p.ID] = *p
	return p, nil
}

func (s *committedStore) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dbmetrics.IsInTransaction(ctx) {
		if p, ok := s.pending[id]; ok {
			return &p, nil
		}
	}
	p, ok := s.committed[id]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return &p, nil
}

func (s *committedStore) SetApproved(ctx context.Context, id int64, approved bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.committed[id]
	if !ok {
		return ErrProviderNotFound
	}
	p.IsApproved = approved
	p.UpdatedAt = now
	if dbmetrics.IsInTransaction(ctx) {
		s.pending[id] = p
		return nil
	}
	s.committed[id] = p
	return nil
}

func (s *committedStore) commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		s.committed[id] = p
	}
	s.pending = map[int64]domain.Provider{}
}

// openTx маркер транзакции в контексте, запросы не выполняет
type openTx struct{}

func (openTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (openTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (openTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (openTx) Commit() error   { return nil }
func (openTx) Rollback() error { return nil }

func TestCachedRepository_ReadBeforeCommitIsDroppedByInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newCommittedStore(domain.Provider{ID: 7, UserID: 21, FullName: "Dr. Thandi Nkosi"})
	cached := NewCachedRepository(store, time.Minute)

	txCtx := dbmetrics.WithTx(ctx, openTx{})
	require.NoError(t, cached.SetApproved(txCtx, 7, true, testNow))

	// чтение вне транзакции до commit видит старую строку и кладет её в кэш
	stale, err := cached.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.False(t, stale.IsApproved)

	store.commit()

	cachedAfterCommit, err := cached.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.False(t, cachedAfterCommit.IsApproved)

	cached.Invalidate(7)

	fresh, err := cached.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, fresh.IsApproved)
}

func TestCachedRepository_BypassesCacheInTransaction(t *testing.T) {
	ctx := context.Background()
	store := newCommittedStore(domain.Provider{ID: 7, UserID: 21})
	cached := NewCachedRepository(store, time.Minute)

	_, err := cached.GetByID(ctx, 7)
	require.NoError(t, err)

	txCtx := dbmetrics.WithTx(ctx, openTx{})
	require.NoError(t, cached.SetApproved(txCtx, 7, true, testNow))

	inTx, err := cached.GetByID(txCtx, 7)
	require.NoError(t, err)
	assert.True(t, inTx.IsApproved)
}
