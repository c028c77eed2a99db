package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearfin/near/internal/database"
	"github.com/nearfin/near/internal/ledger"
	"github.com/nearfin/near/internal/ledger/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "near.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := store.New(db)
	require.NoError(t, err)

	return s
}

func TestStore_EmptySlot(t *testing.T) {
	s := newStore(t)

	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, ledger.ErrEmptySlot)
}

func TestStore_WriteReadOverwrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, []byte(`{"v":1}`)))

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), got)

	require.NoError(t, s.Write(ctx, []byte(`{"v":2}`)))

	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got, "save overwrites the prior value")
}

func TestStore_RoundTripState(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	want := ledger.Seed()
	data, err := ledger.EncodeState(want)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, data))

	raw, err := s.Read(ctx)
	require.NoError(t, err)

	got, err := ledger.DecodeState(raw)
	require.NoError(t, err)
	assert.Len(t, got.Accounts, len(want.Accounts))
	assert.Len(t, got.Transactions, len(want.Transactions))
	assert.Len(t, got.Categories, len(want.Categories))
	assert.Len(t, got.Budgets, len(want.Budgets))
}
