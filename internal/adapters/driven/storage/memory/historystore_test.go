package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

func TestHistoryStore_RecordAndRecent(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for _, q := range []string{"pump", "impeller", "oil filter"} {
		require.NoError(t, store.Record(ctx, driven.HistoryEntry{
			Query:      q,
			SearchedAt: time.Now(),
		}))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "oil filter", entries[0].Query)
	assert.Equal(t, "impeller", entries[1].Query)
}

func TestHistoryStore_Clear(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, driven.HistoryEntry{Query: "pump"}))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryStore_EmptyRecent(t *testing.T) {
	store := NewHistoryStore()

	entries, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
