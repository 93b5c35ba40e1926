package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	records := []domain.TransferRecord{
		{ID: "2-b", Timestamp: "2026-01-02T00:00:00Z", Recipient: "0.0.2", Amount: "2", Status: domain.TransferPending},
		{ID: "1-a", Timestamp: "2026-01-01T00:00:00Z", Recipient: "0.0.1", Amount: "1", Status: domain.TransferSuccess, TransactionID: "tx-1"},
	}
	require.NoError(t, store.Save(records))
	require.NoError(t, store.Close())

	// reopen and read back, as a fresh process would on mount
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, records, loaded)
}

func TestLoadNewestEntryWins(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save([]domain.TransferRecord{{ID: "old"}}))
	require.NoError(t, store.Save([]domain.TransferRecord{{ID: "new"}, {ID: "old"}}))

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, "new", loaded[0].ID)
}

func TestLoadEmptyWal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	assert.Nil(t, store.Load())
}

func TestLoadCorruptPayloadFailsOpen(t *testing.T) {
	dir := t.TempDir()

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "history_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	})
	require.NoError(t, err)
	require.NoError(t, wal.Write(wal.CurrentIndex()+1, historyKey, []byte("not json")))
	require.NoError(t, wal.Close())

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Nil(t, store.Load())
}
