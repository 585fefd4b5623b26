package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subpix/internal/billing"
	"subpix/internal/license"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "subpix.json")
	s, err := Open(path, slog.Default())
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	_, ok, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Clients)
}

func TestRecordRoundTripThroughFile(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	rec := license.Record{
		Active:    true,
		ExpiresAt: time.Date(2027, time.May, 1, 0, 0, 0, 0, time.UTC),
		UsedKeys:  []license.UsedKey{{Key: "ANUAL-AAAA", Year: 2026}},
	}
	require.NoError(t, s.SaveRecord(ctx, rec))

	// Reopen from disk and verify a lossless round trip.
	reopened, err := Open(path, slog.Default())
	require.NoError(t, err)

	got, ok, err := reopened.LoadRecord(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Active, got.Active)
	assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, rec.UsedKeys, got.UsedKeys)
}

func TestSnapshotRoundTripThroughFile(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	snap := billing.Snapshot{
		Plans: []billing.Plan{{Name: "Mensal", Price: decimal.NewFromFloat(35.90), DurationDays: 30}},
		Payables: []billing.Payable{{
			Description: "Servidor",
			Amount:      decimal.NewFromInt(120),
			DueDate:     billing.Date{Year: 2026, Month: time.April, Day: 1},
		}},
	}
	require.NoError(t, s.SaveSnapshot(ctx, snap))

	reopened, err := Open(path, slog.Default())
	require.NoError(t, err)

	got, err := reopened.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Plans, 1)
	assert.True(t, snap.Plans[0].Price.Equal(got.Plans[0].Price))
	require.Len(t, got.Payables, 1)
	assert.Equal(t, "2026-04-01", got.Payables[0].DueDate.String())
}

func TestSaveIsAtomic(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, billing.Snapshot{}))

	// No temp file is left behind after a successful save.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// The written document is complete JSON.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"billing"`)
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subpix.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path, slog.Default())
	assert.Error(t, err)
}

func TestSingleDocumentHoldsBothSections(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, license.NewRecord(time.Now())))
	require.NoError(t, s.SaveSnapshot(ctx, billing.Snapshot{
		Clients: []billing.Client{{Name: "Maria"}},
	}))

	// Both sections live in the same file; a later section save must not
	// drop the earlier one.
	reopened, err := Open(path, slog.Default())
	require.NoError(t, err)

	_, ok, err := reopened.LoadRecord(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	snap, err := reopened.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Clients, 1)
}
