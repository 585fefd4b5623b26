package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subpix/internal/config"
	"subpix/internal/license"
)

type memoryRecordStore struct {
	mu      sync.Mutex
	rec     license.Record
	present bool
}

func (s *memoryRecordStore) LoadRecord(ctx context.Context) (license.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec, s.present, nil
}

func (s *memoryRecordStore) SaveRecord(ctx context.Context, rec license.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.present = true
	return nil
}

func testLicenseService(t *testing.T) LicenseService {
	t.Helper()
	catalogs, err := config.NewKeyCatalogs(nil, []string{"ANUAL-AAAA"}, nil)
	require.NoError(t, err)

	manager, err := license.NewManager(context.Background(), license.NewEngine(catalogs), &memoryRecordStore{}, slog.Default())
	require.NoError(t, err)
	return NewLicenseService(manager, slog.Default())
}

func TestLicenseServiceActivate(t *testing.T) {
	svc := testLicenseService(t)
	ctx := context.Background()

	outcome, status, err := svc.Activate(ctx, "ANUAL-AAAA")
	require.NoError(t, err)
	assert.Equal(t, license.OutcomeSuccess, outcome)
	assert.Equal(t, license.StatusActive, status.Status)
	assert.InDelta(t, 364, status.DaysLeft, 1)

	outcome, _, err = svc.Activate(ctx, "ANUAL-AAAA")
	require.NoError(t, err)
	assert.Equal(t, license.OutcomeDuplicate, outcome)

	outcome, _, err = svc.Activate(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, license.OutcomeInvalid, outcome)
}

func TestLicenseServiceStatusBeforeActivation(t *testing.T) {
	svc := testLicenseService(t)

	status := svc.GetStatus(context.Background())
	assert.Equal(t, license.StatusNotActivated, status.Status)
	assert.Equal(t, 0, status.Activations)
	assert.True(t, status.ExpiresAt.Before(time.Now().Add(time.Second)))
}
