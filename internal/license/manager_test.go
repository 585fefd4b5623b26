package license

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// memoryRecordStore keeps the record in memory and counts saves.
type memoryRecordStore struct {
	mu      sync.Mutex
	rec     Record
	present bool
	saves   int
	failing bool
}

func (s *memoryRecordStore) LoadRecord(ctx context.Context) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec, s.present, nil
}

func (s *memoryRecordStore) SaveRecord(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("disk full")
	}
	s.rec = rec
	s.present = true
	s.saves++
	return nil
}

type ManagerTestSuite struct {
	suite.Suite
	now     time.Time
	store   *memoryRecordStore
	manager *Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.now = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.Local)
	s.store = &memoryRecordStore{}

	engine := NewEngine(&fakeCatalogs{
		daily:    map[string]string{"15/03": "DIA-1503"},
		annual:   map[string]bool{"ANUAL-AAAA": true},
		lifetime: map[string]bool{"VITALICIA-XXXX": true},
	})

	var err error
	s.manager, err = newManager(context.Background(), engine, s.store, slog.Default(), func() time.Time { return s.now })
	require.NoError(s.T(), err)
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) TestFreshRecordWhenNothingPersisted() {
	status := s.manager.Status(context.Background())
	s.Equal(StatusNotActivated, status.Status)
	s.Equal(0, status.Activations)
	s.False(s.manager.Valid())
}

func (s *ManagerTestSuite) TestSuccessfulActivationPersists() {
	outcome, rec, err := s.manager.Activate(context.Background(), "DIA-1503")

	s.Require().NoError(err)
	s.Equal(OutcomeSuccess, outcome)
	s.Equal(1, s.store.saves)
	s.True(s.store.rec.Active)
	s.Equal(rec.ExpiresAt, s.store.rec.ExpiresAt)
	s.True(s.manager.Valid())
}

func (s *ManagerTestSuite) TestDuplicateDoesNotPersist() {
	_, _, err := s.manager.Activate(context.Background(), "DIA-1503")
	s.Require().NoError(err)
	expiryAfterFirst := s.manager.Record().ExpiresAt

	outcome, rec, err := s.manager.Activate(context.Background(), "DIA-1503")

	s.Require().NoError(err)
	s.Equal(OutcomeDuplicate, outcome)
	s.Equal(1, s.store.saves, "rejected activation must not write")
	s.Equal(expiryAfterFirst, rec.ExpiresAt)
}

func (s *ManagerTestSuite) TestInvalidKeyLeavesStateUntouched() {
	outcome, _, err := s.manager.Activate(context.Background(), "nope")

	s.Require().NoError(err)
	s.Equal(OutcomeInvalid, outcome)
	s.Equal(0, s.store.saves)
	s.Equal(StatusNotActivated, s.manager.Status(context.Background()).Status)
}

func (s *ManagerTestSuite) TestSaveFailureKeepsPreActivationRecord() {
	s.store.failing = true

	_, rec, err := s.manager.Activate(context.Background(), "ANUAL-AAAA")

	s.Require().Error(err)
	s.False(rec.Active, "in-memory record must stay pre-activation on save failure")
	s.Equal(StatusNotActivated, s.manager.Status(context.Background()).Status)

	// A retry after the store recovers succeeds from consistent state.
	s.store.failing = false
	outcome, _, err := s.manager.Activate(context.Background(), "ANUAL-AAAA")
	s.Require().NoError(err)
	s.Equal(OutcomeSuccess, outcome)
}

func (s *ManagerTestSuite) TestLoadsPersistedRecord() {
	persisted := Record{
		Active:    true,
		ExpiresAt: s.now.AddDate(0, 0, 12),
		UsedKeys:  []UsedKey{{Key: "ANUAL-AAAA", Year: 2025}},
	}
	store := &memoryRecordStore{rec: persisted, present: true}

	m, err := newManager(context.Background(), NewEngine(&fakeCatalogs{}), store, slog.Default(), func() time.Time { return s.now })
	s.Require().NoError(err)

	status := m.Status(context.Background())
	s.Equal(StatusActive, status.Status)
	s.Equal(1, status.Activations)
	s.Equal(12, status.DaysLeft)
}

func (s *ManagerTestSuite) TestStatusReflectsClock() {
	_, _, err := s.manager.Activate(context.Background(), "DIA-1503")
	s.Require().NoError(err)
	s.Equal(StatusActive, s.manager.Status(context.Background()).Status)

	// Jump past the expiry; status is derived, nothing is stored.
	s.now = s.now.AddDate(0, 0, 31)
	s.Equal(StatusExpired, s.manager.Status(context.Background()).Status)
	s.False(s.manager.Valid())
}
