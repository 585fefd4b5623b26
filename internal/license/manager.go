package license

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RecordStore abstracts persistence of the license record. The production
// implementation writes the shared application document; tests use an
// in-memory store.
type RecordStore interface {
	LoadRecord(ctx context.Context) (Record, bool, error)
	SaveRecord(ctx context.Context, rec Record) error
}

// StatusInfo is a point-in-time snapshot of the license state for callers
// that render status screens or gate features.
type StatusInfo struct {
	Status      Status    `json:"status"`
	ExpiresAt   time.Time `json:"expiration_date"`
	DaysLeft    int       `json:"days_left"`
	Activations int       `json:"activations"`
}

// Manager is the single serialized owner of the license record. Every
// activation reads, transitions, and persists under one mutex, so the
// extend-from-current-expiry rule never sees stale state from a concurrent
// caller.
type Manager struct {
	mu     sync.Mutex
	engine *Engine
	store  RecordStore
	logger *slog.Logger
	now    func() time.Time
	rec    Record
}

// NewManager loads the current record (or initializes a fresh one if none is
// persisted yet) and returns the manager that owns it from then on.
func NewManager(ctx context.Context, engine *Engine, store RecordStore, logger *slog.Logger) (*Manager, error) {
	return newManager(ctx, engine, store, logger, time.Now)
}

func newManager(ctx context.Context, engine *Engine, store RecordStore, logger *slog.Logger, now func() time.Time) (*Manager, error) {
	rec, ok, err := store.LoadRecord(ctx)
	if err != nil {
		return nil, fmt.Errorf("load license record: %w", err)
	}
	if !ok {
		rec = NewRecord(now())
	}

	m := &Manager{
		engine: engine,
		store:  store,
		logger: logger.With(slog.String("component", "license")),
		now:    now,
		rec:    rec,
	}
	m.logger.InfoContext(ctx, "license record loaded",
		slog.String("status", string(rec.StatusAt(now()))),
		slog.Int("used_keys", len(rec.UsedKeys)),
	)
	return m, nil
}

// Activate validates key against the catalogs, persists the updated record on
// success, and returns the outcome with the post-activation record snapshot.
// Non-success outcomes leave both the in-memory and the persisted record
// untouched.
func (m *Manager) Activate(ctx context.Context, key string) (Outcome, Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	outcome, next := m.engine.Activate(key, m.rec, now)
	if outcome != OutcomeSuccess {
		m.logger.WarnContext(ctx, "license activation rejected",
			slog.String("outcome", string(outcome)),
		)
		return outcome, m.rec, nil
	}

	if err := m.store.SaveRecord(ctx, next); err != nil {
		// Persistence failed: keep the pre-activation record so a retry
		// starts from consistent state.
		m.logger.ErrorContext(ctx, "license record save failed",
			slog.String("error", err.Error()),
		)
		return outcome, m.rec, fmt.Errorf("save license record: %w", err)
	}
	m.rec = next

	m.logger.InfoContext(ctx, "license activated",
		slog.String("expires_at", next.ExpiresAt.Format(time.RFC3339)),
		slog.Int("used_keys", len(next.UsedKeys)),
	)
	return outcome, next, nil
}

// Status returns the derived license state at the current instant.
func (m *Manager) Status(ctx context.Context) StatusInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	return StatusInfo{
		Status:      m.rec.StatusAt(now),
		ExpiresAt:   m.rec.ExpiresAt,
		DaysLeft:    m.rec.DaysLeftAt(now),
		Activations: len(m.rec.UsedKeys),
	}
}

// Record returns a snapshot of the current record.
func (m *Manager) Record() Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec
}

// Valid reports whether the license is usable right now.
func (m *Manager) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec.ValidAt(m.now())
}
