package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"subpix/internal/billing"
	"subpix/internal/license"
)

// Document is the complete persisted application state.
type Document struct {
	License *license.Record  `json:"license,omitempty"`
	Billing billing.Snapshot `json:"billing"`
}

// Store owns the document file. All reads and writes go through its mutex.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	doc    Document
}

// Open loads the document at path, starting from an empty document when the
// file does not exist yet.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With(slog.String("component", "storage")),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.Info("no data file yet, starting empty", slog.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	s.logger.Info("data file loaded",
		slog.String("path", path),
		slog.Int("size_bytes", len(data)),
	)
	return s, nil
}

// save writes the document atomically. Callers hold the mutex.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// LoadRecord implements license.RecordStore.
func (s *Store) LoadRecord(ctx context.Context) (license.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.License == nil {
		return license.Record{}, false, nil
	}
	return *s.doc.License, true, nil
}

// SaveRecord implements license.RecordStore.
func (s *Store) SaveRecord(ctx context.Context, rec license.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.doc.License
	s.doc.License = &rec
	if err := s.save(); err != nil {
		s.doc.License = prev
		return err
	}
	return nil
}

// LoadSnapshot implements billing.SnapshotStore.
func (s *Store) LoadSnapshot(ctx context.Context) (billing.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Billing, nil
}

// SaveSnapshot implements billing.SnapshotStore.
func (s *Store) SaveSnapshot(ctx context.Context, snap billing.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.doc.Billing
	s.doc.Billing = snap
	if err := s.save(); err != nil {
		s.doc.Billing = prev
		return err
	}
	return nil
}
