package license

import "time"

// UsedKey is one entry of the append-only ledger of accepted activation keys.
// The year is recorded because daily keys recur annually and are only
// deduplicated within a single calendar year.
type UsedKey struct {
	Key  string `json:"key"`
	Year int    `json:"year"`
}

// Record is the persisted license state. ExpiresAt only moves forward:
// successful activations extend or re-anchor it, nothing ever rewinds it.
// Active stays true once any key has been accepted; whether the license is
// currently usable is derived from the clock, never stored.
type Record struct {
	Active    bool      `json:"is_active"`
	ExpiresAt time.Time `json:"expiration_date"`
	UsedKeys  []UsedKey `json:"used_keys"`
}

// NewRecord returns the initial never-activated state.
func NewRecord(now time.Time) Record {
	return Record{Active: false, ExpiresAt: now, UsedKeys: nil}
}

// ValidAt reports whether the license is usable at the given instant.
func (r Record) ValidAt(now time.Time) bool {
	return r.Active && now.Before(r.ExpiresAt)
}

// UsedInYear reports whether key was already accepted in the given calendar
// year. Daily keys use this check so the same DD/MM key can return next year.
func (r Record) UsedInYear(key string, year int) bool {
	for _, u := range r.UsedKeys {
		if u.Key == key && u.Year == year {
			return true
		}
	}
	return false
}

// UsedEver reports whether key was accepted in any year. Annual and lifetime
// keys are single-use for all time.
func (r Record) UsedEver(key string) bool {
	for _, u := range r.UsedKeys {
		if u.Key == key {
			return true
		}
	}
	return false
}

// Status is the derived license state exposed to callers.
type Status string

const (
	StatusNotActivated Status = "not_activated"
	StatusActive       Status = "active"
	StatusExpired      Status = "expired"
)

// StatusAt derives the externally meaningful state at the given instant.
func (r Record) StatusAt(now time.Time) Status {
	switch {
	case !r.Active:
		return StatusNotActivated
	case now.Before(r.ExpiresAt):
		return StatusActive
	default:
		return StatusExpired
	}
}

// DaysLeftAt returns whole days until expiry, clamped at zero.
func (r Record) DaysLeftAt(now time.Time) int {
	if !r.Active || !now.Before(r.ExpiresAt) {
		return 0
	}
	return int(r.ExpiresAt.Sub(now).Hours() / 24)
}
