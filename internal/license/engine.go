package license

import "time"

// Catalogs is the read-only lookup surface over the three configured key
// tables. The engine only consumes membership checks; it never mutates the
// catalogs. Tests substitute small fixed catalogs for the production lists.
type Catalogs interface {
	// DailyKey returns the key configured for a DD/MM calendar date.
	DailyKey(dayMonth string) (string, bool)
	// ContainsAnnual reports membership in the annual key set.
	ContainsAnnual(key string) bool
	// ContainsLifetime reports membership in the lifetime key set.
	ContainsLifetime(key string) bool
}

// Outcome classifies the result of an activation attempt. Invalid and
// Duplicate are terminal for that exact key string; the caller must obtain a
// different key.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeDuplicate Outcome = "duplicate"
)

// Grant durations per key class.
const (
	dailyGrantDays     = 30
	annualGrantDays    = 365
	lifetimeGrantYears = 100
)

// dailyKeyDateLayout renders the DD/MM lookup key for the daily table.
const dailyKeyDateLayout = "02/01"

// Engine validates activation keys against the configured catalogs. It holds
// no mutable state and is safe for concurrent use; serialization of the
// record itself is the Manager's job.
type Engine struct {
	catalogs Catalogs
}

// NewEngine returns an engine backed by the given catalogs.
func NewEngine(catalogs Catalogs) *Engine {
	return &Engine{catalogs: catalogs}
}

// Activate applies key to rec at the given instant and returns the outcome
// together with the resulting record. rec is never mutated; on any
// non-success outcome the returned record is rec unchanged.
//
// Classes are checked in strict priority order: daily, then annual, then
// lifetime. The catalogs are expected to be disjoint, but if they were to
// overlap the daily class wins.
func (e *Engine) Activate(key string, rec Record, now time.Time) (Outcome, Record) {
	year := now.Year()

	if daily, ok := e.catalogs.DailyKey(now.Format(dailyKeyDateLayout)); ok && key == daily {
		if rec.UsedInYear(key, year) {
			return OutcomeDuplicate, rec
		}
		return OutcomeSuccess, rec.accept(key, year, extensionBase(rec, now).AddDate(0, 0, dailyGrantDays))
	}

	if e.catalogs.ContainsAnnual(key) {
		if rec.UsedEver(key) {
			return OutcomeDuplicate, rec
		}
		return OutcomeSuccess, rec.accept(key, year, extensionBase(rec, now).AddDate(0, 0, annualGrantDays))
	}

	if e.catalogs.ContainsLifetime(key) {
		if rec.UsedEver(key) {
			return OutcomeDuplicate, rec
		}
		// Lifetime keys anchor to now and ignore any remaining validity.
		return OutcomeSuccess, rec.accept(key, year, now.AddDate(lifetimeGrantYears, 0, 0))
	}

	return OutcomeInvalid, rec
}

// extensionBase picks the instant daily and annual grants extend from: the
// stored expiry while it is still in the future, otherwise now. An expired
// record never donates its stale expiry as a base.
func extensionBase(rec Record, now time.Time) time.Time {
	if rec.Active && rec.ExpiresAt.After(now) {
		return rec.ExpiresAt
	}
	return now
}

// accept returns a copy of rec with the new expiry and the key appended to
// the ledger. The ledger slice is copied so the caller's record stays intact.
func (r Record) accept(key string, year int, expiresAt time.Time) Record {
	ledger := make([]UsedKey, len(r.UsedKeys), len(r.UsedKeys)+1)
	copy(ledger, r.UsedKeys)
	return Record{
		Active:    true,
		ExpiresAt: expiresAt,
		UsedKeys:  append(ledger, UsedKey{Key: key, Year: year}),
	}
}
