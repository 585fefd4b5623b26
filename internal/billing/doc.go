// Package billing holds the subscription domain: clients, plans, payments
// and accounts payable, plus the dashboard aggregations over them.
//
// All state lives in one in-memory Snapshot owned by the Store and persisted
// verbatim through an injected SnapshotStore. Monetary values use
// shopspring/decimal; calendar dates use the package's Date type, which is a
// plain year/month/day triple with no time component, so serialized dates
// never shift by a day across timezones.
package billing
