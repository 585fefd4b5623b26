// Package license implements activation-key validation and expiry tracking
// for the subscription manager.
//
// # Architecture Overview
//
// The package is split into a pure transition function and a serialized owner:
//
//	- Engine: stateless key validation against the configured catalogs,
//	  returning a new Record without touching the old one
//	- Record: the persisted license state (active flag, expiry, used-key ledger)
//	- Manager: mutex-guarded single writer that owns the current Record,
//	  funnels every activation through the Engine and persists the result
//
// # Key Classes
//
// Three key classes exist, checked in strict priority order:
//
//	1. Daily: one key per calendar day (DD/MM), grants +30 days, reusable in
//	   a different year but not twice within the same year
//	2. Annual: enumerated set, single-use forever, grants +365 days
//	3. Lifetime: enumerated set, single-use forever, sets expiry to now+100y
//
// Daily and annual activations extend from the current expiry when it is
// still in the future; lifetime activations always anchor to the current
// time. Expiry is a derived fact: an active record whose expiry has passed
// reads as expired without any stored transition, and a later successful
// activation makes it valid again.
package license
