// Package storage persists the whole application state as one JSON document
// in a single file.
//
// Writes are atomic (temp file + rename) and serialized under one mutex, so
// the document on disk is always a complete, parseable snapshot. The package
// implements the persistence interfaces of the license and billing packages
// over that one document.
package storage
