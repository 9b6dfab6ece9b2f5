// Package models defines the core domain entities for FinBro.
//
// # Persistence format
//
// Entities are persisted as JSON blobs, one blob per collection, through the
// key-value adapter in internal/storage. The JSON field names are part of the
// on-disk schema and must stay stable across releases; schema evolution is
// handled by the one-time migrations in internal/migrate, never by renaming
// tags here.
//
// # Design principles
//
//  1. Entities are plain data: no behavior beyond trivial derivations
//     (e.g. Debt.Settled). All mutation goes through internal/store.
//  2. Relationships use ID strings instead of pointers. A Debt records the ID
//     of its originating Transaction; the two live in separate collections
//     with independent lifecycles.
//  3. Amounts are non-negative integers in minor currency units. Direction is
//     carried by Transaction.Type, never by sign.
package models
