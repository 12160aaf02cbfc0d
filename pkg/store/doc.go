// Package store defines persistence-facing contracts for loading and saving
// per-key record snapshots, plus a Domain wrapper that serialises mutations
// and shields callers from storage failures.
//
// Responsibilities:
//   - Store[T] only loads/saves a single snapshot for a single key.
//   - Domain[T] owns one record: it defaults the snapshot when storage is
//     missing or corrupt, serialises read-modify-write cycles, and treats
//     save failures as log-and-continue so domain results never depend on
//     storage health.
//   - Backends (memory, file, sqlite) stay behind the KV contract; record
//     encoding is a JSONStore concern layered on top.
//
// Data flow:
//
//	KV -> JSONStore -> Domain -> capability handlers
//
// Concurrency:
//
//	Domain holds a mutex across load/mutate/save, and JSONStore additionally
//	enforces an ETag precondition on Save so out-of-band writers cannot be
//	silently overwritten.
package store
