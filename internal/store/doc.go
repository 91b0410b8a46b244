// Package store keeps the most recent push outcome for each widget.
//
// This package is internal to geckopush. A [MemoryStore] is owned by every
// Dashboard; each push records a [PushRecord] keyed by widget key, replacing
// the previous one. Nothing is persisted across process runs.
//
// The main components are:
//
//   - [Store]: Interface defining record and query operations
//   - [MemoryStore]: In-memory, mutex guarded implementation of Store
//   - [PushRecord]: Storage representation of a push outcome
package store
