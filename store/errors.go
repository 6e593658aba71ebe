// Package store provides durable-storage adapters implementing bo.Store.
package store

import "errors"

// ErrClosed names the closed-store condition. No store in this package
// returns it: SQLiteStore operations after Close report the wrapped
// database/sql error instead, and MemoryStore has no Close.
var ErrClosed = errors.New("store: closed")
