// Package kv defines the flat key-value store saved plays live in. Backends live in sub-packages.
package kv

import "errors"

// ErrNotFound is returned by Get and Delete when the key has no value.
var ErrNotFound = errors.New("kv: not found")

// Store is a flat namespace of string keys to JSON documents. Single-key writes are atomic as far as the
// backend allows; there are no transactions.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys lists every key in ascending order.
	Keys() ([]string, error)
	Close() error
}
