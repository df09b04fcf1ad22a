package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the requested collection key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is a string-keyed JSON blob store. Each entity collection lives under
// one fixed key and is read and written wholesale; concurrent writers to the
// same key follow last-write-wins semantics.
type Store interface {
	// Load unmarshals the blob stored under key into dest. Returns
	// ErrKeyNotFound when the key has never been saved.
	Load(ctx context.Context, key string, dest interface{}) error
	// Save marshals value and replaces the blob stored under key.
	Save(ctx context.Context, key string, value interface{}) error
}
