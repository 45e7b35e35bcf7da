package kvstore

import (
	"context"
	"errors"
	"path"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
)

// Store is the backend contract of the gateway: string keys, string values,
// glob key listing. All methods honor the deadline on ctx; last-write-wins
// on concurrent Sets is whatever the backend itself guarantees.
type Store interface {
	GetName() string
	Set(ctx context.Context, key string, value string) error
	// Get returns ErrKeyNotFound when the key has never been written.
	Get(ctx context.Context, key string) (string, error)
	// Keys returns every key matching a redis-style glob pattern ("*" for all).
	Keys(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// matchKey filters keys for backends without native glob support. path.Match
// covers the * and ? forms the gateway documents; on a malformed pattern the
// key is treated as non-matching.
func matchKey(pattern, key string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	ok, err := path.Match(pattern, key)
	return err == nil && ok
}
