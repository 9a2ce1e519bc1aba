// Package storage holds the durable client-side state: the basket id and the
// auth token are the only values that must survive a restart.
package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyBasketID = "basket_id"
	KeyToken    = "token"
	KeyUser     = "user"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("storage: key not found")
