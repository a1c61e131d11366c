package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPgxPool_RejectsBadURLs(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "", PoolOptions{})
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = NewPgxPool(context.Background(), "postgres://%zz", PoolOptions{})
	assert.ErrorContains(t, err, "failed to parse")
}
