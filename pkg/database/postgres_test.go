package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostgresConnectionRejectsBadURL(t *testing.T) {
	pool, err := NewPostgresConnection(context.Background(), "postgres://%zz")
	assert.Error(t, err)
	assert.Nil(t, pool)
}
