package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewApplicationRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewApplicationRepository(pool)
	assert.NotNil(t, repo)
}
