package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewJetRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewJetRepository(pool)
	assert.NotNil(t, repo)
}
