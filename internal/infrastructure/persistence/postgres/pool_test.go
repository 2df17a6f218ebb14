package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
)

func TestNewPool_WithEnv(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err, "load config failed")

	pool, err := NewPool(cfg.DB)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, pool.Ping(ctx), "ping database failed")
}
