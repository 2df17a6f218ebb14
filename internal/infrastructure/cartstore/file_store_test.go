package cartstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NenadVrtue/webshop-triangle/internal/application/cart"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field) {}
func (nopLogger) Info(string, ...logger.Field)  {}
func (nopLogger) Warn(string, ...logger.Field)  {}
func (nopLogger) Error(string, ...logger.Field) {}
func (nopLogger) Fatal(string, ...logger.Field) {}

func (n nopLogger) WithContext(context.Context) logger.Logger { return n }
func (n nopLogger) WithFields(...logger.Field) logger.Logger  { return n }
func (nopLogger) Sync() error                                 { return nil }

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nopLogger{})

	lines := []cart.Line{
		{ID: "a", TireID: 1, Quantity: 2, AddedAt: time.Now().UTC()},
		{ID: "b", TireID: 2, Quantity: 1, AddedAt: time.Now().UTC()},
	}
	require.NoError(t, store.Save(lines))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a", loaded[0].ID)
	assert.Equal(t, int64(2), loaded[1].TireID)
}

func TestFileStore_MissingFileIsEmptyCart(t *testing.T) {
	store := NewFileStore(t.TempDir(), nopLogger{})

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStore_CorruptSnapshotIsEmptyCart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, cart.StorageKey+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(dir, nopLogger{})
	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, loaded)
}
