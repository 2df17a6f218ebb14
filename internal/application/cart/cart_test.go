package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	lines   []Line
	loadErr error
	saves   int
}

func (s *memStore) Load() ([]Line, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.lines, nil
}

func (s *memStore) Save(lines []Line) error {
	s.lines = lines
	s.saves++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field) {}
func (nopLogger) Info(string, ...logger.Field)  {}
func (nopLogger) Warn(string, ...logger.Field)  {}
func (nopLogger) Error(string, ...logger.Field) {}
func (nopLogger) Fatal(string, ...logger.Field) {}

func (n nopLogger) WithContext(context.Context) logger.Logger { return n }
func (n nopLogger) WithFields(...logger.Field) logger.Logger  { return n }
func (nopLogger) Sync() error                                 { return nil }

func newTestCart(store *memStore) *Cart {
	c := New(store, nopLogger{})
	c.Load()
	return c
}

func TestCart_AddNewAndIncrement(t *testing.T) {
	store := &memStore{}
	c := newTestCart(store)

	outcome, line := c.Add(1, 2)
	assert.Equal(t, LineAdded, outcome)
	assert.Equal(t, 2, line.Quantity)
	assert.NotEmpty(t, line.ID)

	outcome, line = c.Add(1, 3)
	assert.Equal(t, QuantityIncreased, outcome)
	assert.Equal(t, 5, line.Quantity)

	assert.Equal(t, 1, c.DistinctLineCount())
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestCart_DifferentTiresGetSeparateLines(t *testing.T) {
	c := newTestCart(&memStore{})

	c.Add(1, 1)
	c.Add(2, 4)

	assert.Equal(t, 2, c.DistinctLineCount())
	assert.Equal(t, 5, c.TotalQuantity())
	assert.True(t, c.Contains(2))
	assert.False(t, c.Contains(3))
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	store := &memStore{}
	c := newTestCart(store)

	_, line := c.Add(1, 1)
	c.Add(2, 1)

	c.Remove(line.ID)
	assert.Equal(t, 1, c.DistinctLineCount())
	savesAfterFirst := store.saves

	// Second remove of the same line is a no-op, no error, no extra save.
	c.Remove(line.ID)
	assert.Equal(t, 1, c.DistinctLineCount())
	assert.Equal(t, savesAfterFirst, store.saves)
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	c := newTestCart(&memStore{})

	_, line := c.Add(1, 2)
	c.SetQuantity(line.ID, 0)

	assert.Equal(t, 0, c.DistinctLineCount())
}

func TestCart_SetQuantityOverwrites(t *testing.T) {
	c := newTestCart(&memStore{})

	_, line := c.Add(1, 2)
	c.SetQuantity(line.ID, 7)

	require.Equal(t, 1, c.DistinctLineCount())
	assert.Equal(t, 7, c.TotalQuantity())
}

func TestCart_ClearEmptiesAndPersists(t *testing.T) {
	store := &memStore{}
	c := newTestCart(store)

	c.Add(1, 2)
	c.Add(2, 1)
	c.Clear()

	assert.Equal(t, 0, c.DistinctLineCount())
	assert.Empty(t, store.lines)
}

func TestCart_MutationsPersistSnapshot(t *testing.T) {
	store := &memStore{}
	c := newTestCart(store)

	c.Add(1, 2)
	require.Len(t, store.lines, 1)
	assert.Equal(t, int64(1), store.lines[0].TireID)
	assert.Equal(t, 2, store.lines[0].Quantity)
}

func TestCart_LoadRestoresSnapshot(t *testing.T) {
	store := &memStore{lines: []Line{{ID: "a", TireID: 3, Quantity: 4}}}
	c := New(store, nopLogger{})

	assert.False(t, c.Ready())
	c.Load()

	assert.True(t, c.Ready())
	assert.Equal(t, 1, c.DistinctLineCount())
	assert.Equal(t, 4, c.TotalQuantity())
}

func TestCart_CorruptSnapshotDegradesToEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("invalid character '{'")}
	c := New(store, nopLogger{})
	c.Load()

	assert.True(t, c.Ready())
	assert.Equal(t, 0, c.DistinctLineCount())
}

func TestCart_ItemsForSubmission(t *testing.T) {
	c := newTestCart(&memStore{})

	c.Add(1, 2)
	c.Add(2, 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].TireID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].TireID)
}
