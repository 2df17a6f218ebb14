package catalogsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// MockTireFetcher is a mock for the TireFetcher interface.
type MockTireFetcher struct {
	mock.Mock
}

func (m *MockTireFetcher) FetchTires(ctx context.Context, updatedSince *time.Time) ([]catalog.Tire, error) {
	args := m.Called(ctx, updatedSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Tire), args.Error(1)
}

// MockTireWriter is a mock for the TireWriter interface.
type MockTireWriter struct {
	mock.Mock
}

func (m *MockTireWriter) UpsertBatch(ctx context.Context, tires []catalog.Tire) (int, error) {
	args := m.Called(ctx, tires)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...logger.Field)            {}
func (nopLogger) Info(string, ...logger.Field)             {}
func (nopLogger) Warn(string, ...logger.Field)             {}
func (nopLogger) Error(string, ...logger.Field)            {}
func (nopLogger) Fatal(string, ...logger.Field)            {}
func (n nopLogger) WithContext(context.Context) logger.Logger { return n }
func (n nopLogger) WithFields(...logger.Field) logger.Logger  { return n }
func (nopLogger) Sync() error                              { return nil }

func tires(n int) []catalog.Tire {
	out := make([]catalog.Tire, n)
	for i := range out {
		out[i] = catalog.Tire{ID: int64(i + 1), Active: true}
	}
	return out
}

func TestService_Sync_BatchesWrites(t *testing.T) {
	fetcher := new(MockTireFetcher)
	writer := new(MockTireWriter)
	svc := NewService(fetcher, writer, nopLogger{}, 2)

	ctx := context.Background()
	fetcher.On("FetchTires", ctx, (*time.Time)(nil)).Return(tires(5), nil)
	writer.On("UpsertBatch", ctx, mock.MatchedBy(func(b []catalog.Tire) bool {
		return len(b) == 2
	})).Return(2, nil).Twice()
	writer.On("UpsertBatch", ctx, mock.MatchedBy(func(b []catalog.Tire) bool {
		return len(b) == 1
	})).Return(1, nil).Once()

	written, err := svc.Sync(ctx, nil)

	assert.NoError(t, err)
	assert.Equal(t, 5, written)
	fetcher.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestService_Sync_FetchError(t *testing.T) {
	fetcher := new(MockTireFetcher)
	writer := new(MockTireWriter)
	svc := NewService(fetcher, writer, nopLogger{}, 100)

	ctx := context.Background()
	fetcher.On("FetchTires", ctx, (*time.Time)(nil)).Return(nil, errors.New("feed down"))

	written, err := svc.Sync(ctx, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch tires")
	assert.Equal(t, 0, written)
	writer.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}

func TestService_Sync_UpsertError(t *testing.T) {
	fetcher := new(MockTireFetcher)
	writer := new(MockTireWriter)
	svc := NewService(fetcher, writer, nopLogger{}, 100)

	ctx := context.Background()
	fetcher.On("FetchTires", ctx, (*time.Time)(nil)).Return(tires(3), nil)
	writer.On("UpsertBatch", ctx, mock.Anything).Return(0, errors.New("constraint violation"))

	written, err := svc.Sync(ctx, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upsert batch")
	assert.Equal(t, 0, written)
}

func TestService_Sync_EmptyFeed(t *testing.T) {
	fetcher := new(MockTireFetcher)
	writer := new(MockTireWriter)
	svc := NewService(fetcher, writer, nopLogger{}, 100)

	ctx := context.Background()
	fetcher.On("FetchTires", ctx, (*time.Time)(nil)).Return([]catalog.Tire{}, nil)

	written, err := svc.Sync(ctx, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, written)
	writer.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}
