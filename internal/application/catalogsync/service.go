package catalogsync

import (
	"context"
	"fmt"
	"time"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// TireFetcher abstracts the supplier feed client so the sync is testable.
type TireFetcher interface {
	FetchTires(ctx context.Context, updatedSince *time.Time) ([]catalog.Tire, error)
}

// TireWriter is the subset of the tire repository the sync needs.
type TireWriter interface {
	UpsertBatch(ctx context.Context, tires []catalog.Tire) (int, error)
}

type Service struct {
	fetcher   TireFetcher
	writer    TireWriter
	log       logger.Logger
	batchSize int
}

func NewService(fetcher TireFetcher, writer TireWriter, log logger.Logger, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Service{
		fetcher:   fetcher,
		writer:    writer,
		log:       log,
		batchSize: batchSize,
	}
}

// Sync pulls the supplier tire feed and upserts it into the catalog in
// batches. Returns the number of tires written.
func (s *Service) Sync(ctx context.Context, updatedSince *time.Time) (int, error) {
	tires, err := s.fetcher.FetchTires(ctx, updatedSince)
	if err != nil {
		return 0, fmt.Errorf("fetch tires: %w", err)
	}

	written := 0
	for start := 0; start < len(tires); start += s.batchSize {
		end := start + s.batchSize
		if end > len(tires) {
			end = len(tires)
		}

		n, err := s.writer.UpsertBatch(ctx, tires[start:end])
		written += n
		if err != nil {
			return written, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
	}

	s.log.Info("catalog sync finished", logger.Int("tires", written))
	return written, nil
}
