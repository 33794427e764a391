package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"customer-directory/internal/infrastructure/monitoring"
)

// CityCounter is the slice of customer.CustomerService the job needs.
type CityCounter interface {
	CountByCity(ctx context.Context) (map[string]int, error)
}

type Snapshot struct {
	Customers int
	Cities    int
}

type StoreStatsJob struct {
	counter CityCounter
	logger  *slog.Logger
	record  func(customers, cities int)
}

func NewStoreStatsJob(counter CityCounter, logger *slog.Logger) *StoreStatsJob {
	if counter == nil || logger == nil {
		panic("StoreStatsJob dependencies cannot be nil")
	}
	return &StoreStatsJob{
		counter: counter,
		logger:  logger.With("job", "StoreStats"),
		record:  monitoring.RecordStoreSnapshot,
	}
}

// Run takes one snapshot of the store and publishes it to the gauges. The
// gauges keep their previous values when the read fails.
func (j *StoreStatsJob) Run(ctx context.Context) (Snapshot, error) {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting store statistics job.")

	counts, err := j.counter.CountByCity(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers by city, aborting job.", slog.Any("error", err))
		return Snapshot{}, fmt.Errorf("cannot run job, failed to read store: %w", err)
	}

	snap := Snapshot{Cities: len(counts)}
	for _, n := range counts {
		snap.Customers += n
	}
	j.record(snap.Customers, snap.Cities)

	j.logger.InfoContext(ctx, "Store statistics job finished.",
		slog.Int("customers", snap.Customers),
		slog.Int("cities", snap.Cities),
		slog.Duration("duration", time.Since(startTime)),
	)
	return snap, nil
}
