package renderer

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       *Tile
	TaskID     int            // For deterministic ordering
	PixelStats [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID   int
	WorkerID int
	Samples  int
}

// WorkerPool renders tiles in parallel. Each call to Render starts its own
// workers and returns once they have all exited.
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
	logger     *zap.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(renderer *TileRenderer, numWorkers int, logger *zap.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render renders every tile into pixelStats and returns one result per
// tile, indexed by task id. When ctx is cancelled no further tiles are
// dispatched, tiles already in progress finish, and the context's error is
// returned.
func (wp *WorkerPool) Render(ctx context.Context, tiles []*Tile, pixelStats [][]PixelStats) ([]TileResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan TileTask)
	resultQueue := make(chan TileResult, len(tiles))

	g.Go(func() error {
		defer close(taskQueue)
		for taskID, tile := range tiles {
			task := TileTask{Tile: tile, TaskID: taskID, PixelStats: pixelStats}
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for workerID := 0; workerID < wp.numWorkers; workerID++ {
		g.Go(func() error {
			return wp.work(ctx, workerID, taskQueue, resultQueue)
		})
	}

	err := g.Wait()
	close(resultQueue)
	if err != nil {
		return nil, err
	}

	results := make([]TileResult, len(tiles))
	for result := range resultQueue {
		results[result.TaskID] = result
	}
	return results, nil
}

// work is the main worker loop
func (wp *WorkerPool) work(ctx context.Context, workerID int, taskQueue <-chan TileTask, resultQueue chan<- TileResult) error {
	for task := range taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}

		samples := wp.renderer.RenderTile(task.Tile, task.PixelStats)
		wp.logger.Debug("tile rendered",
			zap.Int("tile", task.Tile.ID),
			zap.Int("worker", workerID),
			zap.Int("samples", samples),
		)

		resultQueue <- TileResult{
			TaskID:   task.TaskID,
			WorkerID: workerID,
			Samples:  samples,
		}
	}
	return nil
}
