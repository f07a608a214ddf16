package benchstats

import (
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/traversal"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// rayTask is one unit of work for the batch runner, the traversal
// analogue of the teacher's TileTask.
type rayTask struct {
	index int
	ray   vector.Ray
}

// RunBatch runs Walk for every ray in rays against g concurrently,
// using numWorkers goroutines (0 selects runtime.NumCPU()), and
// returns one BatchResult per ray in input order. The shape mirrors
// the teacher's WorkerPool: a buffered task channel feeding a fixed
// pool of workers, a buffered result channel drained by the caller.
func RunBatch(g *grid.SphericalVoxelGrid, rays []vector.Ray, tMax float64, numWorkers int) (string, []BatchResult) {
	batchID := uuid.New().String()

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(rays) {
		numWorkers = len(rays)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	taskQueue := make(chan rayTask, len(rays))
	resultQueue := make(chan BatchResult, len(rays))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskQueue {
				records, err := traversal.Walk(task.ray, g, tMax)
				resultQueue <- BatchResult{Index: task.index, Records: records, Err: err}
			}
		}()
	}

	for i, ray := range rays {
		taskQueue <- rayTask{index: i, ray: ray}
	}
	close(taskQueue)

	wg.Wait()
	close(resultQueue)

	results := make([]BatchResult, len(rays))
	for r := range resultQueue {
		results[r.Index] = r
	}

	return batchID, results
}
