package viewer

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// AssetProvider is the gallery's asset store. The viewer never touches splat
// data itself; it asks the provider to warm neighbours and to activate the
// asset a navigation lands on.
type AssetProvider interface {
	// Count returns the number of assets in the gallery.
	//
	// Returns:
	//   - int: the asset count
	Count() int

	// Prefetch loads the asset at index into the provider's cache. Called
	// from worker goroutines; implementations must be safe for concurrent
	// use.
	//
	// Parameters:
	//   - index: the asset index
	//
	// Returns:
	//   - error: non-nil when the asset cannot be loaded
	Prefetch(index int) error

	// Activate makes the asset at index the one being rendered.
	//
	// Parameters:
	//   - index: the asset index
	//
	// Returns:
	//   - error: non-nil when the asset cannot be activated
	Activate(index int) error
}

// Prefetcher warms a gallery's neighbouring assets on a bounded worker pool
// so navigation rarely waits on a load. Workers persist across navigations
// and idle-exit after a second.
type Prefetcher struct {
	provider AssetProvider
	pool     worker.DynamicWorkerPool

	nextTaskID int
}

// NewPrefetcher creates a prefetcher over the given provider.
//
// Parameters:
//   - provider: the asset store (must not be nil)
//   - workers: maximum concurrent prefetch workers (values < 1 use 2)
//
// Returns:
//   - *Prefetcher: the newly created prefetcher
func NewPrefetcher(provider AssetProvider, workers int) *Prefetcher {
	if workers < 1 {
		workers = 2
	}
	return &Prefetcher{
		provider: provider,
		pool:     worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

// WarmNeighbors prefetches the assets on either side of index, wrapping at
// the gallery bounds. Failures are logged, not surfaced: a missed prefetch
// only costs latency on the next navigation.
//
// Parameters:
//   - index: the currently active asset index
func (p *Prefetcher) WarmNeighbors(index int) {
	count := p.provider.Count()
	if count < 2 {
		return
	}
	for _, neighbor := range []int{(index + 1) % count, (index - 1 + count) % count} {
		idx := neighbor
		id := p.nextTaskID
		p.nextTaskID++
		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				if err := p.provider.Prefetch(idx); err != nil {
					log.Printf("viewer: prefetch asset %d: %v", idx, err)
					return nil, err
				}
				return nil, nil
			},
		})
	}
}
