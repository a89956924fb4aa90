package viewer

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// signalingAssets signals each prefetch so tests can wait for the pool.
type signalingAssets struct {
	mu         sync.Mutex
	count      int
	prefetched []int
	signal     chan int
}

func (a *signalingAssets) Count() int { return a.count }

func (a *signalingAssets) Prefetch(index int) error {
	a.mu.Lock()
	a.prefetched = append(a.prefetched, index)
	a.mu.Unlock()
	a.signal <- index
	return nil
}

func (a *signalingAssets) Activate(index int) error { return nil }

func TestWarmNeighborsPrefetchesBothSides(t *testing.T) {
	assets := &signalingAssets{count: 5, signal: make(chan int, 4)}
	p := NewPrefetcher(assets, 2)

	p.WarmNeighbors(2)

	var got []int
	for i := 0; i < 2; i++ {
		select {
		case idx := <-assets.signal:
			got = append(got, idx)
		case <-time.After(2 * time.Second):
			t.Fatal("prefetch task never ran")
		}
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 3}, got)
}

func TestWarmNeighborsWrapsAtGalleryBounds(t *testing.T) {
	assets := &signalingAssets{count: 4, signal: make(chan int, 4)}
	p := NewPrefetcher(assets, 2)

	p.WarmNeighbors(0)

	var got []int
	for i := 0; i < 2; i++ {
		select {
		case idx := <-assets.signal:
			got = append(got, idx)
		case <-time.After(2 * time.Second):
			t.Fatal("prefetch task never ran")
		}
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 3}, got, "neighbors of index 0 wrap to the last asset")
}

func TestWarmNeighborsSmallGallery(t *testing.T) {
	assets := &signalingAssets{count: 1, signal: make(chan int, 4)}
	p := NewPrefetcher(assets, 2)

	p.WarmNeighbors(0)

	select {
	case <-assets.signal:
		t.Fatal("a single-asset gallery has no neighbors to warm")
	case <-time.After(50 * time.Millisecond):
	}
}
