package simulation

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

// parallelThreshold is the minimum animal count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// animalSnapshot captures read-only state for parallel processing.
type animalSnapshot struct {
	Entity ecs.Entity
	Pos    components.Position
	Motion components.Motion
	Mind   components.Mind
}

// workChunk represents a range of animals for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for the parallel brain pass.
type parallelState struct {
	snapshots  []animalSnapshot
	intents    []components.Motion
	food       []r2.Vec
	limits     systems.MotionLimits
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numWorkers int, limits systems.MotionLimits) *parallelState {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		numWorkers: numWorkers,
		threshold:  parallelThreshold,
		limits:     limits,
		snapshots:  make([]animalSnapshot, 0, 64),
		intents:    make([]components.Motion, 0, 64),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker()
	}
	slog.Debug("brain workers started", "workers", p.numWorkers)
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// updateBrains runs every animal's sensor and brain against the current food
// positions and applies the resulting motion. No randomness is consumed, so
// the outcome does not depend on the worker count.
func (s *Simulation) updateBrains() {
	p := s.parallel
	w := s.world

	// Phase A: Build snapshots (single-threaded)
	p.snapshots = p.snapshots[:0]
	for _, e := range w.animals {
		p.snapshots = append(p.snapshots, animalSnapshot{
			Entity: e,
			Pos:    *w.posMap.Get(e),
			Motion: *w.motionMap.Get(e),
			Mind:   *w.mindMap.Get(e),
		})
	}
	p.food = w.foodVecs(p.food[:0])

	n := len(p.snapshots)
	if n == 0 {
		return
	}

	if cap(p.intents) < n {
		p.intents = make([]components.Motion, n)
	}
	p.intents = p.intents[:n]

	// Phase B: Compute - choose single or parallel based on animal count
	if n < p.threshold || p.numWorkers == 1 {
		p.computeChunk(0, n)
	} else {
		p.computeParallel(n)
	}

	// Phase C: Apply intents (single-threaded, creation order)
	for i, snap := range p.snapshots {
		*w.motionMap.Get(snap.Entity) = p.intents[i]
	}
}

// computeParallel dispatches work to the worker pool.
func (p *parallelState) computeParallel(n int) {
	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for range chunksDispatched {
		<-p.doneChan
	}
}

// computeChunk processes a range of animals for a single worker.
func (p *parallelState) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &p.snapshots[i]
		p.intents[i] = systems.Steer(snap.Mind, snap.Pos, snap.Motion, p.food, p.limits)
	}
}
