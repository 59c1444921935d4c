package room

import (
	"math/rand"
	"sync"
	"time"
)

// MoveFunc sends a move-avatar frame to (x,y). Supplied by the caller so
// this package has no dependency on the wire/session types.
type MoveFunc func(x, y int)

// Walker drives a background random walk over a Model at a fixed interval,
// either restricted to currently walkable tiles or blind to room geometry.
type Walker struct {
	model     *Model
	move      MoveFunc
	interval  time.Duration
	roomAware bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// NewWalker constructs a walker over model. When roomAware is true,
// destinations are drawn from Model.WalkableTiles; otherwise they are
// drawn uniformly from [0,49]x[0,49] regardless of geometry.
func NewWalker(model *Model, move MoveFunc, interval time.Duration, roomAware bool) *Walker {
	return &Walker{model: model, move: move, interval: interval, roomAware: roomAware}
}

// Start launches the walk loop if it is not already running.
func (w *Walker) Start(disconnected func() bool) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stop = make(chan struct{})
	stop := w.stop
	w.mu.Unlock()

	go w.loop(stop, disconnected)
}

// Stop cancels the walk loop; safe to call even if not running.
func (w *Walker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stop)
	w.running = false
}

// Running reports whether the walk loop is currently active.
func (w *Walker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Walker) loop(stop chan struct{}, disconnected func() bool) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if disconnected != nil && disconnected() {
				return
			}
			w.step()
		}
	}
}

func (w *Walker) step() {
	if w.roomAware {
		tiles := w.model.WalkableTiles()
		if len(tiles) == 0 {
			return
		}
		t := tiles[rand.Intn(len(tiles))]
		w.move(t[0], t[1])
		return
	}
	w.move(rand.Intn(50), rand.Intn(50))
}
