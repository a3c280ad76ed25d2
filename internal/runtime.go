package internal

// Runtime drives validation for every component created on one goroutine.
type Runtime struct {
	// goroutine the runtime belongs to, 0 when not bound to one
	gid int64

	heap        *DirtyHeap
	tracker     *Tracker
	batcher     *Batcher
	scheduler   *Scheduler
	effectQueue *EffectQueue
}

func NewRuntime() *Runtime {
	return &Runtime{
		heap:        NewHeap(),
		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		scheduler:   NewScheduler(),
		effectQueue: NewEffectQueue(),
	}
}

// Flush validates every invalidated component top-down in level order,
// then runs the queued render and user effects. A flush requested while
// one is running is ignored.
func (r *Runtime) Flush() {
	ran := r.scheduler.Run(func() {
		scheduled := r.heap.Len()

		r.heap.Drain(func(c *Component) {
			c.Validate(FlagAll)
		})

		r.effectQueue.RunEffects(EffectRender)
		r.effectQueue.RunEffects(EffectUser)

		debug("frame flushed", "frame", r.scheduler.Time(), "scheduled", scheduled)
	})

	if !ran {
		debug("flush skipped, already flushing")
	}
}

func (r *Runtime) IsBatching() bool {
	return r.batcher.IsBatching()
}

func (r *Runtime) IsFlushing() bool {
	return r.scheduler.Running()
}

// Frames returns the number of completed flushes.
func (r *Runtime) Frames() int {
	return r.scheduler.Time()
}

// Pending returns the number of components waiting for validation.
func (r *Runtime) Pending() int {
	return r.heap.Len()
}

func (r *Runtime) CurrentComponent() *Component {
	return r.tracker.Current()
}

// Owned reports whether the calling goroutine may use r.
func (r *Runtime) Owned() bool {
	return r.gid == 0 || r.gid == getGID()
}
