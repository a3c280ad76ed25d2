package internal

type Batcher struct {
	// each nested frame increases the depth by 1
	// if depth > 0, validation waits until the outermost frame is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Frame runs fn and flushes once the outermost frame returns.
func (r *Runtime) Frame(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}
