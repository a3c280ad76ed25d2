package internal

type Scheduler struct {
	// incremented each time a flush completes
	clock int

	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock:   0,
		running: false,
	}
}

// Run runs fn unless a run is already in progress.
func (s *Scheduler) Run(fn func()) bool {
	if s.running {
		return false
	}

	s.running = true
	defer func() { s.running = false }()

	fn()

	s.clock++
	return true
}

func (s *Scheduler) Running() bool {
	return s.running
}

func (s *Scheduler) Time() int {
	return s.clock
}
