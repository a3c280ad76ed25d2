package internal

type EffectType int

const (
	EffectRender EffectType = iota
	EffectUser
)

// EffectQueue holds one-shot callbacks run after a flush validated the tree.
type EffectQueue struct {
	effects map[EffectType][]func()
}

func NewEffectQueue() *EffectQueue {
	effects := make(map[EffectType][]func())
	effects[EffectRender] = make([]func(), 0)
	effects[EffectUser] = make([]func(), 0)

	return &EffectQueue{effects}
}

func (q *EffectQueue) Enqueue(typ EffectType, fn func()) {
	q.effects[typ] = append(q.effects[typ], fn)
}

func (q *EffectQueue) RunEffects(typ EffectType) {
	effects := q.effects[typ]
	q.effects[typ] = nil

	for _, effect := range effects {
		effect()
	}
}

// AfterFrame queues fn to run once, after the next flush.
func (r *Runtime) AfterFrame(typ EffectType, fn func()) {
	r.effectQueue.Enqueue(typ, fn)
}
