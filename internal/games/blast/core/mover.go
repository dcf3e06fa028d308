package core

// Default motion parameters.
const (
	DefaultMoveSpeed       = 2.0   // world units per second
	DefaultArriveEpsilonSq = 0.001 // squared distance that counts as arrived
)

// Mover advances moving tiles toward their target cell and reports
// arrivals back to the engine. It stands in for the animation system of a
// graphical client; the terminal game and tests drive it directly.
type Mover struct {
	engine    *Engine
	speed     float64
	epsilonSq float64
}

// NewMover creates a mover for e. Non-positive arguments fall back to the
// defaults.
func NewMover(e *Engine, speed, epsilonSq float64) *Mover {
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}
	if epsilonSq <= 0 {
		epsilonSq = DefaultArriveEpsilonSq
	}
	return &Mover{engine: e, speed: speed, epsilonSq: epsilonSq}
}

// Advance moves every moving tile by speed*dt and returns the handles that
// arrived this step, in store order.
func (m *Mover) Advance(dt float64) []Handle {
	e := m.engine
	if !e.initialized || dt <= 0 {
		return nil
	}
	step := m.speed * dt

	var arrived []Handle
	e.store.Each(func(h Handle, t *Tile) {
		if !t.Moving {
			return
		}
		target := e.cfg.TileWorldPosition(t.Coord)
		t.Pos = t.Pos.MoveTowards(target, step)
		if t.Pos.DistanceSq(target) < m.epsilonSq {
			arrived = append(arrived, h)
		}
	})
	for _, h := range arrived {
		e.OnTileArrived(h)
	}
	return arrived
}

// Settle advances in fixed steps until nothing moves or maxSteps is hit.
// It returns the number of steps taken.
func (m *Mover) Settle(dt float64, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		if m.engine.MovingCount() == 0 {
			return i
		}
		m.Advance(dt)
	}
	return maxSteps
}
