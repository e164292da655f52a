// Package particle runs populations of short-lived simulated points.
//
// A particle goes through init, then repeated update and draw steps until
// it leaves the simulation bounds, when it is reinitialized in place. The
// physics belongs to the caller; this package only drives the lifecycle.
package particle

// Bounds is an axis-aligned rectangle in pixel coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Padded returns the bounds of a width x height image grown by pad pixels
// on every side.
func Padded(width, height int, pad float64) Bounds {
	return Bounds{MinX: -pad, MinY: -pad, MaxX: float64(width) + pad, MaxY: float64(height) + pad}
}

// Contains reports whether (x, y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Model supplies the behavior of one kind of particle.
type Model[P any] interface {
	// Init places a newly born or recycled particle.
	Init(p *P)

	// Update advances a particle by one step.
	Update(p *P)

	// Draw renders the particle's latest step.
	Draw(p *P)

	// Dead reports whether a particle should be reinitialized.
	Dead(p *P) bool
}

// System holds a fixed-size population.
type System[P any] struct {
	Particles []P
	model     Model[P]
}

// New creates n particles and initializes each of them.
// A non-positive n yields an empty system whose Run does nothing.
func New[P any](n int, model Model[P]) *System[P] {
	s := &System[P]{Particles: make([]P, max(n, 0)), model: model}
	for i := range s.Particles {
		model.Init(&s.Particles[i])
	}
	return s
}

// Step updates and draws every particle once. Dead particles are
// reinitialized after they are drawn, so their final segment is kept.
func (s *System[P]) Step() {
	for i := range s.Particles {
		p := &s.Particles[i]
		s.model.Update(p)
		s.model.Draw(p)
		if s.model.Dead(p) {
			s.model.Init(p)
		}
	}
}

// Run performs the given number of steps.
func (s *System[P]) Run(steps int) {
	for range steps {
		s.Step()
	}
}

// Flush calls fn for every particle, for example to draw buffered paths.
func (s *System[P]) Flush(fn func(p *P)) {
	for i := range s.Particles {
		fn(&s.Particles[i])
	}
}
