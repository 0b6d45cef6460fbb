package physics

import "fmt"

const (
	DefaultMaxBodies     = 4096
	DefaultTrailCapacity = 512
	DefaultHorizon       = 64
)

// StoreConfig fixes the buffer sizes every body in a store is created with.
type StoreConfig struct {
	MaxBodies     int
	TrailCapacity int
	Horizon       int
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxBodies:     DefaultMaxBodies,
		TrailCapacity: DefaultTrailCapacity,
		Horizon:       DefaultHorizon,
	}
}

// Store owns the live bodies. Indices are dense: removing a body shifts
// every later body (with its trail and prediction) down by one.
type Store struct {
	cfg    StoreConfig
	bodies []Body
}

func NewStore(cfg StoreConfig) *Store {
	if cfg.MaxBodies <= 0 {
		cfg.MaxBodies = DefaultMaxBodies
	}
	if cfg.TrailCapacity < 0 {
		cfg.TrailCapacity = 0
	}
	if cfg.Horizon < 0 {
		cfg.Horizon = 0
	}
	return &Store{cfg: cfg}
}

func (s *Store) Config() StoreConfig { return s.cfg }
func (s *Store) Len() int            { return len(s.bodies) }

// Bodies exposes the live slice. Callers may mutate elements in place but
// must not append to or reslice it.
func (s *Store) Bodies() []Body { return s.bodies }

// At returns a pointer to body i, or nil when i is out of range.
func (s *Store) At(i int) *Body {
	if i < 0 || i >= len(s.bodies) {
		return nil
	}
	return &s.bodies[i]
}

// Add creates a body from spec and returns its index. The mass is clamped
// to MinMass. ErrStoreFull is returned once MaxBodies bodies exist.
func (s *Store) Add(spec BodySpec) (int, error) {
	if len(s.bodies) >= s.cfg.MaxBodies {
		return -1, fmt.Errorf("add body %d: %w", len(s.bodies), ErrStoreFull)
	}
	b := Body{
		Position:   spec.Position,
		Velocity:   spec.Velocity,
		Mass:       ClampMass(spec.Mass),
		Movable:    spec.Movable,
		Color:      spec.Color,
		Trail:      NewTrail(s.cfg.TrailCapacity),
		Prediction: NewPrediction(s.cfg.Horizon),
	}
	b.Prediction.Reset(b.Position)
	s.bodies = append(s.bodies, b)
	return len(s.bodies) - 1, nil
}

// Remove deletes body i, preserving the order of the rest.
func (s *Store) Remove(i int) error {
	if i < 0 || i >= len(s.bodies) {
		return fmt.Errorf("remove body %d of %d: %w", i, len(s.bodies), ErrBodyIndex)
	}
	copy(s.bodies[i:], s.bodies[i+1:])
	s.bodies[len(s.bodies)-1] = Body{}
	s.bodies = s.bodies[:len(s.bodies)-1]
	return nil
}

// RemoveSet deletes every index in idx in one pass. Duplicates and
// out-of-range indices are ignored. It returns the number removed.
func (s *Store) RemoveSet(idx []int) int {
	if len(idx) == 0 {
		return 0
	}
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(s.bodies) {
			drop[i] = struct{}{}
		}
	}
	keep := s.bodies[:0]
	for i := range s.bodies {
		if _, gone := drop[i]; gone {
			continue
		}
		keep = append(keep, s.bodies[i])
	}
	for i := len(keep); i < len(s.bodies); i++ {
		s.bodies[i] = Body{}
	}
	s.bodies = keep
	return len(drop)
}

// Clear removes every body.
func (s *Store) Clear() {
	for i := range s.bodies {
		s.bodies[i] = Body{}
	}
	s.bodies = s.bodies[:0]
}

// Clone deep-copies the store.
func (s *Store) Clone() *Store {
	c := &Store{cfg: s.cfg, bodies: make([]Body, len(s.bodies))}
	for i := range s.bodies {
		c.bodies[i] = s.bodies[i].Clone()
	}
	return c
}

// Validate reports the first body whose position or velocity is not finite.
func (s *Store) Validate() error {
	for i := range s.bodies {
		if !Finite(s.bodies[i].Position) || !Finite(s.bodies[i].Velocity) {
			return fmt.Errorf("body %d: %w", i, ErrInvalidState)
		}
	}
	return nil
}
