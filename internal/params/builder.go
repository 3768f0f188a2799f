package params

import (
	"fmt"
	"math/rand/v2"
)

// Layer writes raw fields onto a draft. Layers run in the order they were added.
type Layer[T any] func(*T) error

type finalizer interface {
	BaseHolder
	deriveHelpers() error
	validate() error
}

// SetBuilder produces a finalized Set. Ensembles are assembled from SetBuilders.
type SetBuilder interface {
	Build() (Set, error)
	buildMember(index int) (Set, error)
}

// Builder applies layers to a fresh draft and finalizes it.
type Builder[T Set, P interface {
	*T
	finalizer
}] struct {
	layers []Layer[T]
	rng    *rand.Rand
}

// NewBuilder returns a builder that applies layers in order.
func NewBuilder[T Set, P interface {
	*T
	finalizer
}](layers ...Layer[T]) *Builder[T, P] {
	return &Builder[T, P]{layers: append([]Layer[T](nil), layers...)}
}

// With appends layers after the existing ones.
func (b *Builder[T, P]) With(layers ...Layer[T]) *Builder[T, P] {
	b.layers = append(b.layers, layers...)
	return b
}

// WithRand hands rng to the next finalized set. Ownership moves with it, so a
// later Finalize seeds a fresh generator instead.
func (b *Builder[T, P]) WithRand(rng *rand.Rand) *Builder[T, P] {
	b.rng = rng
	return b
}

// Finalize runs every layer, derives helper fields and validates the result.
func (b *Builder[T, P]) Finalize() (T, error) {
	return b.finalize(0)
}

// Build is Finalize returning the Set interface.
func (b *Builder[T, P]) Build() (Set, error) {
	set, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (b *Builder[T, P]) buildMember(index int) (Set, error) {
	set, err := b.finalize(uint64(index) + 1)
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (b *Builder[T, P]) finalize(stream uint64) (T, error) {
	var (
		draft T
		zero  T
	)
	for i, layer := range b.layers {
		if err := layer(&draft); err != nil {
			return zero, fmt.Errorf("params: layer %d: %w", i, err)
		}
	}

	p := P(&draft)
	base := p.base()
	switch {
	case base.Rand != nil:
	case b.rng != nil:
		base.Rand, b.rng = b.rng, nil
	default:
		base.Rand = newRand(base.RandSeed, stream)
	}

	if err := p.deriveHelpers(); err != nil {
		return zero, fmt.Errorf("params: derive %s helpers: %w", draft.Kind(), err)
	}
	if err := p.validate(); err != nil {
		return zero, fmt.Errorf("params: validate %s: %w", draft.Kind(), err)
	}
	return draft, nil
}

func newRand(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}
