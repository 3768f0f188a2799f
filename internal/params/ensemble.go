package params

import "fmt"

// Ensemble is an aggregate of member parameter sets that agree on Shared.
type Ensemble struct {
	Base   `yaml:",inline"`
	Shared `yaml:",inline"`

	// Members are kept in declaration order.
	Members []Set `yaml:"ensemble_params"`
}

// Kind implements Set.
func (Ensemble) Kind() ModelType {
	return ModelEnsemble
}

// Member returns the first member of the given model type.
func (e Ensemble) Member(kind ModelType) (Set, bool) {
	for _, m := range e.Members {
		if m.Kind() == kind {
			return m, true
		}
	}
	return nil, false
}

// NewEnsembleBuilder returns a builder that finalizes every member in order
// and then overlays shared on the ensemble itself. Members import shared
// through their own layers; the ensemble never writes into them.
func NewEnsembleBuilder(env Env, shared Shared, members ...SetBuilder) *Builder[Ensemble, *Ensemble] {
	members = append([]SetBuilder(nil), members...)
	return NewBuilder[Ensemble](
		BaseLayer[Ensemble](env),
		func(e *Ensemble) error {
			e.ModelType = ModelEnsemble
			e.Members = make([]Set, 0, len(members))
			for i, mb := range members {
				m, err := mb.buildMember(i)
				if err != nil {
					return fmt.Errorf("member %d: %w", i, err)
				}
				e.Members = append(e.Members, m)
			}
			return nil
		},
		SharedLayer[Ensemble](shared),
	)
}

func (e *Ensemble) deriveHelpers() error {
	return nil
}

func (e *Ensemble) validate() error {
	if err := e.Base.check(ModelEnsemble); err != nil {
		return err
	}
	if err := e.Shared.check(); err != nil {
		return err
	}
	if len(e.Members) == 0 {
		return missing("ensemble_params")
	}
	for i, m := range e.Members {
		if m.Kind() == ModelEnsemble {
			return invalid("ensemble_params", "member %d: nested ensembles are not supported", i)
		}
		if m.SharedParams() != e.Shared {
			return invalid("ensemble_params", "member %d (%s) disagrees on shared fields", i, m.Kind())
		}
	}
	return nil
}
