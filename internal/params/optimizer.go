package params

import "math"

// Optimizer describes the optimizer and its step-decay learning-rate schedule.
type Optimizer struct {
	Name                     string    `yaml:"name"`
	LRAnnealingMilestoneFrac []float64 `yaml:"lr_annealing_milestone_frac"`
	LRDecayRate              float64   `yaml:"lr_decay_rate"`

	// MilestoneEpochs is derived from LRAnnealingMilestoneFrac and num_epochs.
	MilestoneEpochs []int `yaml:"milestone_epochs,omitempty"`
}

// Supported optimizer names.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// LearningRate returns base decayed once for every milestone at or before epoch.
func (o Optimizer) LearningRate(base float64, epoch int) float64 {
	lr := base
	for _, m := range o.MilestoneEpochs {
		if epoch >= m {
			lr *= o.LRDecayRate
		}
	}
	return lr
}

func (o *Optimizer) deriveMilestones(numEpochs int) {
	if len(o.LRAnnealingMilestoneFrac) == 0 {
		o.MilestoneEpochs = nil
		return
	}
	o.MilestoneEpochs = make([]int, len(o.LRAnnealingMilestoneFrac))
	for i, frac := range o.LRAnnealingMilestoneFrac {
		// Epsilon guards fractions like 0.29 whose product lands just under an integer.
		o.MilestoneEpochs[i] = int(math.Floor(frac*float64(numEpochs) + 1e-9))
	}
}

func (o Optimizer) check() error {
	switch o.Name {
	case OptimizerSGD, OptimizerAdam:
	case "":
		return missing("optimizer.name")
	default:
		return invalid("optimizer.name", "unsupported optimizer %q", o.Name)
	}

	prev := 0.0
	for i, frac := range o.LRAnnealingMilestoneFrac {
		if frac <= 0 || frac > 1 {
			return invalid("optimizer.lr_annealing_milestone_frac", "entry %d must be in (0, 1], got %v", i, frac)
		}
		if frac < prev {
			return invalid("optimizer.lr_annealing_milestone_frac", "entries must be ascending, got %v", o.LRAnnealingMilestoneFrac)
		}
		prev = frac
	}

	if o.LRDecayRate <= 0 || o.LRDecayRate > 1 {
		return invalid("optimizer.lr_decay_rate", "must be in (0, 1], got %v", o.LRDecayRate)
	}
	return nil
}

func checkRates(weightLR, weightDecay float64) error {
	if weightLR < 0 {
		return invalid("weight_lr", "must be non-negative, got %v", weightLR)
	}
	if weightDecay < 0 {
		return invalid("weight_decay", "must be non-negative, got %v", weightDecay)
	}
	return nil
}
