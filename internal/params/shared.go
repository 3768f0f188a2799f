package params

// Shared holds the fields that must agree across every member of an ensemble.
type Shared struct {
	ModelName         string `yaml:"model_name"`
	Version           string `yaml:"version"`
	Dataset           string `yaml:"dataset"`
	StandardizeData   bool   `yaml:"standardize_data"`
	NumPixels         int    `yaml:"num_pixels"`
	BatchSize         int    `yaml:"batch_size"`
	NumEpochs         int    `yaml:"num_epochs"`
	TrainLogsPerEpoch int    `yaml:"train_logs_per_epoch"`
}

// SharedParams implements Set.
func (s Shared) SharedParams() Shared {
	return s
}

func (s *Shared) shared() *Shared {
	return s
}

// SharedHolder is implemented by pointers to every parameter set type.
type SharedHolder interface {
	shared() *Shared
}

// MNISTShared is the shared fragment of the lca_mlp_mnist ensemble.
func MNISTShared() Shared {
	return Shared{
		ModelName:         "lca_mlp_mnist",
		Version:           "0.0",
		Dataset:           "mnist",
		StandardizeData:   true,
		NumPixels:         28 * 28 * 1,
		BatchSize:         50,
		NumEpochs:         150,
		TrainLogsPerEpoch: 4,
	}
}

// SharedLayer overwrites the receiving set's shared fragment with s.
// Builders place it last so shared values win over every earlier layer.
func SharedLayer[T any, P interface {
	*T
	SharedHolder
}](s Shared) Layer[T] {
	return func(t *T) error {
		*P(t).shared() = s
		return nil
	}
}

func (s Shared) check() error {
	switch {
	case s.Dataset == "":
		return missing("dataset")
	case s.NumPixels <= 0:
		return invalid("num_pixels", "must be positive, got %d", s.NumPixels)
	case s.BatchSize <= 0:
		return invalid("batch_size", "must be positive, got %d", s.BatchSize)
	case s.NumEpochs <= 0:
		return invalid("num_epochs", "must be positive, got %d", s.NumEpochs)
	case s.TrainLogsPerEpoch <= 0:
		return invalid("train_logs_per_epoch", "must be positive, got %d", s.TrainLogsPerEpoch)
	}
	return nil
}
