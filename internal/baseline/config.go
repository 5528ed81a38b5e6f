package baseline

type Config struct {
	// Strict turns missing cost-matrix entries into errors instead of
	// the default zero cost. The default reproduces the baseline
	// semantics; strict mode is for catching estimator data errors.
	Strict bool
}

func DefaultConfig() Config {
	return Config{
		Strict: false,
	}
}

func (c Config) Validate() error {
	// Every field combination is currently valid; kept so callers can
	// validate uniformly with the other scheduler configs.
	return nil
}
