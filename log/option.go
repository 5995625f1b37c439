package log

// Option applies a single configuration setting to a config value.
type Option func(config) config

// apply folds the given options over cfg in order and returns the result.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}
