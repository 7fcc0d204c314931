package desim

// envOptions holds configuration options for Environment creation.
type envOptions struct {
	initialTime float64
	logger      *Logger
}

// EnvOption configures an Environment instance.
type EnvOption interface {
	applyEnv(*envOptions)
}

// envOptionImpl implements EnvOption.
type envOptionImpl struct {
	applyEnvFunc func(*envOptions)
}

func (o *envOptionImpl) applyEnv(opts *envOptions) {
	o.applyEnvFunc(opts)
}

// WithInitialTime sets the Environment's starting virtual time. Defaults
// to 0 when not given.
func WithInitialTime(t float64) EnvOption {
	return &envOptionImpl{func(opts *envOptions) {
		opts.initialTime = t
	}}
}

// WithLogger attaches a structured logger. Scheduling, stepping, and
// interrupt delivery emit trace/debug records through it; a nil logger
// (the default) disables all of this package's logging.
func WithLogger(logger *Logger) EnvOption {
	return &envOptionImpl{func(opts *envOptions) {
		opts.logger = logger
	}}
}

// resolveEnvOptions applies EnvOption instances to envOptions.
func resolveEnvOptions(opts []EnvOption) *envOptions {
	cfg := &envOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // skip nil options gracefully
		}
		opt.applyEnv(cfg)
	}
	return cfg
}
