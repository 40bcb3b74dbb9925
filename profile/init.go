package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`

// Stopper ends a profiling session, flushing its output.
type Stopper interface{ Stop() }

// Settings select what is profiled and where the output goes.
type Settings struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option modifies [Settings].
type Option func(Settings) Settings

// WithMode selects one of [Modes].
func WithMode(mode string) Option {
	return func(s Settings) Settings {
		s.Mode = mode

		return s
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(s Settings) Settings {
		s.Dir = dir

		return s
	}
}

// WithQuiet suppresses the profiler's own log lines.
func WithQuiet(quiet bool) Option {
	return func(s Settings) Settings {
		s.Quiet = quiet

		return s
	}
}

// Start begins profiling as configured by opts. An empty or unknown mode,
// or a build without [Tag], yields a no-op Stopper. Stop is always safe to
// call.
func Start(opts ...Option) Stopper {
	var s Settings

	for _, opt := range opts {
		if opt != nil {
			s = opt(s)
		}
	}

	if s.Mode == "" {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
