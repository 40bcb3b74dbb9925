package log

// Option configures a [Logger]. Options are applied in order, so later
// options override earlier ones.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}
