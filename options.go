package linearmap

import "log/slog"

var discardLogger = slog.New(slog.DiscardHandler)

type config struct {
	maxCapacity  int
	logger       *slog.Logger
	panicHandler func(error)
}

type Option func(c *config)

// Limits the number of buckets a table may allocate. Growing past the limit
// fails with ErrAllocation. Non-positive values mean no limit.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		c.maxCapacity = n
	}
}

// Sets the logger receiving growth and allocation failure records.
// Tables are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Sets the function the Must* entry points call with any error they hit.
// The default handler panics with the error.
func WithPanicHandler(f func(error)) Option {
	return func(c *config) {
		c.panicHandler = f
	}
}

func defaultPanicHandler(err error) {
	panic(err)
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	if c.logger == nil {
		c.logger = discardLogger
	}

	if c.panicHandler == nil {
		c.panicHandler = defaultPanicHandler
	}

	return c
}
