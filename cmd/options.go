package cmd

// Options holds the shared command-line options for the slopguard CLI.
type Options struct {
	Format    string
	Verbosity int
	Post      bool // apply label/comment/close actions to the PR
	DryRun    bool // with --post, print planned actions without applying
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, markdown, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithPost enables applying moderation actions to the PR.
func WithPost(post bool) Option {
	return func(o *Options) {
		o.Post = post
	}
}
