package relocate

// Force selects how type conflicts are handled for a single call.
type Force int8

const (
	// ForceDefault defers to the engine-wide default.
	ForceDefault Force = iota
	ForceOn
	ForceOff
)

type options struct {
	into   bool
	moving bool
	force  Force
}

type Option func(*options)

// Into treats dst as a container that receives an entry named after src.
func Into() Option {
	return func(o *options) {
		o.into = true
	}
}

// Moving makes Merge move files instead of copying them.
func Moving() Option {
	return func(o *options) {
		o.moving = true
	}
}

func WithForce(force bool) Option {
	return func(o *options) {
		if force {
			o.force = ForceOn
		} else {
			o.force = ForceOff
		}
	}
}

func WithForceMode(force Force) Option {
	return func(o *options) {
		o.force = force
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
