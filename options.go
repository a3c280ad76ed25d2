package aspect

// Option configures a Component during creation.
type Option func(*options)

type options struct {
	name       string
	cascading  Flag
	bubbling   Flag
	membership Flag
	host       any
}

// WithName names the component, names show up in paths, logs and panics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCascading sets the flags pushed down to children when invalidated.
func WithCascading(flags Flag) Option {
	return func(o *options) {
		o.cascading = flags
	}
}

// WithBubbling sets the flags invalidated on the component when a child
// invalidates them.
func WithBubbling(flags Flag) Option {
	return func(o *options) {
		o.bubbling = flags
	}
}

// WithMembership sets the flags invalidated, unconditionally, when a
// child joins or leaves the layout (FlagLayoutMembership).
func WithMembership(flags Flag) Option {
	return func(o *options) {
		o.membership = flags
	}
}

// WithHost attaches the value owning the component, typically a widget,
// returned by Component.Host.
func WithHost(host any) Option {
	return func(o *options) {
		o.host = host
	}
}
