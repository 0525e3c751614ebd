package aether

import "github.com/rs/zerolog"

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger replaces the default no-op logger. The registry tags every event
// with its instance id and hands systems sub-loggers derived from it.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithInstanceID overrides the generated instance id used to correlate log
// output when several registries share a process.
func WithInstanceID(id string) Option {
	return func(r *Registry) {
		r.instanceID = id
	}
}
