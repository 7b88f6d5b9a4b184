package combat

import "log/slog"

// Option configures a Battle or a driver run.
type Option func(*options)

type options struct {
	logger *slog.Logger
	emit   func(Event)
	record bool
	watch  *Faction
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger; actions go to Debug, summaries to Info.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEmit registers a callback for every combat event.
func WithEmit(fn func(Event)) Option {
	return func(o *options) { o.emit = fn }
}

// WithRecord keeps the events in SimResult.Events.
func WithRecord() Option {
	return func(o *options) { o.record = true }
}

// WithStopOnLoss ends the battle as soon as an agent of f dies.
func WithStopOnLoss(f Faction) Option {
	return func(o *options) { o.watch = &f }
}
