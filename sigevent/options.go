// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sigevent

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-sigevent/diag"
	"github.com/joeycumines/logiface"
)

// timerOptions holds configuration options for Timer creation.
type timerOptions struct {
	attr     *Attributes
	pool     *Pool
	logger   *logiface.Logger[logiface.Event]
	sink     diag.Sink
	value    time.Duration
	interval time.Duration
	clock    Clock
	notify   Mechanism
	schedule bool
}

// --- Options ---

// Option configures a Timer.
type Option interface {
	apply(*timerOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyFunc func(*timerOptions) error
}

func (t *optionImpl) apply(opts *timerOptions) error {
	return t.applyFunc(opts)
}

// WithNotify sets the notification mechanism. Defaults to [NotifyThread].
func WithNotify(notify Mechanism) Option {
	return &optionImpl{func(opts *timerOptions) error {
		if !notify.valid() {
			return fmt.Errorf("sigevent: invalid notification mechanism: %s", notify)
		}
		opts.notify = notify
		return nil
	}}
}

// WithClock sets the clock the timer measures. Defaults to [ClockRealtime].
func WithClock(clock Clock) Option {
	return &optionImpl{func(opts *timerOptions) error {
		opts.clock = clock
		return nil
	}}
}

// WithAttributes sets the attributes applied to each delivery.
func WithAttributes(attr *Attributes) Option {
	return &optionImpl{func(opts *timerOptions) error {
		opts.attr = attr
		return nil
	}}
}

// WithSchedule arms the timer as part of creation, see [Timer.Set].
func WithSchedule(value, interval time.Duration) Option {
	return &optionImpl{func(opts *timerOptions) error {
		if value < 0 || interval < 0 {
			return fmt.Errorf("sigevent: negative schedule: value=%s interval=%s", value, interval)
		}
		opts.schedule = true
		opts.value = value
		opts.interval = interval
		return nil
	}}
}

// WithPool sets the pool used by [NotifyPool]. Defaults to [DefaultPool].
func WithPool(pool *Pool) Option {
	return &optionImpl{func(opts *timerOptions) error {
		opts.pool = pool
		return nil
	}}
}

// WithLogger configures structured logging of the timer lifecycle.
// A nil logger disables logging, which is the default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *timerOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithSink sets where failed system calls are reported. Defaults to the
// sink installed with [diag.SetDefault] at the time of each report.
func WithSink(sink diag.Sink) Option {
	return &optionImpl{func(opts *timerOptions) error {
		opts.sink = sink
		return nil
	}}
}

// resolveOptions applies Option instances to timerOptions.
func resolveOptions(opts []Option) (*timerOptions, error) {
	cfg := &timerOptions{
		notify: NotifyThread,
		clock:  ClockRealtime,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.notify == NotifyPool && cfg.pool == nil {
		cfg.pool = DefaultPool()
	}
	if cfg.sink == nil {
		cfg.sink = diag.SinkFunc(diag.Report)
	}
	return cfg, nil
}
