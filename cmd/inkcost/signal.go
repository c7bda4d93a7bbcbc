package main

import (
	"context"
	"os/signal"
)

// cancelOnStop returns a context canceled by the first stop signal. An
// estimate already running finishes its current page, then reports the
// pages it has priced.
func cancelOnStop(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, stopSignals...)
}
