// Package scheduler runs background housekeeping tasks for the engine.
package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type Task func(ctx context.Context) error

// Every runs task once immediately and then on each tick until ctx is done.
// Errors are logged and never stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	runTask(ctx, name, task)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runTask(ctx, name, task)
		}
	}
}

func runTask(ctx context.Context, name string, task Task) {
	if err := task(ctx); err != nil {
		log.Warnf("[%s] error: %v", name, err)
	}
}
