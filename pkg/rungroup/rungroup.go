// Package rungroup expands on oklog/run, adding logs to indicate which actor
// caused the interrupt and which actor, if any, is preventing shutdown. Unlike
// run.Group, it stops waiting on actors that don't return in time.
package rungroup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

type (
	Group struct {
		logger           log.Logger
		actors           []rungroupActor
		interruptTimeout time.Duration
		executeTimeout   time.Duration
	}

	rungroupActor struct {
		name      string // human-readable identifier for the actor
		execute   func() error
		interrupt func(error)
	}

	actorError struct {
		errorSourceName string
		err             error
	}
)

const (
	interruptTimeout     = 10 * time.Second // How long for all actors to return from their `interrupt` function
	executeReturnTimeout = 5 * time.Second  // After interrupted, how long for all actors to exit their `execute` functions
)

func NewRunGroup(logger log.Logger) *Group {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Group{
		logger:           log.With(logger, "component", "run_group"),
		actors:           make([]rungroupActor, 0),
		interruptTimeout: interruptTimeout,
		executeTimeout:   executeReturnTimeout,
	}
}

func (g *Group) Add(name string, execute func() error, interrupt func(error)) {
	g.actors = append(g.actors, rungroupActor{name, execute, interrupt})
}

func (g *Group) Run() error {
	if len(g.actors) == 0 {
		return nil
	}

	level.Debug(g.logger).Log("msg", "starting all actors", "actor_count", len(g.actors))

	actorErrors := make(chan actorError, len(g.actors))
	for _, a := range g.actors {
		a := a
		go func() {
			defer func() {
				if r := recover(); r != nil {
					level.Info(g.logger).Log("msg", "shutting down after actor panic", "actor", a.name)

					// execute never sent its result, so send one on its behalf
					actorErrors <- actorError{
						errorSourceName: a.name,
						err:             fmt.Errorf("executing rungroup actor %s panicked: %+v", a.name, r),
					}
				}
			}()

			level.Debug(g.logger).Log("msg", "starting actor", "actor", a.name)
			err := a.execute()
			actorErrors <- actorError{
				errorSourceName: a.name,
				err:             err,
			}
		}()
	}

	// Wait for the first actor to stop.
	initialActorErr := <-actorErrors

	level.Info(g.logger).Log(
		"msg", "received interrupt error from first actor -- shutting down other actors",
		"err", initialActorErr.err,
		"error_source", initialActorErr.errorSourceName,
	)

	defer level.Debug(g.logger).Log(
		"msg", "done shutting down actors",
		"actor_count", len(g.actors),
		"initial_err", initialActorErr,
	)

	// Signal all actors to stop.
	numActors := int64(len(g.actors))
	interruptWait := semaphore.NewWeighted(numActors)
	for _, a := range g.actors {
		a := a
		if err := interruptWait.Acquire(context.Background(), 1); err != nil {
			return errors.Wrap(err, "acquiring interrupt semaphore")
		}
		go func() {
			defer interruptWait.Release(1)
			defer func() {
				if r := recover(); r != nil {
					level.Error(g.logger).Log("msg", "actor panicked during interrupt", "actor", a.name, "panic", r)
				}
			}()

			level.Debug(g.logger).Log("msg", "interrupting actor", "actor", a.name)
			a.interrupt(initialActorErr.err)
			level.Debug(g.logger).Log("msg", "interrupt complete", "actor", a.name)
		}()
	}

	interruptCtx, interruptCancel := context.WithTimeout(context.Background(), g.interruptTimeout)
	defer interruptCancel()

	// Wait for interrupts to complete, but only until we hit our interruptCtx timeout
	if err := interruptWait.Acquire(interruptCtx, numActors); err != nil {
		level.Debug(g.logger).Log("msg", "timeout waiting for interrupts to complete, proceeding with shutdown", "err", err)
	}

	// Wait for all other actors to stop, but only until we hit our execute timeout
	timeoutTimer := time.NewTimer(g.executeTimeout)
	defer timeoutTimer.Stop()
	for i := 1; i < cap(actorErrors); i++ {
		select {
		case <-timeoutTimer.C:
			level.Debug(g.logger).Log("msg", "rungroup shutdown deadline exceeded, not waiting for any more actors to return")

			// Return the original error so we can proceed with shutdown
			return initialActorErr.err
		case e := <-actorErrors:
			level.Debug(g.logger).Log(
				"msg", "received error from actor",
				"actor", e.errorSourceName,
				"err", e.err,
				"index", i,
			)
		}
	}

	// Return the original error.
	return initialActorErr.err
}

func (a actorError) String() string {
	return fmt.Sprintf("%s returned error: %+v", a.errorSourceName, a.err)
}
