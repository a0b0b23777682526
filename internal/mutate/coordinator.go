// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mutate submits new entities to the workspace service.
//
// Each kind of submission has its own Coordinator.  A Coordinator runs
// at most one submission at a time and reports ErrBusy to a caller that
// tries to start a second one; different coordinators do not exclude
// each other unless they share a Gate.
package mutate

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrBusy is returned while the same kind of submission is still in
	// flight.
	ErrBusy = errors.New("submission already in progress")

	// ErrNoContacts is returned by submissions that need an acting
	// contact when none exists.
	ErrNoContacts = errors.New("create a contact first")

	// ErrEmptyContent is returned for a message with no visible text.
	ErrEmptyContent = errors.New("message is empty")

	// ErrNoFile is returned for an upload without content.
	ErrNoFile = errors.New("choose a file to upload")

	// ErrInvalidInput wraps form values that cannot be coerced.
	ErrInvalidInput = errors.New("invalid input")
)

// Domain names the kind of entity a Coordinator submits.
type Domain string

const (
	Contact Domain = "contact"
	Task    Domain = "task"
	Folder  Domain = "folder"
	Upload  Domain = "document"
	Message Domain = "message"
	Event   Domain = "event"
	Project Domain = "project"
)

// Gate serializes submissions across every Coordinator sharing it.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate returns a Gate admitting one submission at a time.
func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// Coordinator guards one kind of submission.
type Coordinator struct {
	domain Domain
	gate   *Gate
	log    *slog.Logger
	busy   atomic.Bool
}

// NewCoordinator returns an idle Coordinator.  gate may be nil.
func NewCoordinator(d Domain, gate *Gate, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		domain: d,
		gate:   gate,
		log:    logger.With("component", "mutate", "domain", string(d)),
	}
}

// Domain returns the kind of entity c submits.
func (c *Coordinator) Domain() Domain {
	return c.domain
}

// Busy reports whether a submission is in flight.
func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

// Run executes fn as one submission.  The busy flag is set for the
// duration of fn and cleared however fn returns.  An error from fn that
// is not already a *Failure or a precondition error is wrapped in one.
func (c *Coordinator) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !c.busy.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrBusy, "create %s", c.domain)
	}
	defer c.busy.Store(false)

	if c.gate != nil {
		if err := c.gate.sem.Acquire(ctx, 1); err != nil {
			return errors.Wrap(err, "waiting for other submissions")
		}
		defer c.gate.sem.Release(1)
	}

	err := fn(ctx)
	switch {
	case err == nil:
		return nil
	case isPrecondition(err):
		c.log.Info("submission rejected", slog.String("reason", err.Error()))
		return err
	}
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Domain: c.domain, Err: err}
	}
	c.log.Error("submission failed", slog.String("error", err.Error()))
	return f
}

func isPrecondition(err error) bool {
	for _, target := range []error{ErrNoContacts, ErrEmptyContent, ErrNoFile, ErrInvalidInput} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Failure is a submission the service did not accept, or that did not
// reach it.  Committed state is left as it was.
type Failure struct {
	Domain Domain
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("create %s: %v", f.Domain, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
