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

// Package channels keeps the active channel's message history.
//
// A load fetches one bounded page, newest first, and presents it oldest
// first.  Switching channels discards the page and loads afresh; there
// is no incremental paging.
package channels

import (
	"context"
	"log/slog"
	"strings"
	gosync "sync"

	"github.com/matta/worksync/internal/gateway"
	"github.com/matta/worksync/internal/generation"
	"github.com/matta/worksync/internal/mutate"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

const (
	DefaultChannel = "general"
	PrivateChannel = "private"

	// DefaultLimit is the page size when none is configured.
	DefaultLimit = 50

	// MaxLimit is the largest page the service serves.
	MaxLimit = 100
)

// ChannelList refetches the channel list and commits it wherever the
// list is held.
type ChannelList interface {
	RefreshChannels(ctx context.Context) error
}

// Options configures a Controller.  Zero fields take the defaults.
type Options struct {
	DefaultChannel string
	PrivateChannel string
	Limit          int
	Gate           *mutate.Gate

	// List is refreshed after each successful send.  Nil skips the
	// refresh.
	List ChannelList
}

// Controller holds the active channel and its history.  The channel
// list itself belongs to the snapshot.  It is safe for concurrent use.
type Controller struct {
	g       sync.Messenger
	tenant  string
	opts    Options
	log     *slog.Logger
	gen     generation.Counter
	sending *mutate.Coordinator

	mu        gosync.Mutex
	active    string
	messages  []workspace.Message
	recipient *workspace.ID
}

// NewController returns a Controller with the default channel active
// and nothing loaded.
func NewController(g sync.Messenger, tenant string, opts Options, logger *slog.Logger) *Controller {
	if opts.DefaultChannel == "" {
		opts.DefaultChannel = DefaultChannel
	}
	if opts.PrivateChannel == "" {
		opts.PrivateChannel = PrivateChannel
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		g:       g,
		tenant:  tenant,
		opts:    opts,
		log:     logger.With("component", "channels", "tenant", tenant),
		sending: mutate.NewCoordinator(mutate.Message, opts.Gate, logger),
		active:  opts.DefaultChannel,
	}
}

// Active returns the active channel name.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// IsPrivate reports whether the active channel takes a recipient.
func (c *Controller) IsPrivate() bool {
	return c.Active() == c.opts.PrivateChannel
}

// Messages returns the loaded history, oldest first.
func (c *Controller) Messages() []workspace.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]workspace.Message(nil), c.messages...)
}

// Sending reports whether a message send is in flight.
func (c *Controller) Sending() bool {
	return c.sending.Busy()
}

// Recipient returns the selected recipient, or nil for the whole
// channel.
func (c *Controller) Recipient() *workspace.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recipient
}

// SelectRecipient addresses the next message on the private channel to
// id.  A nil id addresses the whole channel.
func (c *Controller) SelectRecipient(id *workspace.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == nil {
		c.recipient = nil
		return
	}
	v := *id
	c.recipient = &v
}

// Load fetches the active channel's latest page.  A response overtaken
// by a later Load or Switch is dropped with generation.ErrStale.
func (c *Controller) Load(ctx context.Context) error {
	gen := c.gen.Next()
	channel := c.Active()

	page, err := c.g.ListMessages(ctx, c.tenant, gateway.MessageQuery{Channel: channel, Limit: c.opts.Limit})
	if err != nil {
		c.log.Error("failed to load messages", slog.String("channel", channel), slog.String("error", err.Error()))
		return errors.Wrapf(err, "loading #%s", channel)
	}
	chronological := make([]workspace.Message, len(page))
	for i, m := range page {
		chronological[len(page)-1-i] = m
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.IsCurrent(gen) {
		return generation.ErrStale
	}
	c.messages = chronological
	return nil
}

// Switch makes name the active channel, discards the loaded page and
// the recipient, and loads the new channel.
func (c *Controller) Switch(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("channel name is empty")
	}
	c.mu.Lock()
	c.active = name
	c.messages = nil
	c.recipient = nil
	c.mu.Unlock()
	return c.Load(ctx)
}

// Send posts content to the active channel as sender.  A nil sender
// means no contact exists yet and the send is rejected without calling
// the service.  The recipient applies only on the private channel.  On
// success the history and the channel list are reloaded.
func (c *Controller) Send(ctx context.Context, sender *workspace.Contact, content string) (workspace.Message, error) {
	var out workspace.Message
	err := c.sending.Run(ctx, func(ctx context.Context) error {
		if sender == nil {
			return mutate.ErrNoContacts
		}
		if strings.TrimSpace(content) == "" {
			return mutate.ErrEmptyContent
		}

		c.mu.Lock()
		in := workspace.NewMessage{
			Content:  content,
			SenderID: sender.ID,
			Channel:  c.active,
		}
		if c.active == c.opts.PrivateChannel && c.recipient != nil {
			id := *c.recipient
			in.RecipientID = &id
		}
		c.mu.Unlock()

		var err error
		if out, err = c.g.CreateMessage(ctx, c.tenant, in); err != nil {
			return err
		}

		c.SelectRecipient(nil)
		if err := c.Load(ctx); err != nil && !errors.Is(err, generation.ErrStale) {
			c.log.Warn("history reload after send failed", slog.String("error", err.Error()))
		}
		if c.opts.List != nil {
			if err := c.opts.List.RefreshChannels(ctx); err != nil && !errors.Is(err, generation.ErrStale) {
				c.log.Warn("channel refresh after send failed", slog.String("error", err.Error()))
			}
		}
		return nil
	})
	return out, err
}
