package channels

import (
	"context"
	"testing"
	"time"

	"github.com/matta/worksync/internal/gateway/gatewaytest"
	"github.com/matta/worksync/internal/mutate"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

// channelList holds the list a Controller refreshes after a send.
type channelList struct {
	g     *gatewaytest.Fake
	chs   []workspace.Channel
	calls int
}

func (l *channelList) RefreshChannels(ctx context.Context) error {
	l.calls++
	chs, err := l.g.ListChannels(ctx, "acme")
	if err != nil {
		return err
	}
	l.chs = chs
	return nil
}

func contents(ms []workspace.Message) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Content)
	}
	return out
}

func TestLoadChronological(t *testing.T) {
	f := gatewaytest.New(base)
	// Stored out of order: t3, t1, t2.
	for _, m := range []struct {
		content string
		offset  time.Duration
	}{{"t3", 3 * time.Minute}, {"t1", time.Minute}, {"t2", 2 * time.Minute}} {
		f.AddMessage("acme", workspace.Message{Content: m.content, Channel: "general", CreatedAt: workspace.At(base.Add(m.offset))})
	}
	f.AddMessage("acme", workspace.Message{Content: "elsewhere", Channel: "random", CreatedAt: workspace.At(base)})

	c := NewController(f, "acme", Options{}, nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"t1", "t2", "t3"}, contents(c.Messages()))
}

func TestLoadBoundedPage(t *testing.T) {
	f := gatewaytest.New(base)
	for i := 0; i < 5; i++ {
		f.AddMessage("acme", workspace.Message{Content: string(rune('a' + i)), Channel: "general", CreatedAt: workspace.At(base.Add(time.Duration(i) * time.Minute))})
	}
	c := NewController(f, "acme", Options{Limit: 2}, nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"d", "e"}, contents(c.Messages()))
}

func TestLimitClamped(t *testing.T) {
	c := NewController(gatewaytest.New(base), "acme", Options{Limit: 500}, nil)
	assert.Equal(t, MaxLimit, c.opts.Limit)
}

func TestSwitchDiscardsPage(t *testing.T) {
	ctx := context.Background()
	f := gatewaytest.New(base)
	f.AddMessage("acme", workspace.Message{Content: "hello", Channel: "general", CreatedAt: workspace.At(base)})
	c := NewController(f, "acme", Options{}, nil)
	require.NoError(t, c.Load(ctx))
	c.SelectRecipient(&[]workspace.ID{4}[0])

	require.NoError(t, c.Switch(ctx, "random"))
	assert.Equal(t, "random", c.Active())
	assert.Empty(t, c.Messages())
	assert.Nil(t, c.Recipient())
}

func TestSendWithoutContacts(t *testing.T) {
	f := gatewaytest.New(base)
	list := &channelList{g: f}
	c := NewController(f, "acme", Options{List: list}, nil)
	_, err := c.Send(context.Background(), nil, "hello")
	assert.True(t, errors.Is(err, mutate.ErrNoContacts))
	assert.Zero(t, f.TotalCalls())
	assert.Empty(t, c.Messages())
	assert.Zero(t, list.calls)
	assert.False(t, c.Sending())
}

func TestSendEmpty(t *testing.T) {
	f := gatewaytest.New(base)
	c := NewController(f, "acme", Options{}, nil)
	_, err := c.Send(context.Background(), &workspace.Contact{ID: 1}, "   ")
	assert.True(t, errors.Is(err, mutate.ErrEmptyContent))
	assert.Zero(t, f.TotalCalls())
}

func TestSendReloads(t *testing.T) {
	ctx := context.Background()
	f := gatewaytest.New(base)
	ada, err := f.CreateContact(ctx, "acme", workspace.NewContact{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	list := &channelList{g: f}
	c := NewController(f, "acme", Options{List: list}, nil)

	m, err := c.Send(ctx, &ada, "first")
	require.NoError(t, err)
	assert.Nil(t, m.RecipientID)
	_, err = c.Send(ctx, &ada, "second")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, contents(c.Messages()))
	assert.Equal(t, 2, list.calls)
	chs := list.chs
	require.Len(t, chs, 1)
	assert.Equal(t, "general", chs[0].Name)
	assert.Equal(t, 2, chs[0].MessageCount)
	assert.Equal(t, 2, chs[0].UnreadCount)
}

func TestRecipientOnlyOnPrivateChannel(t *testing.T) {
	ctx := context.Background()
	f := gatewaytest.New(base)
	ada, err := f.CreateContact(ctx, "acme", workspace.NewContact{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	bob, err := f.CreateContact(ctx, "acme", workspace.NewContact{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	c := NewController(f, "acme", Options{}, nil)

	c.SelectRecipient(&bob.ID)
	m, err := c.Send(ctx, &ada, "to everyone")
	require.NoError(t, err)
	assert.Nil(t, m.RecipientID)

	require.NoError(t, c.Switch(ctx, PrivateChannel))
	assert.True(t, c.IsPrivate())
	c.SelectRecipient(&bob.ID)
	m, err = c.Send(ctx, &ada, "just you")
	require.NoError(t, err)
	require.NotNil(t, m.RecipientID)
	assert.Equal(t, bob.ID, *m.RecipientID)
	assert.Nil(t, c.Recipient())
}

func TestSendFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	f := gatewaytest.New(base)
	f.AddMessage("acme", workspace.Message{Content: "old", Channel: "general", CreatedAt: workspace.At(base)})
	c := NewController(f, "acme", Options{}, nil)
	require.NoError(t, c.Load(ctx))

	f.Fail("CreateMessage", errors.New("connection reset"))
	_, err := c.Send(ctx, &workspace.Contact{ID: 1}, "new")
	var fail *mutate.Failure
	require.True(t, errors.As(err, &fail))
	_, shown := mutate.UserMessage(err)
	assert.True(t, shown)
	assert.Equal(t, []string{"old"}, contents(c.Messages()))
	assert.Equal(t, 1, f.Calls("ListMessages"))
}
