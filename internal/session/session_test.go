package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostazi/chat-core/internal/directory"
	"github.com/ostazi/chat-core/internal/i18n"
	"github.com/ostazi/chat-core/internal/model"
	"github.com/ostazi/chat-core/internal/store"
	"github.com/ostazi/chat-core/pkg/logger"
)

// stubResponder answers with a canned function, like a wired gateway
// would.
type stubResponder struct {
	fn func(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error)
}

func (s *stubResponder) Respond(ctx context.Context, channel model.ChannelKey, text string, locale model.Locale) (*model.Message, error) {
	return s.fn(ctx, channel, text, locale)
}

func echoResponder(prefix string) *stubResponder {
	return &stubResponder{fn: func(_ context.Context, ch model.ChannelKey, text string, _ model.Locale) (*model.Message, error) {
		return &model.Message{
			ID:        "r-" + text,
			Sender:    model.SenderFor(ch.Kind),
			Text:      prefix + text,
			Channel:   ch,
			Timestamp: time.Now(),
		}, nil
	}}
}

func failingResponder() *stubResponder {
	return &stubResponder{fn: func(context.Context, model.ChannelKey, string, model.Locale) (*model.Message, error) {
		return nil, errors.New("boom")
	}}
}

// recordingNotifier counts alert deliveries.
type recordingNotifier struct {
	mu     sync.Mutex
	count  int
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
}

func (n *recordingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func (n *recordingNotifier) last() (title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.count == 0 {
		return "", ""
	}
	return n.titles[n.count-1], n.bodies[n.count-1]
}

type fixture struct {
	session  *Session
	counters *store.MemoryStore
	notifier *recordingNotifier
}

func newFixture(t *testing.T, r *stubResponder) *fixture {
	t.Helper()
	counters := store.NewMemoryStore()
	notifier := &recordingNotifier{}
	dir := directory.New(directory.SeedEntries(), counters, logger.NewNop())
	return &fixture{
		session:  New(r, counters, notifier, dir, model.LocaleEnglish, logger.NewNop()),
		counters: counters,
		notifier: notifier,
	}
}

func sendText(t *testing.T, s *Session, text string) {
	t.Helper()
	s.UpdateDraft(text)
	require.True(t, s.Send(context.Background()))
}

func TestSelectChannelZeroesUnread(t *testing.T) {
	for _, kind := range []model.ChannelKind{model.ChannelSupport, model.ChannelAIAssistant} {
		f := newFixture(t, echoResponder(""))
		key := model.ChannelKey{Kind: kind}.String()
		f.counters.Set(key, 4)

		require.NoError(t, f.session.SelectChannel(context.Background(), kind))
		assert.Equal(t, 0, f.counters.Get(key), "counter for %s", kind)
	}

	f := newFixture(t, echoResponder(""))
	cp := directory.SeedEntries()[0]
	key := model.ChannelKey{Kind: model.ChannelCounterparty, CounterpartyID: cp.ID}.String()
	f.counters.Set(key, 2)

	f.session.SelectCounterparty(context.Background(), cp)
	assert.Equal(t, 0, f.counters.Get(key))
}

func TestSelectChannelOpensWithWelcome(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	assert.Equal(t, StateActiveConversation, f.session.State())
	require.NotNil(t, f.session.ActiveChannel())
	assert.Equal(t, model.ChannelAIAssistant, f.session.ActiveChannel().Kind)

	messages := f.session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, model.SenderAI, messages[0].Sender)
	assert.Equal(t, i18n.Welcome(model.ChannelAIAssistant, model.LocaleEnglish), messages[0].Text)
}

func TestSelectChannelUnknownKind(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	assert.ErrorIs(t, f.session.SelectChannel(context.Background(), model.ChannelKind("carrier_pigeon")), ErrUnknownChannel)
	assert.Equal(t, StateChannelSelection, f.session.State())
}

func TestCounterpartyKindRequiresSelection(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	f.session.UpdateDraft("lingering")
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelCounterparty))

	assert.Equal(t, StateCounterpartySelection, f.session.State())
	assert.Nil(t, f.session.ActiveChannel())
	assert.Empty(t, f.session.Messages())
	assert.Empty(t, f.session.Draft(), "picker discards the draft with the log")

	f.session.SelectCounterparty(context.Background(), directory.SeedEntries()[1])
	assert.Equal(t, StateActiveConversation, f.session.State())
	require.NotNil(t, f.session.ActiveChannel())
	assert.Equal(t, "t-102", f.session.ActiveChannel().CounterpartyID)
}

func TestSendAppendsUserAndReply(t *testing.T) {
	f := newFixture(t, echoResponder("a:"))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	sendText(t, f.session, "  2+2?  ")

	messages := f.session.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, model.SenderUser, messages[1].Sender)
	assert.Equal(t, "2+2?", messages[1].Text, "draft is trimmed before sending")
	assert.Equal(t, model.SenderAI, messages[2].Sender)
	assert.Equal(t, "a:2+2?", messages[2].Text)

	assert.Empty(t, f.session.Draft())
	assert.False(t, f.session.Awaiting())
}

func TestSendLogGrowsTwoPerExchange(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	const sends = 4
	for i := 0; i < sends; i++ {
		sendText(t, f.session, "hello")
	}

	messages := f.session.Messages()
	assert.Len(t, messages, 2*sends+1)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp),
			"timestamps must be non-decreasing")
	}
}

func TestSendEmptyDraftIsNoop(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	f.session.UpdateDraft("   ")
	assert.False(t, f.session.Send(context.Background()))
	assert.Len(t, f.session.Messages(), 1)
	assert.False(t, f.session.Awaiting())
}

func TestSendWithoutActiveChannelIsNoop(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	f.session.UpdateDraft("hi")
	assert.False(t, f.session.Send(context.Background()))
}

func TestSendFallbackOnRepeatedFailure(t *testing.T) {
	f := newFixture(t, failingResponder())
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	const attempts = 3
	for i := 0; i < attempts; i++ {
		sendText(t, f.session, "ping")
		assert.False(t, f.session.Awaiting(), "awaiting must clear after attempt %d", i+1)
	}

	messages := f.session.Messages()
	require.Len(t, messages, 2*attempts+1)

	fallbackText := i18n.Fallback(model.LocaleEnglish)
	for i := 0; i < attempts; i++ {
		user := messages[1+2*i]
		reply := messages[2+2*i]
		assert.Equal(t, model.SenderUser, user.Sender)
		assert.Equal(t, model.SenderAI, reply.Sender)
		assert.Equal(t, fallbackText, reply.Text)
	}
}

func TestSendReentrancyGuard(t *testing.T) {
	release := make(chan struct{})
	blocking := &stubResponder{fn: func(_ context.Context, ch model.ChannelKey, text string, _ model.Locale) (*model.Message, error) {
		<-release
		return &model.Message{ID: "r", Sender: model.SenderAI, Text: "late", Channel: ch, Timestamp: time.Now()}, nil
	}}

	f := newFixture(t, blocking)
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	f.session.UpdateDraft("first")
	done := make(chan bool, 1)
	go func() { done <- f.session.Send(context.Background()) }()

	require.Eventually(t, f.session.Awaiting, time.Second, time.Millisecond)

	// Second send while the first is pending: rejected, not queued.
	f.session.UpdateDraft("second")
	assert.False(t, f.session.Send(context.Background()))
	assert.Equal(t, "second", f.session.Draft(), "rejected send leaves the draft alone")
	assert.Len(t, f.session.Messages(), 2, "rejected send appends nothing")

	close(release)
	assert.True(t, <-done)
	assert.Len(t, f.session.Messages(), 3)
}

func TestSwitchingChannelsReplacesLog(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))
	sendText(t, f.session, "hello support")

	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	messages := f.session.Messages()
	require.Len(t, messages, 1, "only the new channel's welcome survives")
	assert.Equal(t, i18n.Welcome(model.ChannelAIAssistant, model.LocaleEnglish), messages[0].Text)
	for _, msg := range messages {
		assert.NotEqual(t, model.ChannelSupport, msg.Channel.Kind)
	}
}

func TestStaleReplyRoutesToUnread(t *testing.T) {
	release := make(chan struct{})
	blocking := &stubResponder{fn: func(_ context.Context, ch model.ChannelKey, text string, _ model.Locale) (*model.Message, error) {
		<-release
		return &model.Message{ID: "r", Sender: model.SenderSupport, Text: "got it", Channel: ch, Timestamp: time.Now()}, nil
	}}

	f := newFixture(t, blocking)
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	f.session.UpdateDraft("anyone there?")
	done := make(chan bool, 1)
	go func() { done <- f.session.Send(context.Background()) }()
	require.Eventually(t, f.session.Awaiting, time.Second, time.Millisecond)

	// Leave for the AI channel while support's reply is in flight.
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	close(release)
	require.True(t, <-done)

	assert.Len(t, f.session.Messages(), 1, "stale reply must not land in the new log")
	assert.Equal(t, 1, f.counters.Get("support"))
	assert.Equal(t, 1, f.notifier.calls())
}

func TestReplyDuringCounterpartySelectionRoutesToUnread(t *testing.T) {
	release := make(chan struct{})
	blocking := &stubResponder{fn: func(_ context.Context, ch model.ChannelKey, text string, _ model.Locale) (*model.Message, error) {
		<-release
		return &model.Message{ID: "r", Sender: model.SenderSupport, Text: "late reply", Channel: ch, Timestamp: time.Now()}, nil
	}}

	f := newFixture(t, blocking)
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	f.session.UpdateDraft("anyone there?")
	done := make(chan bool, 1)
	go func() { done <- f.session.Send(context.Background()) }()
	require.Eventually(t, f.session.Awaiting, time.Second, time.Millisecond)

	// Drop into the counterparty picker while support's reply is in
	// flight. The picker has no log for the reply to land in.
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelCounterparty))

	close(release)
	require.True(t, <-done)

	assert.Equal(t, StateCounterpartySelection, f.session.State())
	assert.Empty(t, f.session.Messages(), "discarded log must stay empty")
	assert.Equal(t, 1, f.counters.Get("support"))
	assert.Equal(t, 1, f.notifier.calls())
}

func TestReselectSameChannelKeepsActiveUnreadZero(t *testing.T) {
	release := make(chan struct{})
	blocking := &stubResponder{fn: func(_ context.Context, ch model.ChannelKey, text string, _ model.Locale) (*model.Message, error) {
		<-release
		return &model.Message{ID: "r", Sender: model.SenderSupport, Text: "got it", Channel: ch, Timestamp: time.Now()}, nil
	}}

	f := newFixture(t, blocking)
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	f.session.UpdateDraft("anyone there?")
	done := make(chan bool, 1)
	go func() { done <- f.session.Send(context.Background()) }()
	require.Eventually(t, f.session.Awaiting, time.Second, time.Millisecond)

	// Re-opening the same channel replaces the log but keeps the
	// channel active, so the resolved reply still belongs in it.
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	close(release)
	require.True(t, <-done)

	messages := f.session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, i18n.Welcome(model.ChannelSupport, model.LocaleEnglish), messages[0].Text)
	assert.Equal(t, "got it", messages[1].Text)
	assert.Equal(t, 0, f.counters.Get("support"), "active channel unread must stay 0")
	assert.Equal(t, 0, f.notifier.calls())
}

func TestGoBackTransitions(t *testing.T) {
	f := newFixture(t, echoResponder(""))

	// Support thread backs out to channel selection.
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))
	f.session.UpdateDraft("unsent")
	f.session.GoBack()
	assert.Equal(t, StateChannelSelection, f.session.State())
	assert.Empty(t, f.session.Messages())
	assert.Empty(t, f.session.Draft())
	assert.Nil(t, f.session.ActiveChannel())

	// Counterparty thread backs out one tier at a time.
	f.session.SelectCounterparty(context.Background(), directory.SeedEntries()[0])
	f.session.GoBack()
	assert.Equal(t, StateCounterpartySelection, f.session.State())
	f.session.GoBack()
	assert.Equal(t, StateChannelSelection, f.session.State())
	assert.Nil(t, f.session.Counterparty())
}

func TestHandleInboundActiveChannelAppends(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))

	require.NoError(t, f.session.HandleInbound(context.Background(), model.InboundMessageRequest{
		Kind: model.ChannelSupport,
		Text: "agent joined",
	}))

	messages := f.session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "agent joined", messages[1].Text)
	assert.Equal(t, model.SenderSupport, messages[1].Sender)
	assert.Equal(t, 0, f.notifier.calls(), "active channel raises no alert")
	assert.Equal(t, 0, f.counters.Get("support"))
}

func TestHandleInboundInactiveChannelCountsAndAlerts(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))

	require.NoError(t, f.session.HandleInbound(context.Background(), model.InboundMessageRequest{
		Kind: model.ChannelSupport,
		Text: "we replied to your ticket",
	}))

	assert.Equal(t, 1, f.counters.Get("support"))
	assert.Equal(t, 1, f.notifier.calls(), "exactly one alert per inbound message")
	title, body := f.notifier.last()
	assert.Equal(t, i18n.AlertTitle(model.ChannelSupport, model.LocaleEnglish), title)
	assert.Equal(t, "we replied to your ticket", body)
	assert.Len(t, f.session.Messages(), 1, "inactive channel message stays out of the log")

	// Switching to the channel resets its counter.
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelSupport))
	assert.Equal(t, 0, f.counters.Get("support"))
}

func TestHandleInboundValidation(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	assert.ErrorIs(t, f.session.HandleInbound(context.Background(), model.InboundMessageRequest{
		Kind: "smoke_signal", Text: "hi",
	}), ErrUnknownChannel)
	assert.ErrorIs(t, f.session.HandleInbound(context.Background(), model.InboundMessageRequest{
		Kind: model.ChannelSupport, Text: "  ",
	}), ErrEmptyMessage)
	assert.ErrorIs(t, f.session.HandleInbound(context.Background(), model.InboundMessageRequest{
		Kind: model.ChannelCounterparty, Text: "hi",
	}), ErrMissingCounterparty)
	assert.Equal(t, 0, f.counters.Get("counterparty"), "no counter under the bare kind key")
}

func TestUpdateDraftBoundsLength(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	f.session.UpdateDraft(strings.Repeat("ن", model.MaxMessageLength+50))
	assert.Len(t, []rune(f.session.Draft()), model.MaxMessageLength)
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t, echoResponder(""))
	f.counters.Set("support", 2)
	require.NoError(t, f.session.SelectChannel(context.Background(), model.ChannelAIAssistant))
	f.session.UpdateDraft("wip")

	snap := f.session.Snapshot()
	assert.Equal(t, string(StateActiveConversation), snap.State)
	require.NotNil(t, snap.ActiveChannel)
	assert.Equal(t, model.ChannelAIAssistant, snap.ActiveChannel.Kind)
	assert.Equal(t, "wip", snap.Draft)
	assert.False(t, snap.AwaitingResponse)
	assert.Equal(t, 2, snap.Unread["support"])
	assert.Equal(t, 0, snap.Unread["ai_assistant"])
}

func TestManagerReturnsSameSessionPerUser(t *testing.T) {
	counters := store.NewMemoryStore()
	dir := directory.New(directory.SeedEntries(), counters, logger.NewNop())
	m := NewManager(echoResponder(""), counters, &recordingNotifier{}, dir, model.LocaleArabic, logger.NewNop())

	a := m.Get("u-1", model.LocaleEnglish)
	b := m.Get("u-1", model.LocaleUrdu)
	assert.Same(t, a, b, "locale is fixed at first use")

	c := m.Get("u-2", model.Locale("xx"))
	assert.NotSame(t, a, c)

	m.Remove("u-1")
	fresh := m.Get("u-1", model.LocaleEnglish)
	assert.NotSame(t, a, fresh)
}
