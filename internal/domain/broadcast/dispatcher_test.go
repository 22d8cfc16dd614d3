package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-notifier/internal/domain/messages"
)

type staticRecipients struct {
	ids []string
	err error
}

func (s staticRecipients) ListIDs(ctx context.Context) ([]string, error) { return s.ids, s.err }

type recordingPusher struct {
	mu     sync.Mutex
	max    int
	calls  [][]string
	msgs   []messages.Message
	failOn map[int]bool
}

func (p *recordingPusher) MaxRecipients() int { return p.max }

func (p *recordingPusher) Multicast(ctx context.Context, to []string, msg messages.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := len(p.calls)
	p.calls = append(p.calls, append([]string(nil), to...))
	p.msgs = append(p.msgs, msg)
	if p.failOn[idx] {
		return errors.New("line: 500")
	}
	return nil
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("U%d", i)
	}
	return out
}

var hello = messages.New("hello", []string{"https://img/1.jpg"})

func TestBroadcast_NoSubscribers_NoCalls(t *testing.T) {
	p := &recordingPusher{max: 500}
	d := NewDispatcher(staticRecipients{}, p, Options{})

	res := d.Broadcast(context.Background(), hello)

	assert.Zero(t, res.Recipients)
	assert.Empty(t, p.calls)
}

func TestBroadcast_SingleCallWithAllRecipientsAndParts(t *testing.T) {
	p := &recordingPusher{max: 500}
	d := NewDispatcher(staticRecipients{ids: []string{"U1", "U2", "U3"}}, p, Options{})

	res := d.Broadcast(context.Background(), hello)

	require.Len(t, p.calls, 1)
	assert.ElementsMatch(t, []string{"U1", "U2", "U3"}, p.calls[0])
	assert.Equal(t, hello, p.msgs[0])
	assert.Equal(t, Result{Recipients: 3, Calls: 1, Delivered: 3}, res)
}

func TestBroadcast_ChunksAndIsolatesFailures(t *testing.T) {
	p := &recordingPusher{max: 500, failOn: map[int]bool{1: true}}
	d := NewDispatcher(staticRecipients{ids: ids(1201)}, p, Options{})

	res := d.Broadcast(context.Background(), hello)

	require.Len(t, p.calls, 3)
	assert.Len(t, p.calls[0], 500)
	assert.Len(t, p.calls[1], 500)
	assert.Len(t, p.calls[2], 201)
	assert.Equal(t, 1, res.FailedChunks)
	assert.Equal(t, 701, res.Delivered)
}

func TestBroadcast_ConfiguredChunkSizeNeverExceedsTransportLimit(t *testing.T) {
	p := &recordingPusher{max: 2}
	d := NewDispatcher(staticRecipients{ids: ids(5)}, p, Options{ChunkSize: 10})
	d.Broadcast(context.Background(), hello)
	assert.Len(t, p.calls, 3)

	p = &recordingPusher{max: 500}
	d = NewDispatcher(staticRecipients{ids: ids(5)}, p, Options{ChunkSize: 2})
	d.Broadcast(context.Background(), hello)
	assert.Len(t, p.calls, 3)
}

func TestBroadcast_RegistryErrorIsSwallowed(t *testing.T) {
	p := &recordingPusher{max: 500}
	d := NewDispatcher(staticRecipients{err: errors.New("db down")}, p, Options{})

	res := d.Broadcast(context.Background(), hello)

	assert.Empty(t, p.calls)
	assert.Zero(t, res.Calls)
}

func TestBroadcast_TransportFailureNeverRetried(t *testing.T) {
	p := &recordingPusher{max: 500, failOn: map[int]bool{0: true}}
	d := NewDispatcher(staticRecipients{ids: []string{"U1"}}, p, Options{})

	res := d.Broadcast(context.Background(), hello)

	assert.Len(t, p.calls, 1)
	assert.Equal(t, 1, res.FailedChunks)
}

func TestBroadcast_EmptyMessageIsNoop(t *testing.T) {
	p := &recordingPusher{max: 500}
	d := NewDispatcher(staticRecipients{ids: []string{"U1"}}, p, Options{})

	d.Broadcast(context.Background(), messages.Message{})
	assert.Empty(t, p.calls)
}
