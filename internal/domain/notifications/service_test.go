package notifications

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-notifier/internal/domain/broadcast"
	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
	"pet-care-notifier/internal/domain/render"
)

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []messages.Message
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, msg messages.Message) broadcast.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return broadcast.Result{}
}

func newTestService(t *testing.T) (*Service, *fakeBroadcaster) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	f := render.New(loc).WithClock(func() time.Time { return now })
	b := &fakeBroadcaster{}
	return NewService(f, b, nil), b
}

func TestNotifyWalkStart_BroadcastsSingleText(t *testing.T) {
	svc, b := newTestService(t)

	svc.NotifyWalkStart(context.Background(), []string{"Alice"})

	require.Len(t, b.sent, 1)
	require.Len(t, b.sent[0].Parts, 1)
	assert.Contains(t, b.sent[0].Summary(), "25/04/01 09:00")
	assert.Contains(t, b.sent[0].Summary(), "Aliceが福くんの散歩に出発しました")
}

func TestOnCareWritten_DeletionDoesNothing(t *testing.T) {
	svc, b := newTestService(t)

	ok := svc.OnCareWritten(context.Background(), records.CareChange{Before: &records.CareRecord{Kind: records.CareKindBath}})

	assert.False(t, ok)
	assert.Empty(t, b.sent)
}

func TestOnCareWritten_NotifyFalseNeverBroadcasts(t *testing.T) {
	svc, b := newTestService(t)
	off := false

	for _, kind := range []records.CareKind{
		records.CareKindExcretion, records.CareKindFood, records.CareKindMedicine, records.CareKindBath,
		records.CareKindBrushing, records.CareKindGrooming, records.CareKindHospital, records.CareKindOther,
	} {
		ok := svc.OnCareWritten(context.Background(), records.CareChange{After: &records.CareRecord{Kind: kind, Notify: &off}})
		assert.False(t, ok, kind)
	}
	assert.Empty(t, b.sent)
}

func TestOnCareWritten_UpdateIsDerivedFromBefore(t *testing.T) {
	svc, b := newTestService(t)

	svc.OnCareWritten(context.Background(), records.CareChange{
		After: &records.CareRecord{Kind: records.CareKindFood, Walker: "Bob"},
	})
	svc.OnCareWritten(context.Background(), records.CareChange{
		Before: &records.CareRecord{Kind: records.CareKindFood},
		After:  &records.CareRecord{Kind: records.CareKindFood, Walker: "Bob"},
	})

	require.Len(t, b.sent, 2)
	assert.True(t, strings.HasPrefix(b.sent[0].Summary(), "🥣 ご飯\n"))
	assert.True(t, strings.HasPrefix(b.sent[1].Summary(), "🥣 ご飯 (修正)\n"))
}

func TestIngestWalkCreated_InvalidPayloadProducesNothing(t *testing.T) {
	svc, b := newTestService(t)

	err := svc.IngestWalkCreated(context.Background(), []byte(`{"walkers": 3}`))

	assert.ErrorIs(t, err, records.ErrInvalidPayload)
	assert.Empty(t, b.sent)
}
