package eventbus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dep2p/go-eventbus"
	"github.com/dep2p/go-eventbus/internal/mocks"
)

type mockCategory struct{}

type tick struct {
	eventbus.Of[mockCategory]
	Seq int
}

func TestBus_ReporterCallSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	rep := mocks.NewMockReporter(ctrl)
	sink := mocks.NewMockErrorSink(ctrl)

	typ := eventbus.TypeOf[tick]()
	start := time.Unix(1700000000, 0)
	boom := errors.New("boom")

	gomock.InOrder(
		rep.EXPECT().LogRaised(typ),
		rep.EXPECT().StartHandler().Return(start),
		rep.EXPECT().LogHandled(typ, start, false),
		rep.EXPECT().StartHandler().Return(start),
		rep.EXPECT().LogHandled(typ, start, true),
	)
	sink.EXPECT().Report(gomock.Any()).Do(func(f *eventbus.HandlerFailure) {
		assert.ErrorIs(t, f, boom)
		assert.Equal(t, typ, f.EventType)
	}).Times(1)

	b, err := eventbus.New[mockCategory](
		eventbus.WithReporter(rep),
		eventbus.WithErrorSink(sink),
	)
	require.NoError(t, err)

	eventbus.Subscribe(b, eventbus.Handler[tick](eventbus.Listener(func(*tick) {})), eventbus.Priority(1))
	eventbus.SubscribeFunc(b, func(*tick) error { return boom })

	eventbus.Raise(b, tick{Seq: 1})
}

func TestBus_SinkNotCalledOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockErrorSink(ctrl)
	sink.EXPECT().Report(gomock.Any()).Times(0)

	b, err := eventbus.New[mockCategory](eventbus.WithErrorSink(sink))
	require.NoError(t, err)

	seen := 0
	eventbus.Subscribe(b, eventbus.Handler[tick](eventbus.Listener(func(e *tick) { seen += e.Seq })))
	for i := 1; i <= 3; i++ {
		eventbus.Raise(b, tick{Seq: i})
	}
	assert.Equal(t, 6, seen)
}

func TestBus_ReporterSeesNestedRaise(t *testing.T) {
	ctrl := gomock.NewController(t)
	rep := mocks.NewMockReporter(ctrl)

	rep.EXPECT().LogRaised(eventbus.TypeOf[tick]()).Times(2)
	rep.EXPECT().StartHandler().Return(time.Time{}).Times(2)
	rep.EXPECT().LogHandled(eventbus.TypeOf[tick](), gomock.Any(), false).Times(2)

	b, err := eventbus.New[mockCategory](eventbus.WithReporter(rep))
	require.NoError(t, err)

	eventbus.SubscribeFunc(b, func(e *tick) error {
		if e.Seq == 0 {
			eventbus.Raise(b, tick{Seq: 1})
		}
		return nil
	})
	eventbus.Raise(b, tick{})
}
