package eventbus

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dep2p/go-eventbus/pkg/lib/log"
)

func TestCollector_Err(t *testing.T) {
	c := NewCollector()
	assert.NoError(t, c.Err())

	e1 := errors.New("first")
	e2 := errors.New("second")
	c.Report(&HandlerFailure{EventType: TypeOf[pingEvent](), Err: e1})
	c.Report(&HandlerFailure{EventType: TypeOf[pingEvent](), Err: e2})

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Len(t, multierr.Errors(err), 2)

	c.Reset()
	assert.Zero(t, c.Len())
	assert.NoError(t, c.Err())
}

func TestErrorSinkFunc(t *testing.T) {
	var got []*HandlerFailure
	b, err := New[testCategory](WithErrorSink(ErrorSinkFunc(func(f *HandlerFailure) {
		got = append(got, f)
	})))
	require.NoError(t, err)

	Subscribe(b, Handler[pingEvent](NewHandler(func(*pingEvent) error { return errors.New("x") })))
	Raise(b, pingEvent{})

	require.Len(t, got, 1)
	assert.Equal(t, TypeOf[pingEvent](), got[0].EventType)
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b, err := New[testCategory](WithErrorSink(ZapSink(zap.New(core))))
	require.NoError(t, err)

	Subscribe(b, Handler[pingEvent](NewHandler(func(*pingEvent) error { return errors.New("plain") })))
	Subscribe(b, Handler[pingEvent](Listener(func(*pingEvent) { panic("loud") })))
	Raise(b, pingEvent{})

	entries := logs.FilterMessage("eventbus handler failed").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, false, first["panicked"])
	assert.Equal(t, "plain", first["error"])
	assert.NotContains(t, first, "stack")

	second := entries[1].ContextMap()
	assert.Equal(t, true, second["panicked"])
	assert.Contains(t, second, "stack")
}

func TestZapSink_NilLogger(t *testing.T) {
	sink := ZapSink(nil)
	assert.NotPanics(t, func() {
		sink.Report(&HandlerFailure{EventType: TypeOf[pingEvent](), Err: errors.New("x")})
	})
}

func TestLogSink_WritesComponentLog(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		log.Setup(io.Discard, log.ConfigFromEnv())
		slog.SetDefault(prev)
	})

	var buf bytes.Buffer
	log.Setup(&buf, log.ParseConfig("info", "text"))

	b, err := New[testCategory]()
	require.NoError(t, err)

	Subscribe(b, Handler[pingEvent](NewHandler(func(*pingEvent) error { return errors.New("disk full") })))
	Raise(b, pingEvent{})

	out := buf.String()
	assert.Contains(t, out, "handler failed")
	assert.Contains(t, out, "component=eventbus")
	assert.Contains(t, out, "disk full")
}
