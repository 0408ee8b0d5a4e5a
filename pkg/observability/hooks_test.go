package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLoopHooks{}
	l.OnIntent(ctx, "cycle")
	l.OnTransition(ctx, "expand", false, time.Millisecond)
	l.OnPresetLoad(ctx, "strands", time.Second, errors.New("offline"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "strands")
	c.OnCacheMiss(ctx, "strands")
	c.OnCacheSet(ctx, "strands", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "www.nytimes.com", "/games-assets/strands/2024-03-04.json")
	h.OnResponse(ctx, "GET", "www.nytimes.com", "/games-assets/strands/2024-03-04.json", 200, time.Second)
	h.OnError(ctx, "GET", "www.nytimes.com", "/games-assets/strands/2024-03-04.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Loop().(NoopLoopHooks); !ok {
		t.Error("Loop() should return NoopLoopHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customLoop := &testLoopHooks{}
	SetLoopHooks(customLoop)
	if Loop() != customLoop {
		t.Error("SetLoopHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Loop().(NoopLoopHooks); !ok {
		t.Error("Reset() should restore NoopLoopHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testLoopHooks{}
	SetLoopHooks(custom)
	SetLoopHooks(nil)

	if Loop() != custom {
		t.Error("SetLoopHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnTransition(ctx, "expand", false, time.Millisecond)
	h.OnPresetLoad(ctx, "strands", time.Second, errors.New("offline"))

	out := buf.String()
	for _, want := range []string{"transition", "accepted=false", "preset load failed", "preset=strands", "offline"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testLoopHooks struct{ NoopLoopHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
