package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ihiteshsharma/mcp-servers/internal/channel"
	"github.com/ihiteshsharma/mcp-servers/internal/config"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func saveTransportHook() func() {
	old := newTransportFn
	return func() { newTransportFn = old }
}

// fakeTransport resolves every command through the resolver using the
// configured reply function, mimicking an asynchronous host.
type fakeTransport struct {
	resolver channel.Resolver
	reply    func(cmd wire.Command) *wire.Reply // nil return = stay pending
	sendErr  error

	mu     sync.Mutex
	sent   []wire.Command
	closed bool
	done   chan struct{}
}

func newFakeTransport(resolver channel.Resolver) *fakeTransport {
	return &fakeTransport{
		resolver: resolver,
		reply: func(cmd wire.Command) *wire.Reply {
			data, _ := json.Marshal(map[string]string{"echo": cmd.ID})
			return &wire.Reply{ID: cmd.ID, Success: true, Result: data}
		},
		done: make(chan struct{}),
	}
}

func (f *fakeTransport) Send(ctx context.Context, cmd wire.Command) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.sent = append(f.sent, cmd)
	f.mu.Unlock()

	if r := f.reply(cmd); r != nil {
		go f.resolver.Resolve(cmd.ID, *r)
	}
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.done)
	}
	return nil
}

func (f *fakeTransport) Done() <-chan struct{} { return f.done }

// installFake swaps the transport constructor for one that records the
// fake it builds. The returned getter fails the test if no transport
// has been created yet, since the bridge only spawns one lazily.
func installFake(t *testing.T) func() *fakeTransport {
	t.Helper()
	restore := saveTransportHook()
	t.Cleanup(restore)

	var (
		mu   sync.Mutex
		fake *fakeTransport
	)
	newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
		mu.Lock()
		defer mu.Unlock()
		fake = newFakeTransport(resolver)
		return fake
	}
	return func() *fakeTransport {
		mu.Lock()
		defer mu.Unlock()
		if fake == nil {
			t.Fatal("no transport created yet")
		}
		return fake
	}
}

func newTestBridge(t *testing.T, cfg *config.Config) *Bridge {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	b, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func TestCallReturnsCorrelatedResult(t *testing.T) {
	getFake := installFake(t)
	b := newTestBridge(t, nil)

	result, err := b.Call(context.Background(), wire.KindCreateWireframe, wire.WireframeParams{Title: "x"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal(result, &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	sent := getFake().sent
	if len(sent) != 1 {
		t.Fatalf("len(sent) = %d, want 1", len(sent))
	}
	if payload["echo"] != sent[0].ID {
		t.Fatalf("result echo = %q, want sent id %q", payload["echo"], sent[0].ID)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", b.Pending())
	}
}

func TestCallSurfacesHostFailureAsRemoteError(t *testing.T) {
	getFake := installFake(t)
	b := newTestBridge(t, nil)

	// Prime the transport, then switch it to failure replies.
	if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
		t.Fatalf("priming Call() error = %v", err)
	}
	getFake().reply = func(cmd wire.Command) *wire.Reply {
		return &wire.Reply{ID: cmd.ID, Success: false, Error: "node not found: frame-9"}
	}

	_, err := b.Call(context.Background(), wire.KindStyleElement, wire.StyleParams{Node: "frame-9"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Call() error = %v, want *RemoteError", err)
	}
	if remote.Message != "node not found: frame-9" {
		t.Fatalf("RemoteError.Message = %q, want host message", remote.Message)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", b.Pending())
	}
}

func TestCallRollsBackRegistrationOnSendFailure(t *testing.T) {
	getFake := installFake(t)
	b := newTestBridge(t, nil)

	if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
		t.Fatalf("priming Call() error = %v", err)
	}
	sendErr := errors.New("write failed")
	getFake().sendErr = sendErr

	_, err := b.Call(context.Background(), wire.KindGetSelection, nil)
	if !errors.Is(err, sendErr) {
		t.Fatalf("Call() error = %v, want send failure", err)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d after rollback, want 0", b.Pending())
	}
}

func TestCallCreatesTransportLazilyAndOnce(t *testing.T) {
	restore := saveTransportHook()
	defer restore()

	var created atomic.Int32
	newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
		created.Add(1)
		return newFakeTransport(resolver)
	}

	b := newTestBridge(t, nil)
	if got := created.Load(); got != 0 {
		t.Fatalf("transports created before first Call = %d, want 0", got)
	}

	for i := 0; i < 5; i++ {
		if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
			t.Fatalf("Call(%d) error = %v", i, err)
		}
	}
	if got := created.Load(); got != 1 {
		t.Fatalf("transports created = %d, want 1", got)
	}
}

func TestCallReplacesClosedTransport(t *testing.T) {
	restore := saveTransportHook()
	defer restore()

	var (
		created atomic.Int32
		mu      sync.Mutex
		fakes   []*fakeTransport
	)
	newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
		created.Add(1)
		f := newFakeTransport(resolver)
		mu.Lock()
		fakes = append(fakes, f)
		mu.Unlock()
		return f
	}

	b := newTestBridge(t, nil)
	if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	// Simulate a host crash: the transport closes; the next call
	// must start a fresh one.
	mu.Lock()
	fakes[0].Close()
	mu.Unlock()

	if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
		t.Fatalf("Call() after crash error = %v", err)
	}
	if got := created.Load(); got != 2 {
		t.Fatalf("transports created = %d, want 2", got)
	}
}

func TestCallTimesOutWhenConfigured(t *testing.T) {
	restore := saveTransportHook()
	defer restore()

	newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
		f := newFakeTransport(resolver)
		f.reply = func(wire.Command) *wire.Reply { return nil } // host hangs
		return f
	}

	b := newTestBridge(t, &config.Config{CallTimeout: "30ms"})

	start := time.Now()
	_, err := b.Call(context.Background(), wire.KindExportDesign, wire.ExportParams{Format: "png"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Call() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Call() took %s, want bounded by timeout", elapsed)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d after timeout, want 0 (entry removed)", b.Pending())
	}
}

func TestCallWithoutTimeoutHonorsCallerContext(t *testing.T) {
	restore := saveTransportHook()
	defer restore()

	newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
		f := newFakeTransport(resolver)
		f.reply = func(wire.Command) *wire.Reply { return nil }
		return f
	}

	b := newTestBridge(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := b.Call(ctx, wire.KindGetCurrentPage, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Call() error = %v, want context.Canceled", err)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d after cancellation, want 0", b.Pending())
	}
}

func TestRequestIDsAreUniquePerBridge(t *testing.T) {
	getFake := installFake(t)
	b := newTestBridge(t, nil)

	const n = 20
	for i := 0; i < n; i++ {
		if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
			t.Fatalf("Call(%d) error = %v", i, err)
		}
	}

	fake := getFake()
	seen := make(map[string]struct{}, n)
	for _, cmd := range fake.sent {
		if _, dup := seen[cmd.ID]; dup {
			t.Fatalf("request id %q assigned twice", cmd.ID)
		}
		seen[cmd.ID] = struct{}{}
		if !strings.Contains(cmd.ID, "-") {
			t.Fatalf("request id %q missing salt separator", cmd.ID)
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	getFake := installFake(t)
	b := newTestBridge(t, nil)

	if _, err := b.Call(context.Background(), wire.KindGetSelection, nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	fake := getFake()

	b.Shutdown()
	b.Shutdown()

	select {
	case <-fake.Done():
	default:
		t.Fatal("Shutdown() did not close the transport")
	}
}

func TestConcurrentCallsEachReceiveOwnReply(t *testing.T) {
	installFake(t)
	b := newTestBridge(t, nil)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := b.Call(context.Background(), wire.KindGetSelection, nil)
			if err != nil {
				errs <- fmt.Errorf("call %d: %w", i, err)
				return
			}
			var payload map[string]string
			if err := json.Unmarshal(result, &payload); err != nil {
				errs <- fmt.Errorf("call %d: %w", i, err)
				return
			}
			if payload["echo"] == "" {
				errs <- fmt.Errorf("call %d: empty correlation payload", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", b.Pending())
	}
}
