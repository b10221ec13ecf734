// Package bridge is the single entry point for sending commands to the
// design automation host. It assigns request ids, registers pending
// calls, and lazily creates (and after a crash, replaces) the channel
// transport.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ihiteshsharma/mcp-servers/internal/channel"
	"github.com/ihiteshsharma/mcp-servers/internal/config"
	"github.com/ihiteshsharma/mcp-servers/internal/pending"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

// RemoteError is a failure the host explicitly reported for one
// command. It reaches only that command's caller.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "host reported failure: " + e.Message
}

// transport is the slice of channel.Transport the bridge needs.
type transport interface {
	Send(ctx context.Context, cmd wire.Command) error
	Close() error
	Done() <-chan struct{}
}

var newTransportFn = func(host config.HostConfig, resolver channel.Resolver, logger *slog.Logger) transport {
	return channel.New(host, resolver, logger)
}

// Bridge correlates commands with their replies. Construct one per
// process and pass it to callers; tests may instantiate independent
// bridges freely.
type Bridge struct {
	host     config.HostConfig
	timeout  time.Duration
	logger   *slog.Logger
	registry *pending.Registry

	mu     sync.Mutex
	tr     transport
	nextID uint64
	salt   string
}

// New creates a bridge for the configured host. No process is spawned
// until the first Call.
func New(cfg *config.Config, logger *slog.Logger) (*Bridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	timeout, err := cfg.ParseCallTimeout()
	if err != nil {
		return nil, err
	}
	return &Bridge{
		host:     cfg.Host,
		timeout:  timeout,
		logger:   logger,
		registry: pending.New(logger),
		salt:     channel.NewSessionID(),
	}, nil
}

// Call sends one command and waits for its correlated reply. A reply
// with success=false surfaces as *RemoteError; a transport-level
// failure surfaces as the channel package's typed error. The bridge
// never retries: commands may have side effects on the host.
func (b *Bridge) Call(ctx context.Context, kind wire.CommandKind, params any) (json.RawMessage, error) {
	tr := b.acquireTransport()
	id := b.nextRequestID()

	call, err := b.registry.Register(id)
	if err != nil {
		return nil, err
	}

	if err := tr.Send(ctx, wire.Command{ID: id, Kind: kind, Params: params}); err != nil {
		// Roll back so a call that never reached the wire is not
		// left pending forever.
		b.registry.Remove(id)
		return nil, err
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	reply, err := call.Await(ctx)
	if err != nil {
		// Abandoned: remove the entry so the registry stays bounded.
		// The host is not notified; the side effect may still occur.
		b.registry.Remove(id)
		return nil, err
	}
	if !reply.Success {
		return nil, &RemoteError{Message: reply.Error}
	}
	return reply.Result, nil
}

// Pending reports the number of calls currently awaiting replies.
func (b *Bridge) Pending() int {
	return b.registry.Len()
}

// Shutdown tears down the current transport, rejecting every pending
// call. Idempotent; a later Call starts a fresh transport.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	tr := b.tr
	b.tr = nil
	b.mu.Unlock()

	if tr != nil {
		_ = tr.Close()
	}
}

// acquireTransport returns the live transport, creating one lazily on
// first use and replacing one that has closed since the last call.
func (b *Bridge) acquireTransport() transport {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tr != nil {
		select {
		case <-b.tr.Done():
			b.logger.Info("replacing closed channel transport")
			b.tr = nil
		default:
			return b.tr
		}
	}
	b.tr = newTransportFn(b.host, b.registry, b.logger)
	return b.tr
}

// nextRequestID combines a per-bridge time salt with a monotonic
// counter. Unique for the bridge lifetime, which is all correlation
// requires.
func (b *Bridge) nextRequestID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return fmt.Sprintf("%s-%d", b.salt, b.nextID)
}
