// Package channel owns the design automation host process and the
// duplex byte stream used to drive it. Encoded commands go down the
// host's stdin; a dedicated read loop decodes replies from its stdout
// and hands them to the pending-call resolver. The host's stderr is
// logged, never parsed as protocol data.
package channel

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/ihiteshsharma/mcp-servers/internal/config"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

// State tracks the transport lifecycle. There is no transition out of
// Closed: a crashed or shut-down transport is replaced, not reused.
type State int

const (
	Unstarted State = iota
	Starting
	Ready
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Starting:
		return "starting"
	case Ready:
		return "ready"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Resolver receives decoded replies and the channel-wide rejection on
// shutdown. Implemented by pending.Registry.
type Resolver interface {
	Resolve(id string, reply wire.Reply)
	RejectAll(reason error)
}

// Transport drives one host process. Exactly one instance exists per
// bridge lifetime; the bridge creates a fresh one after this one
// closes.
type Transport struct {
	host     config.HostConfig
	resolver Resolver
	logger   *slog.Logger
	session  string

	mu          sync.Mutex
	state       State
	cmd         *exec.Cmd
	stdin       io.WriteCloser
	closeReason *ClosedError

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// New creates an unstarted transport. The host process is spawned
// lazily on the first Send.
func New(host config.HostConfig, resolver Resolver, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	session := NewSessionID()
	return &Transport{
		host:     host,
		resolver: resolver,
		logger:   logger.With("session", session),
		session:  session,
		closed:   make(chan struct{}),
	}
}

// Session returns the transport's session identifier, used to
// correlate log lines across one host lifetime.
func (t *Transport) Session() string { return t.session }

// State reports the current lifecycle state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed once the transport has reached Closed and every
// pending call has been rejected.
func (t *Transport) Done() <-chan struct{} { return t.closed }

// Send encodes cmd and writes it to the host's stdin as one atomic
// record. It spawns the host on first use and returns without waiting
// for the reply; awaiting the reply is the caller's job via the
// resolver side.
func (t *Transport) Send(ctx context.Context, cmd wire.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := wire.Encode(cmd)
	if err != nil {
		return err
	}

	t.mu.Lock()
	switch t.state {
	case Closing, Closed:
		reason := t.closeReason
		t.mu.Unlock()
		if reason != nil {
			return reason
		}
		return &ClosedError{Reason: ReasonShutdown}
	case Unstarted:
		if err := t.startLocked(); err != nil {
			t.mu.Unlock()
			t.close(&ClosedError{Reason: ReasonSpawnFailed, Err: err})
			return &SpawnError{Command: t.host.Command, Err: err}
		}
	}

	// Holding the mutex across the write keeps concurrent commands'
	// bytes from interleaving on the stream.
	_, werr := t.stdin.Write(data)
	t.mu.Unlock()

	if werr != nil {
		closed := &ClosedError{Reason: ReasonStreamError, Err: werr}
		t.close(closed)
		return closed
	}
	return nil
}

func (t *Transport) startLocked() error {
	t.state = Starting

	cmd := exec.Command(t.host.Command, t.host.Args...)
	cmd.Env = os.Environ()
	for k, v := range t.host.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	t.cmd = cmd
	t.stdin = stdin
	t.state = Ready

	t.wg.Add(2)
	go t.readLoop(stdout)
	go t.logStderr(stderr)

	t.logger.Info("host started", "command", t.host.Command, "pid", cmd.Process.Pid)
	return nil
}

// readLoop is the only holder of the codec's carry buffer. It runs for
// the lifetime of Ready/Closing and routes every decoded reply to the
// resolver. Malformed records are logged and skipped.
func (t *Transport) readLoop(stdout io.Reader) {
	defer t.wg.Done()

	var carry []byte
	buf := make([]byte, 32*1024)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			var records []wire.Record
			records, carry = wire.Decode(buf[:n], carry)
			for _, rec := range records {
				t.route(rec)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				t.close(&ClosedError{Reason: ReasonHostExited})
			} else {
				t.logger.Warn("host stdout read failed", "err", err)
				t.close(&ClosedError{Reason: ReasonStreamError, Err: err})
			}
			return
		}
	}
}

func (t *Transport) route(rec wire.Record) {
	if rec.Err != nil {
		t.logger.Warn("skipping malformed reply record", "err", rec.Err, "raw", string(rec.Raw))
		return
	}
	if rec.Reply.ID == "" {
		t.logger.Debug("ignoring unsolicited host record")
		return
	}
	t.resolver.Resolve(rec.Reply.ID, rec.Reply)
}

func (t *Transport) logStderr(stderr io.Reader) {
	defer t.wg.Done()

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		t.logger.Info("host stderr", "line", scanner.Text())
	}
}

// Close shuts the transport down and rejects every pending call. It is
// idempotent and safe to call from any state, including Unstarted.
func (t *Transport) Close() error {
	t.close(&ClosedError{Reason: ReasonShutdown})
	t.wg.Wait()
	return nil
}

func (t *Transport) close(reason *ClosedError) {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closeReason = reason
		t.state = Closing
		stdin := t.stdin
		cmd := t.cmd
		t.mu.Unlock()

		if stdin != nil {
			_ = stdin.Close()
		}
		if cmd != nil && cmd.Process != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}

		t.mu.Lock()
		t.state = Closed
		t.mu.Unlock()

		t.resolver.RejectAll(reason)
		close(t.closed)
		t.logger.Info("channel closed", "reason", string(reason.Reason))
	})
}
