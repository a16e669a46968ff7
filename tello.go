// tello.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tello

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

var (
	// ErrClosed is returned when a command is sent on, or interrupted by, a closed session.
	ErrClosed = errors.New("tello session closed")
	// ErrInvalidCommand is returned for empty or multi-line commands.
	ErrInvalidCommand = errors.New("invalid tello command")
)

// Tello holds the current state of a connection to a Tello drone.
//
// Two listeners run for the whole life of the session: one reads acknowledgements
// from the command socket, the other reads telemetry frames from the state socket.
type Tello struct {
	conf   Config
	logger golog.Logger
	clock  clock.Clock

	ctrlConn, stateConn *net.UDPConn
	ctrlMu              sync.Mutex // held for the whole send/wait cycle of a command
	readStateFrame      func([]byte) (int, error)

	respMu    sync.Mutex // this mutex protects resp
	resp      *Response  // the single unconsumed ack, nil if none
	respReady chan struct{}

	stateMu sync.RWMutex // this mutex protects state
	state   Telemetry

	workers   *workers
	closeOnce sync.Once
	closeErr  error
}

// Connect binds the command and state sockets described by conf and starts
// listening for acknowledgements and telemetry.
// It does not put the Tello into SDK mode, call EnterSDKMode() for that.
func Connect(conf Config, logger golog.Logger) (*Tello, error) {
	return connect(conf, logger, clock.New())
}

// ConnectDefault connects to a Tello on the default network addresses.
func ConnectDefault(logger golog.Logger) (*Tello, error) {
	return Connect(DefaultConfig(), logger)
}

func connect(conf Config, logger golog.Logger, clk clock.Clock) (*Tello, error) {
	if err := conf.Validate("tello"); err != nil {
		return nil, err
	}
	conf = conf.withDefaults()

	ctrlConn, err := openControlConn(conf)
	if err != nil {
		return nil, err
	}
	stateConn, err := openStateConn(conf)
	if err != nil {
		return nil, multierr.Combine(err, ctrlConn.Close())
	}

	tello := &Tello{
		conf:           conf,
		logger:         logger,
		clock:          clk,
		ctrlConn:       ctrlConn,
		stateConn:      stateConn,
		readStateFrame: stateConn.Read,
		respReady:      make(chan struct{}, 1),
		workers:        newWorkers(context.Background()),
	}
	tello.workers.add(tello.ackListener, tello.stateListener)

	logger.Infow("tello session open",
		"command", ctrlConn.LocalAddr().String(),
		"state", stateConn.LocalAddr().String(),
		"tello", ctrlConn.RemoteAddr().String())
	return tello, nil
}

// Close stops both listeners and closes the sockets. It is safe to call more than once.
// Any SendCommand still waiting for a reply returns ErrClosed.
func (tello *Tello) Close() error {
	tello.closeOnce.Do(func() {
		tello.logger.Debug("closing tello session")
		tello.workers.cancel()
		tello.closeErr = multierr.Combine(tello.ctrlConn.Close(), tello.stateConn.Close())
		tello.workers.wait()
		tello.logger.Info("tello session closed")
	})
	return tello.closeErr
}

// Config returns the effective configuration, defaults included.
func (tello *Tello) Config() Config {
	return tello.conf
}

// CommandAddr is the local address of the command socket.
func (tello *Tello) CommandAddr() net.Addr {
	return tello.ctrlConn.LocalAddr()
}

// StateAddr is the local address the Tello sends telemetry to.
func (tello *Tello) StateAddr() net.Addr {
	return tello.stateConn.LocalAddr()
}

// SendCommand sends a single SDK command and waits up to the command timeout for the reply.
// If nothing arrives in time NoResponse is returned with a nil error.
//
// Only one command is in flight at a time; concurrent callers queue up.
// The protocol has no request IDs, so an ack that arrives after its command
// timed out is handed to whichever command is sent next.
func (tello *Tello) SendCommand(ctx context.Context, command string) (string, error) {
	if command == "" || strings.ContainsAny(command, "\r\n") {
		return "", errors.Wrapf(ErrInvalidCommand, "%q", command)
	}

	tello.ctrlMu.Lock()
	defer tello.ctrlMu.Unlock()

	select {
	case <-tello.workers.done():
		return "", ErrClosed
	default:
	}

	abort := make(chan struct{})
	timer := tello.clock.AfterFunc(tello.conf.CommandTimeout(), func() { close(abort) })
	defer timer.Stop()

	start := tello.clock.Now()
	tello.logger.Debugw("sending command", "command", command)
	if _, err := tello.ctrlConn.Write([]byte(command)); err != nil {
		if isClosedErr(err) {
			return "", ErrClosed
		}
		return "", errors.Wrapf(err, "cannot send %q", command)
	}

	reply, err := tello.awaitResponse(ctx, abort)
	if err != nil {
		return "", err
	}
	tello.logger.Debugw("command reply", "command", command, "reply", reply, "latency", tello.clock.Since(start))
	return reply, nil
}

func (tello *Tello) awaitResponse(ctx context.Context, abort <-chan struct{}) (string, error) {
	for {
		if r := tello.takeResponse(); r != nil {
			return r.Text, nil
		}
		select {
		case <-tello.respReady:
		case <-abort:
			// one last look, the ack may have landed just as the timer fired
			if r := tello.takeResponse(); r != nil {
				return r.Text, nil
			}
			return NoResponse, nil
		case <-ctx.Done():
			return "", ctx.Err()
		case <-tello.workers.done():
			return "", ErrClosed
		}
	}
}

// LastResponse returns the unconsumed ack, if any, without consuming it.
func (tello *Tello) LastResponse() (Response, bool) {
	tello.respMu.Lock()
	defer tello.respMu.Unlock()
	if tello.resp == nil {
		return Response{}, false
	}
	return *tello.resp, true
}

func (tello *Tello) takeResponse() *Response {
	tello.respMu.Lock()
	r := tello.resp
	tello.resp = nil
	tello.respMu.Unlock()
	return r
}

func (tello *Tello) storeResponse(text string) {
	tello.respMu.Lock()
	tello.resp = &Response{Text: text, ReceivedAt: tello.clock.Now()}
	tello.respMu.Unlock()
	select {
	case tello.respReady <- struct{}{}:
	default:
	}
}

// Telemetry returns a copy of the latest state frame.
// ReceivedAt is zero if no frame has arrived yet.
func (tello *Tello) Telemetry() Telemetry {
	tello.stateMu.RLock()
	defer tello.stateMu.RUnlock()
	fields := make(map[string]string, len(tello.state.Fields))
	for k, v := range tello.state.Fields {
		fields[k] = v
	}
	return Telemetry{Fields: fields, ReceivedAt: tello.state.ReceivedAt}
}

// handleStateFrame replaces the telemetry snapshot with frame, if it is a valid state frame.
func (tello *Tello) handleStateFrame(frame string) bool {
	fields, ok := parseStateFrame(frame)
	if !ok {
		tello.logger.Debugw("discarding malformed state frame", "frame", frame)
		return false
	}
	tello.stateMu.Lock()
	tello.state = Telemetry{Fields: fields, ReceivedAt: tello.clock.Now()}
	tello.stateMu.Unlock()
	return true
}

func (tello *Tello) ackListener(ctx context.Context) {
	buff := make([]byte, maxAckSize)
	for {
		n, err := tello.ctrlConn.Read(buff)
		if err != nil {
			if ctx.Err() != nil || isClosedErr(err) {
				tello.logger.Debug("ack listener stopped")
				return
			}
			tello.logger.Warnw("ack socket read failed", "error", err)
			continue
		}
		if n > 0 {
			tello.storeResponse(string(buff[:n]))
		}
	}
}

func (tello *Tello) stateListener(ctx context.Context) {
	buff := make([]byte, maxStateSize)
	interval := tello.conf.StateInterval()
	for {
		n, err := tello.readStateFrame(buff)
		if err != nil {
			if ctx.Err() != nil || isClosedErr(err) {
				tello.logger.Debug("state listener stopped")
				return
			}
			tello.logger.Warnw("state socket read failed", "error", err)
		} else {
			tello.handleStateFrame(string(buff[:n]))
		}
		if !utils.SelectContextOrWait(ctx, interval) {
			tello.logger.Debug("state listener stopped")
			return
		}
	}
}
