// helpers_test.go

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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"
)

// fakeDrone stands in for a Tello on the loopback interface.
type fakeDrone struct {
	conn  *net.UDPConn
	reply func(cmd string) (string, bool)
	delay time.Duration

	mu       sync.Mutex
	received []string
}

func newFakeDrone(t *testing.T, reply func(cmd string) (string, bool)) *fakeDrone {
	t.Helper()
	return newSlowDrone(t, reply, 0)
}

// newSlowDrone answers each command only after delay.
func newSlowDrone(t *testing.T, reply func(cmd string) (string, bool), delay time.Duration) *fakeDrone {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	test.That(t, err, test.ShouldBeNil)
	d := &fakeDrone{conn: conn, reply: reply, delay: delay}
	t.Cleanup(func() { conn.Close() })
	go d.serve()
	return d
}

// alwaysOK answers every command with "ok".
func alwaysOK(string) (string, bool) {
	return ReplyOK, true
}

// silent never answers.
func silent(string) (string, bool) {
	return "", false
}

func (d *fakeDrone) serve() {
	buff := make([]byte, maxAckSize)
	for {
		n, addr, err := d.conn.ReadFromUDP(buff)
		if err != nil {
			return
		}
		cmd := string(buff[:n])
		d.mu.Lock()
		d.received = append(d.received, cmd)
		d.mu.Unlock()
		if resp, ok := d.reply(cmd); ok {
			go func() {
				time.Sleep(d.delay)
				d.conn.WriteToUDP([]byte(resp), addr)
			}()
		}
	}
}

func (d *fakeDrone) port() int {
	return d.conn.LocalAddr().(*net.UDPAddr).Port
}

func (d *fakeDrone) commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.received...)
}

func (d *fakeDrone) sendTo(t *testing.T, addr net.Addr, payload string) {
	t.Helper()
	_, err := d.conn.WriteToUDP([]byte(payload), addr.(*net.UDPAddr))
	test.That(t, err, test.ShouldBeNil)
}

func testConfig(drone *fakeDrone, timeoutSec float64) Config {
	return Config{
		LocalIP:           "127.0.0.1",
		TelloIP:           "127.0.0.1",
		TelloPort:         drone.port(),
		EphemeralPorts:    true,
		StateIntervalSec:  0.01,
		CommandTimeoutSec: timeoutSec,
	}
}

func newTestTello(t *testing.T, drone *fakeDrone, timeoutSec float64) *Tello {
	t.Helper()
	return newTestTelloWithClock(t, drone, timeoutSec, clock.New())
}

func newTestTelloWithClock(t *testing.T, drone *fakeDrone, timeoutSec float64, clk clock.Clock) *Tello {
	t.Helper()
	tello, err := connect(testConfig(drone, timeoutSec), golog.NewTestLogger(t), clk)
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { tello.Close() })
	return tello
}
