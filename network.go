// network.go

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
	"strconv"

	"github.com/pkg/errors"
)

// openControlConn binds the local command port and connects it to the Tello's command port.
// Acks come back to the same socket.
func openControlConn(conf Config) (*net.UDPConn, error) {
	droneAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(conf.TelloIP, strconv.Itoa(conf.TelloPort)))
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve tello address")
	}
	localAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(conf.LocalIP, strconv.Itoa(conf.LocalPort)))
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve local command address")
	}
	conn, err := net.DialUDP("udp", localAddr, droneAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open command channel on %s", localAddr)
	}
	return conn, nil
}

// openStateConn binds the local telemetry port; the Tello sends state frames there unsolicited.
func openStateConn(conf Config) (*net.UDPConn, error) {
	localAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(conf.LocalIP, strconv.Itoa(conf.StatePort)))
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve local state address")
	}
	conn, err := net.ListenUDP("udp", localAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open state channel on %s", localAddr)
	}
	return conn, nil
}

// isClosedErr reports whether a read failed because the socket was closed under it.
func isClosedErr(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
