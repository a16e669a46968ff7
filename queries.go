// queries.go

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
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoResponse means the Tello did not acknowledge a command in time.
	ErrNoResponse = errors.New("no response from tello")
	// ErrCommandFailed means the Tello answered something other than "ok".
	ErrCommandFailed = errors.New("tello command failed")
)

// CheckOK turns a control command reply into an error.
func CheckOK(reply string) error {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case ReplyOK:
		return nil
	case NoResponse:
		return ErrNoResponse
	default:
		return errors.Wrapf(ErrCommandFailed, "reply %q", reply)
	}
}

// Wifi returns the Wi-Fi SNR as reported by the Tello.
func (tello *Tello) Wifi(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdQueryWifi)
}

// SDKVersion returns the Tello SDK version.
func (tello *Tello) SDKVersion(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdQuerySDK)
}

// SerialNumber returns the Tello serial number.
func (tello *Tello) SerialNumber(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdQuerySN)
}

// FlightTime returns the number of seconds elapsed during flight.
func (tello *Tello) FlightTime(ctx context.Context) (IntReading, error) {
	reply, err := tello.SendCommand(ctx, cmdQueryTime)
	if err != nil {
		return IntReading{}, err
	}
	return parseIntReading(reply), nil
}

// Battery returns the remaining battery percentage.
func (tello *Tello) Battery(ctx context.Context) (IntReading, error) {
	reply, err := tello.SendCommand(ctx, cmdQueryBattery)
	if err != nil {
		return IntReading{}, err
	}
	return parseIntReading(reply), nil
}

// Speed returns the current speed in km/h.
func (tello *Tello) Speed(ctx context.Context) (FloatReading, error) {
	reply, err := tello.SendCommand(ctx, cmdQuerySpeed)
	if err != nil {
		return FloatReading{}, err
	}
	return parseSpeedReading(reply), nil
}

func parseIntReading(reply string) IntReading {
	v, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return IntReading{Raw: reply}
	}
	return IntReading{Value: v, Raw: reply, Valid: true}
}

func parseSpeedReading(reply string) FloatReading {
	v, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return FloatReading{Raw: reply}
	}
	return FloatReading{Value: math.Round(v/speedQueryDivisor*10) / 10, Raw: reply, Valid: true}
}
