// messages.go

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

import "time"

const (
	defaultTelloAddr        = "192.168.10.1"
	defaultTelloControlPort = 8889
	defaultLocalControlPort = 8889
	defaultLocalStatePort   = 8890

	// VideoPort is where the Tello sends its H.264 stream after "streamon".
	// This package does not bind it.
	VideoPort = 11111
)

const (
	defaultStateInterval  = 200 * time.Millisecond
	defaultCommandTimeout = time.Second
)

// max datagram sizes we are prepared to read
const (
	maxAckSize   = 1518
	maxStateSize = 1024
)

// NoResponse is returned by SendCommand when the Tello does not answer within the command timeout.
const NoResponse = "none_response"

// replies the Tello may give to a control command
const (
	ReplyOK    = "ok"
	ReplyError = "error"
)

// telemetry frame syntax
const (
	stateFieldSep      = ";"
	stateKeyValueSep   = ":"
	stateFrameTerminal = "\r\n"
)

// SDK command words
const (
	cmdSDKMode      = "command"
	cmdTakeoff      = "takeoff"
	cmdLand         = "land"
	cmdStop         = "stop"
	cmdEmergency    = "emergency"
	cmdStreamOn     = "streamon"
	cmdStreamOff    = "streamoff"
	cmdMissionOn    = "mon"
	cmdMissionOff   = "moff"
	cmdMissionDir   = "mdirection"
	cmdSpeed        = "speed"
	cmdClockwise    = "cw"
	cmdAntiClock    = "ccw"
	cmdFlip         = "flip"
	cmdGo           = "go"
	cmdCurve        = "curve"
	cmdQuerySpeed   = "speed?"
	cmdQueryBattery = "battery?"
	cmdQueryTime    = "time?"
	cmdQueryWifi    = "wifi?"
	cmdQuerySDK     = "sdk?"
	cmdQuerySN      = "sn?"
)

// Direction is a movement direction understood by Move()
type Direction string

// The Tello SDK movement directions
const (
	DirForward Direction = "forward"
	DirBack    Direction = "back"
	DirLeft    Direction = "left"
	DirRight   Direction = "right"
	DirUp      Direction = "up"
	DirDown    Direction = "down"
)

// FlipType represents a flip direction for the Flip() command
type FlipType string

// The Tello SDK flip directions
const (
	FlipLeft     FlipType = "l"
	FlipRight    FlipType = "r"
	FlipForward  FlipType = "f"
	FlipBackward FlipType = "b"
)

// MissionPadDirection selects which camera(s) look for Mission Pads
type MissionPadDirection int

// Mission Pad detection modes
const (
	MissionPadDown    MissionPadDirection = iota // downward detection only
	MissionPadForward                            // forward detection only
	MissionPadBoth                               // forward and downward detection
)

// movement and speed limits enforced (by clamping) before sending
const (
	minDistanceCm = 20
	maxDistanceCm = 500
	minSpeedCmps  = 10
	maxSpeedCmps  = 100
)

// the speed? reply is divided by this to give km/h
const speedQueryDivisor = 27.7778

// Response is an acknowledgement received from the Tello on the command channel.
// The protocol carries no request IDs, so a Response is simply whatever arrived last.
type Response struct {
	Text       string
	ReceivedAt time.Time
}

// IntReading is the result of an integer query such as Battery().
// If the Tello's reply was not a number then Valid is false; Raw always holds the reply.
type IntReading struct {
	Value int
	Raw   string
	Valid bool
}

// FloatReading is the result of a query converted to a real value, eg. Speed().
type FloatReading struct {
	Value float64
	Raw   string
	Valid bool
}
