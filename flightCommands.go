// flightCommands.go

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
	"fmt"

	"github.com/pkg/errors"
)

// EnterSDKMode puts the Tello into SDK (text command) mode; it must be the first command sent.
func (tello *Tello) EnterSDKMode(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdSDKMode)
}

// StreamOn asks the Tello to start sending video to VideoPort.
func (tello *Tello) StreamOn(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdStreamOn)
}

// StreamOff stops the video stream.
func (tello *Tello) StreamOff(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdStreamOff)
}

// MissionPadOn enables Mission Pad detection using the given camera(s).
// The reply returned is that of the mdirection command.
func (tello *Tello) MissionPadOn(ctx context.Context, dir MissionPadDirection) (string, error) {
	if dir < MissionPadDown || dir > MissionPadBoth {
		return "", errors.Errorf("invalid mission pad direction %d", dir)
	}
	if _, err := tello.SendCommand(ctx, cmdMissionOn); err != nil {
		return "", err
	}
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d", cmdMissionDir, dir))
}

// MissionPadOff disables Mission Pad detection.
func (tello *Tello) MissionPadOff(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdMissionOff)
}

// SetSpeed sets the flight speed in cm/s; values outside 10-100 are clamped.
func (tello *Tello) SetSpeed(ctx context.Context, cmps int) (string, error) {
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d", cmdSpeed, clampSpeed(cmps)))
}

// TakeOff sends a normal takeoff request to the Tello
func (tello *Tello) TakeOff(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdTakeoff)
}

// Land sends a normal land request to the Tello
func (tello *Tello) Land(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdLand)
}

// Stop halts the current manoeuvre and hovers in place. It works at any time.
func (tello *Tello) Stop(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdStop)
}

// Emergency stops all motors immediately - the drone will fall.
func (tello *Tello) Emergency(ctx context.Context) (string, error) {
	return tello.SendCommand(ctx, cmdEmergency)
}

// Clockwise rotates the drone by deg degrees.
// The Tello only accepts 1-360 and will answer with an error otherwise; the value is not checked here.
func (tello *Tello) Clockwise(ctx context.Context, deg int) (string, error) {
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d", cmdClockwise, deg))
}

// TurnRight is an alias for Clockwise()
func (tello *Tello) TurnRight(ctx context.Context, deg int) (string, error) {
	return tello.Clockwise(ctx, deg)
}

// CounterClockwise rotates the drone anticlockwise by deg degrees. See Clockwise().
func (tello *Tello) CounterClockwise(ctx context.Context, deg int) (string, error) {
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d", cmdAntiClock, deg))
}

// TurnLeft is an alias for CounterClockwise()
func (tello *Tello) TurnLeft(ctx context.Context, deg int) (string, error) {
	return tello.CounterClockwise(ctx, deg)
}

// Flip performs a flip in the given direction.
func (tello *Tello) Flip(ctx context.Context, dir FlipType) (string, error) {
	switch dir {
	case FlipLeft, FlipRight, FlipForward, FlipBackward:
	default:
		return "", errors.Errorf("invalid flip direction %q", dir)
	}
	return tello.SendCommand(ctx, fmt.Sprintf("%s %s", cmdFlip, dir))
}

// Move flies cm centimetres in the given direction; cm is clamped to 20-500.
func (tello *Tello) Move(ctx context.Context, dir Direction, cm int) (string, error) {
	switch dir {
	case DirForward, DirBack, DirLeft, DirRight, DirUp, DirDown:
	default:
		return "", errors.Errorf("invalid direction %q", dir)
	}
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d", dir, clampDistance(cm)))
}

// Forward flies forward cm centimetres.
func (tello *Tello) Forward(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirForward, cm)
}

// Back flies backward cm centimetres.
func (tello *Tello) Back(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirBack, cm)
}

// Left flies left cm centimetres.
func (tello *Tello) Left(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirLeft, cm)
}

// Right flies right cm centimetres.
func (tello *Tello) Right(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirRight, cm)
}

// Up climbs cm centimetres.
func (tello *Tello) Up(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirUp, cm)
}

// Down descends cm centimetres.
func (tello *Tello) Down(ctx context.Context, cm int) (string, error) {
	return tello.Move(ctx, DirDown, cm)
}

// GoTo flies to x, y, z (each -500 to 500 cm) at speed cm/s (10-100).
// The values are passed through; the Tello rejects out-of-range ones.
func (tello *Tello) GoTo(ctx context.Context, x, y, z, speed int) (string, error) {
	return tello.SendCommand(ctx, fmt.Sprintf("%s %d %d %d %d", cmdGo, x, y, z, speed))
}

// Curve flies a curve through x1,y1,z1 to x2,y2,z2 at speed cm/s (10-60).
// The Tello answers with an error if the arc radius is not within 0.5-10 metres,
// or if x, y and z are all between -20 and 20.
func (tello *Tello) Curve(ctx context.Context, x1, y1, z1, x2, y2, z2, speed int) (string, error) {
	return tello.SendCommand(ctx,
		fmt.Sprintf("%s %d %d %d %d %d %d %d", cmdCurve, x1, y1, z1, x2, y2, z2, speed))
}

func clampDistance(cm int) int {
	return clamp(cm, minDistanceCm, maxDistanceCm)
}

func clampSpeed(cmps int) int {
	return clamp(cmps, minSpeedCmps, maxSpeedCmps)
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
