/*Package tello provides an unofficial, easy-to-use API for the Ryze Tello® drone's SDK text protocol.

Disclaimer

Tello is a registered trademark of Ryze Tech.  The author(s) of this package is/are in no way affiliated with Ryze, DJI, or Intel.

Use this package at your own risk.  The author(s) is/are in no way responsible for any damage caused either to or by the
drone when using this software.

Features

The following features have been implemented...
  * Single-line SDK commands with a bounded wait for the drone's reply, eg. SendCommand("battery?")
  * Drone built-in flight commands, eg. TakeOff(), Land(), Flip()
  * Macro-level flight control with range clamping, eg. Forward(), Up(), SetSpeed()
  * Numeric queries which degrade to the raw reply, eg. Battery(), FlightTime(), Speed()
  * Real-time telemetry from the state channel, eg. Telemetry().Height()

Concepts

Connection Types

The drone listens for commands on UDP port 8889 and answers each one with a short text reply ("ok", "error", or a value)
sent back to the same port.  Separately, and unsolicited, it sends a telemetry frame of the form "key:value;key:value;...;"
to port 8890 several times a second.  The video stream on port 11111 is not handled by this package.
Only one frame is read per Config.StateInterval, so when the drone sends faster than that the unread frames queue up
and Telemetry() can lag the drone by a second or more.

Commands and Replies

The protocol carries no request identifiers.  A reply is simply the last thing that arrived on the command socket,
so SendCommand only ever allows one command in flight and gives up after Config.CommandTimeout, returning NoResponse.
A reply that turns up after its command has timed out will be handed to the next command sent; if that matters,
wait a little (or check LastResponse) before sending again.

Use CheckOK() to turn a control command reply into an error.

*/
package tello
