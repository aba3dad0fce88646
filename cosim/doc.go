// Package cosim provides the co-simulation core that couples a wind-turbine
// rotor plant to an external pitch controller over a line-based serial
// protocol.
//
// # Reading Guide
//
// Start with these three files to understand the loop:
//   - plant.go: the 1-DOF turbine model (the implemented Backend variant)
//   - transport.go: the serial request/response session with timeout
//   - loop.go: the step loop that owns simulated time and tick ordering
//
// # Architecture
//
// The package defines small interfaces; alternate implementations live in
// sub-packages:
//   - cosim/qblade: external-tool backends (declared extension points that
//     refuse to run rather than partially executing)
//   - cosim/trace: run recording, summaries, and CSV export
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Backend: advance the plant one step, return the rotor speed
//   - Exchanger: one measurement out, at most one pitch command back
//   - Sink: consume (time, speed, pitch) ticks and controller diagnostics
//
// The wire protocol is synchronous and line-oriented: the loop sends
// "RPM:<speed>\n" and the controller replies "PITCH:<deg>\n". Any other
// line from the controller is treated as a diagnostic, not a command.
package cosim
