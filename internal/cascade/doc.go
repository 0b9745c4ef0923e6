// Package cascade chains six PID axes into a two-stage quadrotor control
// loop.
//
// The outer loop tracks position; its x/y outputs are converted into
// pitch/roll setpoints for the inner attitude loop (tilt to translate), while
// its z output feeds the mixer as throttle. Yaw is never position-coupled and
// passes through from the attitude target.
//
//	pos error -> position PIDs -> tilt setpoint -> attitude PIDs -> mixer
//
// A [Cascade] owns its six controllers and its targets exclusively; it reads
// no clocks and performs no I/O. One caller per instance.
package cascade
