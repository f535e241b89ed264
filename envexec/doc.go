// Package envexec runs a single shell command on the host with streamed,
// indented output and a wall clock limit.
//
// The command is started as the leader of a new process group (on unix) so
// that a timeout terminates all of its descendants. Exit, timeout and
// context cancellation race in a single select, the first one settles the
// result and the others are discarded.
package envexec
