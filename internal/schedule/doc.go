// Package schedule decides which card a study session presents next.
//
// Every variant implements Policy. The study engine only talks to that
// interface, so a variant can be swapped without touching the state machine.
// A Policy value belongs to one session; create a fresh one per session with New.
package schedule
