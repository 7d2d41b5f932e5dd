// Package study implements the session engine: the question/answer/advance
// state machine that drives one user through one deck.
//
// An Engine holds at most one active session. Starting a session (on the same
// or another deck) discards the previous one outright. Card choice is
// delegated to a schedule.Policy and outcome accounting to a
// progress.Tracker, both created fresh for every session, so independent
// Engines never share state.
//
// Next and Prev only move a read-only viewing pointer over the cards already
// presented; they never create review records or change the phase.
package study
