// Package events provides types and interfaces for publishing study session
// events.
//
// The study engine emits an event for every state transition without knowing
// who listens. Front ends register handlers to log, display, or (in future)
// persist the review log.
//
// The primary components are:
// - SessionEvent: one published transition of a study session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
