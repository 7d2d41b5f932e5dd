// Package domain contains the core entities, value objects, and errors of the
// study engine: cards, decks, review outcomes, session state, and the typed
// errors returned by every engine operation. It is independent of any
// ingestion format or front end.
package domain
