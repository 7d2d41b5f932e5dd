// Package deck groups validated question/answer rows into immutable decks
// and serves them by name. Bad rows are collected as validation errors
// rather than aborting the whole ingestion.
package deck
