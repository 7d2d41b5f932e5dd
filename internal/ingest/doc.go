// Package ingest decodes flashcard CSV files into deck rows.
//
// A deck file has a header naming exactly the columns front, back and deck,
// in any order. Decoding stops at the first malformed record; blank fields
// are left for deck.BuildDecks to report row by row.
package ingest
