package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/scry-study/internal/deck"
	"github.com/phrazzld/scry-study/internal/domain"
)

// Column names a deck file must carry.
const (
	ColumnFront = "front"
	ColumnBack  = "back"
	ColumnDeck  = "deck"
)

// Extension of deck files picked up by ReadDir.
const Extension = ".csv"

var requiredColumns = []string{ColumnFront, ColumnBack, ColumnDeck}

// ReadRows decodes CSV from r. The first record is the header; header
// problems are reported as *domain.ValidationError with Field "header".
func ReadRows(r io.Reader) ([]deck.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, headerError("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []deck.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, deck.Row{
			Front: record[idx[ColumnFront]],
			Back:  record[idx[ColumnBack]],
			Deck:  record[idx[ColumnDeck]],
		})
	}
	return rows, nil
}

// ReadFile decodes the deck file at path.
func ReadFile(path string) ([]deck.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadDir decodes every deck file directly inside dir, in file name order,
// and concatenates their rows.
func ReadDir(dir string) ([]deck.Row, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory: %w", err)
	}

	var rows []deck.Row
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}
		fileRows, err := ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// Read decodes path as a single deck file or, if it is a directory, as a
// directory of deck files.
func Read(path string) ([]deck.Row, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat deck path: %w", err)
	}
	if info.IsDir() {
		return ReadDir(path)
	}
	return ReadFile(path)
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))

		switch name {
		case ColumnFront, ColumnBack, ColumnDeck:
		default:
			return nil, headerError(fmt.Sprintf("unexpected column %q", name))
		}
		if _, dup := idx[name]; dup {
			return nil, headerError(fmt.Sprintf("duplicate column %q", name))
		}
		idx[name] = i
	}

	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, headerError(fmt.Sprintf("missing column %q", name))
		}
	}
	return idx, nil
}

func headerError(reason string) error {
	return &domain.ValidationError{Row: -1, Field: "header", Reason: reason}
}
