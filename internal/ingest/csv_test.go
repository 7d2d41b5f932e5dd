package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/scry-study/internal/deck"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		want      []deck.Row
		wantField string
		wantErr   string
	}{
		{
			name:  "canonical header",
			input: "front,back,deck\nQ1,A1,CS\nQ2,A2,CS\n",
			want: []deck.Row{
				{Front: "Q1", Back: "A1", Deck: "CS"},
				{Front: "Q2", Back: "A2", Deck: "CS"},
			},
		},
		{
			name:  "columns in any order",
			input: "deck,front,back\nCS,Q1,A1\n",
			want:  []deck.Row{{Front: "Q1", Back: "A1", Deck: "CS"}},
		},
		{
			name:  "header case and byte order mark",
			input: "\ufeffFront, Back ,DECK\nQ1,A1,CS\n",
			want:  []deck.Row{{Front: "Q1", Back: "A1", Deck: "CS"}},
		},
		{
			name:  "quoted fields keep commas and newlines",
			input: "front,back,deck\n\"a, b\",\"line1\nline2\",CS\n",
			want:  []deck.Row{{Front: "a, b", Back: "line1\nline2", Deck: "CS"}},
		},
		{
			name:  "blank fields are passed through",
			input: "front,back,deck\n,A1,CS\n",
			want:  []deck.Row{{Front: "", Back: "A1", Deck: "CS"}},
		},
		{
			name:  "header only",
			input: "front,back,deck\n",
			want:  nil,
		},
		{
			name:      "empty input",
			input:     "",
			wantField: "header",
			wantErr:   "input is empty",
		},
		{
			name:      "missing column",
			input:     "front,back\nQ1,A1\n",
			wantField: "header",
			wantErr:   `missing column "deck"`,
		},
		{
			name:      "extra column",
			input:     "front,back,deck,tags\nQ1,A1,CS,x\n",
			wantField: "header",
			wantErr:   `unexpected column "tags"`,
		},
		{
			name:      "duplicate column",
			input:     "front,back,front\nQ1,A1,Q\n",
			wantField: "header",
			wantErr:   `duplicate column "front"`,
		},
		{
			name:    "record with wrong field count",
			input:   "front,back,deck\nQ1,A1\n",
			wantErr: "failed to read CSV record",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rows, err := ReadRows(strings.NewReader(tc.input))

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				if tc.wantField != "" {
					var ve *domain.ValidationError
					require.ErrorAs(t, err, &ve)
					assert.Equal(t, tc.wantField, ve.Field)
					assert.ErrorIs(t, err, domain.ErrValidation)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rows)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, dir, "cs.csv", "front,back,deck\nQ1,A1,CS\n")
		rows, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []deck.Row{{Front: "Q1", Back: "A1", Deck: "CS"}}, rows)
	})

	t.Run("bad header names the file", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", "question,answer\n")
		_, err := ReadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "b_spanish.csv", "front,back,deck\nhola,hello,Spanish\n")
	writeFile(t, dir, "a_cs.CSV", "front,back,deck\nQ1,A1,CS\n")
	writeFile(t, dir, "notes.txt", "not a deck")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o700))

	rows, err := ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []deck.Row{
		{Front: "Q1", Back: "A1", Deck: "CS"},
		{Front: "hola", Back: "hello", Deck: "Spanish"},
	}, rows)

	t.Run("read dispatches on path kind", func(t *testing.T) {
		fromDir, err := Read(dir)
		require.NoError(t, err)
		assert.Equal(t, rows, fromDir)

		fromFile, err := Read(filepath.Join(dir, "a_cs.CSV"))
		require.NoError(t, err)
		assert.Len(t, fromFile, 1)
	})

	t.Run("one bad file fails the directory", func(t *testing.T) {
		bad := t.TempDir()
		writeFile(t, bad, "a.csv", "front,back,deck\nQ1,A1,CS\n")
		writeFile(t, bad, "b.csv", "front\nQ\n")
		_, err := ReadDir(bad)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Read(filepath.Join(dir, "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRowsBuildDecks(t *testing.T) {
	t.Parallel()
	rows, err := ReadRows(strings.NewReader("front,back,deck\nQ1,A1,CS\n,A2,CS\nQ3,A3,cs\n"))
	require.NoError(t, err)

	store, rejects := deck.BuildDecks(rows)
	require.Len(t, rejects, 1)
	assert.Equal(t, 1, rejects[0].Row)
	assert.Equal(t, "front", rejects[0].Field)

	d, err := store.GetDeck("CS")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}
