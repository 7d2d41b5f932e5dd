package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestTrackerRecord(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(fixedClock())
	cardA, cardB := uuid.New(), uuid.New()

	first, err := tracker.Record(cardA, domain.OutcomeCorrect)
	require.NoError(t, err)
	second, err := tracker.Record(cardB, domain.OutcomeIncorrect)
	require.NoError(t, err)

	assert.Equal(t, 1, first.SequenceNumber)
	assert.Equal(t, 2, second.SequenceNumber)
	assert.Equal(t, cardB, second.CardID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), second.RecordedAt)

	records := tracker.Records()
	require.Len(t, records, 2)
	records[0].Outcome = domain.OutcomeIncorrect
	assert.Equal(t, domain.OutcomeCorrect, tracker.Records()[0].Outcome, "Records returns a copy")
}

func TestTrackerRejectsInvalidOutcome(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(nil)

	_, err := tracker.Record(uuid.New(), domain.Outcome("skip"))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, tracker.Len())
	assert.Equal(t, domain.Stats{}, tracker.Stats())
}

func TestTrackerStats(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		outcomes []domain.Outcome
		expected domain.Stats
	}{
		{
			name:     "nothing studied",
			expected: domain.Stats{},
		},
		{
			name:     "one of each",
			outcomes: []domain.Outcome{domain.OutcomeCorrect, domain.OutcomeIncorrect},
			expected: domain.Stats{StudiedCount: 2, CorrectCount: 1, IncorrectCount: 1, Accuracy: 0.5},
		},
		{
			name: "mostly correct",
			outcomes: []domain.Outcome{
				domain.OutcomeCorrect, domain.OutcomeCorrect,
				domain.OutcomeCorrect, domain.OutcomeIncorrect,
			},
			expected: domain.Stats{StudiedCount: 4, CorrectCount: 3, IncorrectCount: 1, Accuracy: 0.75},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tracker := NewTracker(nil)
			for i, o := range tc.outcomes {
				_, err := tracker.Record(uuid.New(), o)
				require.NoError(t, err)

				stats := tracker.Stats()
				assert.Equal(t, i+1, stats.CorrectCount+stats.IncorrectCount)
			}
			assert.Equal(t, tc.expected, tracker.Stats())
		})
	}
}

func TestTrackerReset(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(nil)
	_, err := tracker.Record(uuid.New(), domain.OutcomeCorrect)
	require.NoError(t, err)

	tracker.Reset()

	assert.Equal(t, 0, tracker.Len())
	assert.Equal(t, domain.Stats{}, tracker.Stats())

	rec, err := tracker.Record(uuid.New(), domain.OutcomeCorrect)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.SequenceNumber, "sequence numbers keep increasing")
}
