package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squares/internal/core/domain"
)

func TestNewSolveJob(t *testing.T) {
	tests := []struct {
		name    string
		grid    string
		depth   int
		wantKey domain.PuzzleKey
		wantErr bool
	}{
		{name: "valid", grid: "a b c d e f g h i", depth: 4, wantKey: "a b c d e f g h i"},
		{name: "normalizes whitespace and case", grid: "  A  b\tC ", depth: 16, wantKey: "a b c"},
		{name: "empty grid", grid: "   ", depth: 5, wantErr: true},
		{name: "depth below range", grid: "a b", depth: 3, wantErr: true},
		{name: "depth above range", grid: "a b", depth: 20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := domain.NewSolveJob(tt.grid, tt.depth)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, job.Key)
			assert.Equal(t, tt.depth, job.Depth)
		})
	}
}

func TestSolveJob_Input(t *testing.T) {
	job, err := domain.NewSolveJob("a b c d e f g h i", 4)
	require.NoError(t, err)
	assert.Equal(t, "a b c d e f g h i 4\n", job.Input())
}

func TestParseWords(t *testing.T) {
	assert.Equal(t, []string{"cat", "bat"}, domain.ParseWords("cat bat"))
	assert.Equal(t, []string{"cat", "bat"}, domain.ParseWords("  CAT \n\n bat\t"))
	assert.Empty(t, domain.ParseWords("   \n"))
}

func TestExtractGrid(t *testing.T) {
	key, err := domain.ExtractGrid([]string{"0-0-A-x-y", "0-1-b-x-y", "bad", "0-2-cd-x-y", "0-3-e"})
	require.NoError(t, err)
	assert.Equal(t, domain.PuzzleKey("a b e"), key)

	key, err = domain.ExtractGrid([]string{"0-0-É-x-y", "0-1-ñ-x-y", "0-2-éé-x-y"})
	require.NoError(t, err)
	assert.Equal(t, domain.PuzzleKey("é ñ"), key)

	_, err = domain.ExtractGrid(nil)
	assert.ErrorIs(t, err, domain.ErrNoGridElements)

	_, err = domain.ExtractGrid([]string{"nothing", "1-2"})
	assert.ErrorIs(t, err, domain.ErrNoGridLetters)
}

func TestGroupByLength(t *testing.T) {
	groups := domain.GroupByLength([]string{"crane", "cat", "bats", "bat", "slate"})
	require.Len(t, groups, 3)
	assert.Equal(t, domain.WordGroup{Length: 3, Words: []string{"cat", "bat"}}, groups[0])
	assert.Equal(t, domain.WordGroup{Length: 4, Words: []string{"bats"}}, groups[1])
	assert.Equal(t, domain.WordGroup{Length: 5, Words: []string{"crane", "slate"}}, groups[2])
}

func TestSameCalendarDay(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	base := time.Date(2026, 3, 14, 0, 0, 1, 0, loc)

	assert.True(t, domain.SameCalendarDay(base, time.Date(2026, 3, 14, 23, 59, 59, 0, loc), loc))
	assert.False(t, domain.SameCalendarDay(base, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), loc))
	// Less than a minute apart but across midnight.
	late := time.Date(2026, 3, 14, 23, 59, 30, 0, loc)
	assert.False(t, domain.SameCalendarDay(late, late.Add(time.Minute), loc))
	// Same day in UTC can be different days in loc.
	utcLate := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	assert.True(t, domain.SameCalendarDay(utcLate, utcLate.Add(30*time.Minute), time.UTC))
	assert.False(t, domain.SameCalendarDay(utcLate.Add(-2*time.Hour), utcLate, loc))
}

func TestCacheEntries_Purge(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, loc)
	entries := domain.CacheEntries{
		"a b": {Words: []string{"ab"}, Timestamp: now.Add(-time.Hour)},
		"c d": {Words: []string{"cd"}, Timestamp: now.Add(-10 * time.Hour)},
		"e f": {Words: []string{"ef"}, Timestamp: now.AddDate(0, 0, -3)},
	}

	removed := entries.Purge(now, loc)

	assert.Equal(t, 2, removed)
	assert.Contains(t, entries, domain.PuzzleKey("a b"))
	assert.NotContains(t, entries, domain.PuzzleKey("c d"))
	assert.NotContains(t, entries, domain.PuzzleKey("e f"))
}

func TestAttemptSets_Disjoint(t *testing.T) {
	sets := domain.NewAttemptSets()

	assert.True(t, sets.MarkInvalid("crane"))
	assert.True(t, sets.Disjoint())

	assert.True(t, sets.MarkFound("Crane"))
	assert.True(t, sets.Found.Has("crane"))
	assert.False(t, sets.Invalid.Has("crane"))
	assert.True(t, sets.Disjoint())

	assert.False(t, sets.MarkFound("crane"), "repeating a transition is not a change")

	assert.True(t, sets.MarkInvalid("crane", "slate"))
	assert.Equal(t, []string{"crane", "slate"}, sets.Invalid.Sorted())
	assert.Empty(t, sets.Found.Sorted())
	assert.True(t, sets.Disjoint())
}

func TestParseSignal(t *testing.T) {
	tests := []struct {
		line string
		want domain.Signal
	}{
		{"input crane", domain.InputSignal{Value: "crane"}},
		{"submit", domain.SubmitSignal{}},
		{"submit @t1", domain.SubmitSignal{Token: "t1"}},
		{"success @t1", domain.OutcomeSignal{Kind: domain.OutcomeSuccess, Token: "t1"}},
		{"failure", domain.OutcomeSignal{Kind: domain.OutcomeFailure}},
		{
			"notice Not in word list @t2",
			domain.OutcomeSignal{Kind: domain.OutcomeFailure, Text: "Not in word list", Token: "t2"},
		},
		{"notice Nice!", domain.OutcomeSignal{Kind: domain.OutcomeNone, Text: "Nice!"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := domain.ParseSignal(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseSignal("   ")
	require.ErrorIs(t, err, domain.ErrInvalidSignal)

	_, err = domain.ParseSignal("jump crane")
	require.ErrorIs(t, err, domain.ErrInvalidSignal)
}

func TestClassifyNotice(t *testing.T) {
	assert.Equal(t, domain.OutcomeFailure, domain.ClassifyNotice("Not a valid word"))
	assert.Equal(t, domain.OutcomeFailure, domain.ClassifyNotice("not a word"))
	assert.Equal(t, domain.OutcomeFailure, domain.ClassifyNotice("Not in the word list"))
	assert.Equal(t, domain.OutcomeFailure, domain.ClassifyNotice("INVALID WORD"))
	assert.Equal(t, domain.OutcomeNone, domain.ClassifyNotice("Already found"))
	assert.Equal(t, domain.OutcomeNone, domain.ClassifyNotice("wordy"))
}

func TestErrorCode(t *testing.T) {
	_, err := domain.NewSolveJob("", 4)
	assert.Equal(t, domain.CodeInvalidInput, domain.ErrorCode(err))
	assert.Equal(t, domain.CodeSolverTimeout, domain.ErrorCode(domain.ErrSolverTimeout))
	assert.Equal(t, domain.CodeSolverError, domain.ErrorCode(errors.Join(domain.ErrSolverExecution, errors.New("boom"))))
	assert.Equal(t, domain.CodeNetworkError, domain.ErrorCode(domain.ErrNetwork))
	assert.Equal(t, domain.CodeInternal, domain.ErrorCode(errors.New("other")))
	assert.Empty(t, domain.ErrorCode(nil))
}
