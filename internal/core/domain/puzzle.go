// Package domain contains the core types of the squares solver.
package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.trai.ch/zerr"
)

const (
	// MinDepth is the shortest word length a solve may ask for.
	MinDepth = 4
	// MaxDepth is the longest word length a solve may ask for.
	MaxDepth = 16
)

// PuzzleKey identifies a grid. Two keys are the same puzzle only when their
// letter sequences are identical; order matters.
type PuzzleKey string

// NormalizeKey lower-cases raw and collapses its whitespace to single spaces.
func NormalizeKey(raw string) PuzzleKey {
	return PuzzleKey(strings.Join(strings.Fields(strings.ToLower(raw)), " "))
}

// String returns the key text.
func (k PuzzleKey) String() string {
	return string(k)
}

// SolveJob is a single request to the solver.
type SolveJob struct {
	Key   PuzzleKey
	Depth int
}

// NewSolveJob validates the parameters of a solve.
func NewSolveJob(grid string, depth int) (SolveJob, error) {
	key := NormalizeKey(grid)
	if key == "" {
		return SolveJob{}, zerr.Wrap(ErrValidation, "grid is required")
	}
	if depth < MinDepth || depth > MaxDepth {
		return SolveJob{}, zerr.With(
			zerr.Wrap(ErrValidation, "depth must be between 4 and 16"),
			"depth", depth,
		)
	}
	return SolveJob{Key: key, Depth: depth}, nil
}

// Input is the line written to the solver's standard input.
func (j SolveJob) Input() string {
	return j.Key.String() + " " + strconv.Itoa(j.Depth) + "\n"
}

// NormalizeWord trims and lower-cases a single word.
func NormalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// ParseWords splits solver output into normalized words, dropping empties.
func ParseWords(output string) []string {
	fields := strings.Fields(output)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := NormalizeWord(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// ExtractGrid builds a puzzle key from board cell attributes.
// Each attribute has the form "*-*-x-*-*" where x is the cell's letter,
// a single rune that need not be ASCII.
func ExtractGrid(attrs []string) (PuzzleKey, error) {
	if len(attrs) == 0 {
		return "", ErrNoGridElements
	}

	letters := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts := strings.Split(strings.TrimSpace(attr), "-")
		if len(parts) < 3 {
			continue
		}
		if letter := parts[2]; utf8.RuneCountInString(letter) == 1 {
			letters = append(letters, strings.ToLower(letter))
		}
	}

	if len(letters) == 0 {
		return "", ErrNoGridLetters
	}
	return PuzzleKey(strings.Join(letters, " ")), nil
}

// WordGroup holds the words of one length.
type WordGroup struct {
	Length int
	Words  []string
}

// GroupByLength groups words by length, shortest first, keeping input order within a group.
func GroupByLength(words []string) []WordGroup {
	byLen := make(map[int][]string)
	for _, w := range words {
		byLen[len(w)] = append(byLen[len(w)], w)
	}

	lengths := make([]int, 0, len(byLen))
	for l := range byLen {
		lengths = append(lengths, l)
	}
	slices.Sort(lengths)

	groups := make([]WordGroup, 0, len(lengths))
	for _, l := range lengths {
		groups = append(groups, WordGroup{Length: l, Words: byLen[l]})
	}
	return groups
}
