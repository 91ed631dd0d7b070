package domain

import "slices"

// WordSet is a set of normalized words.
type WordSet map[string]struct{}

// NewWordSet builds a set from words, normalizing each and skipping empties.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	s.Add(words...)
	return s
}

// Add inserts words and reports whether the set changed.
func (s WordSet) Add(words ...string) bool {
	changed := false
	for _, w := range words {
		w = NormalizeWord(w)
		if w == "" {
			continue
		}
		if _, ok := s[w]; !ok {
			s[w] = struct{}{}
			changed = true
		}
	}
	return changed
}

// Remove deletes words and reports whether the set changed.
func (s WordSet) Remove(words ...string) bool {
	changed := false
	for _, w := range words {
		w = NormalizeWord(w)
		if _, ok := s[w]; ok {
			delete(s, w)
			changed = true
		}
	}
	return changed
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[NormalizeWord(w)]
	return ok
}

// Sorted returns the members in lexical order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s WordSet) Clone() WordSet {
	out := make(WordSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}

// AttemptSets holds the found and invalid sets of one observer.
// The two sets are kept disjoint: every transition removes the word from the
// opposite set before adding it to the target.
type AttemptSets struct {
	Found   WordSet
	Invalid WordSet
}

// NewAttemptSets returns empty sets.
func NewAttemptSets() AttemptSets {
	return AttemptSets{Found: NewWordSet(), Invalid: NewWordSet()}
}

// MarkFound moves words into the found set and reports whether anything changed.
func (a AttemptSets) MarkFound(words ...string) bool {
	removed := a.Invalid.Remove(words...)
	added := a.Found.Add(words...)
	return removed || added
}

// MarkInvalid moves words into the invalid set and reports whether anything changed.
func (a AttemptSets) MarkInvalid(words ...string) bool {
	removed := a.Found.Remove(words...)
	added := a.Invalid.Add(words...)
	return removed || added
}

// Disjoint reports whether no word is in both sets.
func (a AttemptSets) Disjoint() bool {
	for w := range a.Found {
		if _, ok := a.Invalid[w]; ok {
			return false
		}
	}
	return true
}
