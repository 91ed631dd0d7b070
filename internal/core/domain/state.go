package domain

// Keys of the persisted shared state.
const (
	CacheStateKey   = "squaresSolverCache"
	FoundWordsKey   = "foundWords"
	InvalidWordsKey = "invalidWords"
)
