package domain

// SearchOptions are the normalized options of a search request. They are
// part of the cache key, so every field must serialize deterministically.
type SearchOptions struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SearchHit is one story result
type SearchHit struct {
	StoryID uint64  `json:"story_id"`
	Title   string  `json:"title"`
	Summary string  `json:"summary,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// SearchResult is the cached unit of a search read
type SearchResult struct {
	Query string      `json:"query"`
	Total int64       `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// SuggestResult is the cached unit of an autosuggest read
type SuggestResult struct {
	Prefix      string   `json:"prefix"`
	Suggestions []string `json:"suggestions"`
}
