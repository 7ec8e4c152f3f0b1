package state

import "recipebook"

// Search is the current query, its results and the page being viewed.
type Search struct {
	Query          string                    `json:"query"`
	Results        []recipebook.SearchResult `json:"results"`
	Page           int                       `json:"page"`
	ResultsPerPage int                       `json:"resultsPerPage"`
}

// NumPages is the number of pages the results span.
func (s Search) NumPages() int {
	if s.ResultsPerPage <= 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}

// pageSlice returns results [(page-1)*perPage, page*perPage), clipped to the result count.
func (s Search) pageSlice(page int) []recipebook.SearchResult {
	start := (page - 1) * s.ResultsPerPage
	if start >= len(s.Results) {
		return []recipebook.SearchResult{}
	}
	end := min(page*s.ResultsPerPage, len(s.Results))

	out := make([]recipebook.SearchResult, end-start)
	copy(out, s.Results[start:end])
	return out
}
