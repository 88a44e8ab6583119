package domain

// SearchRequest represents a CRM search API request. Filter groups combine
// with OR; filters within a group combine with AND.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
}

// FilterGroup is a group of filters combined with AND.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// Filter represents a single property filter. Only the EQ operator is
// evaluated; any other operator is treated as trivially satisfied.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// SearchResult is the response from a CRM search. Paging is always the empty
// array; the double does not paginate.
type SearchResult struct {
	Total   int       `json:"total"`
	Results []*Object `json:"results"`
	Paging  []any     `json:"paging"`
}
