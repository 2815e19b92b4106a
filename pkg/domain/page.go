package domain

// ProductPage is the envelope returned by the paged product listing.
// Items never exceeds PageSize; TotalCount and TotalPages describe the
// whole result set so callers can stop paging at the end.
type ProductPage struct {
	Items      []Product `json:"items"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
}
