package pagination

// CalculateOffset converts a 1-based page into a row offset.
//
//   - Page 1, Limit 20 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// Metadata describes the page that was served.
type Metadata struct {
	Page    int  `json:"page"`     // Current page number (1-based)
	Limit   int  `json:"limit"`    // Items per page
	Offset  int  `json:"offset"`   // Items skipped before this page
	HasMore bool `json:"has_more"` // A full page was returned, so another may follow
}

// NewMetadata builds the metadata for a page that returned count items.
func NewMetadata(params Params, count int) Metadata {
	return Metadata{
		Page:    params.Page,
		Limit:   params.Limit,
		Offset:  params.Offset(),
		HasMore: count >= params.Limit,
	}
}

// Response is a generic paginated response wrapper.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse creates a paginated response. A nil data slice is serialized as [].
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
