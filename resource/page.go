package resource

// Record is the minimal contract every REST collection record satisfies: a
// server-assigned identity and a domain-specific status label.
type Record interface {
	RecordID() string
	RecordStatus() string
}

// DefaultPageSize applies when neither the caller nor the server names one.
const DefaultPageSize = 20

// Page is one page of a filtered collection, in server order. Stats is the
// optional server-side per-status summary; it is authoritative whenever the
// collection is paginated.
type Page[T any] struct {
	Items       []T            `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalItems  int            `json:"totalItems"`
	PageSize    int            `json:"pageSize,omitempty"`
	Stats       map[string]int `json:"stats,omitempty"`
}

// Normalize fills derived pagination fields the server may omit, so that
// totalPages == ceil(totalItems/pageSize) and currentPage >= 1 always hold.
func (p *Page[T]) Normalize(requestedSize int) {
	if p.PageSize <= 0 {
		p.PageSize = requestedSize
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalItems < 0 {
		p.TotalItems = 0
	}
	if p.TotalPages < 1 {
		p.TotalPages = (p.TotalItems + p.PageSize - 1) / p.PageSize
		if p.TotalPages < 1 {
			p.TotalPages = 1
		}
	}
}

// Filters maps filter keys (category, status, search, tags, date range,
// author, ...) to values. Unset or empty keys mean no constraint; unknown
// keys are passed through to the server verbatim. Order is irrelevant.
type Filters map[string]string

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	ret := make(Filters, len(f))
	for k, v := range f {
		ret[k] = v
	}
	return ret
}

// Merge returns a copy of f shallow-merged with partial. Keys set in partial
// win; an empty value removes the constraint.
func (f Filters) Merge(partial Filters) Filters {
	ret := f.Clone()
	for k, v := range partial {
		ret[k] = v
	}
	return ret
}

// ListOptions parameterize a List or Search call.
type ListOptions struct {
	Page     int
	PageSize int
	Filters  Filters
}
