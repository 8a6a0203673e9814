// Package pagination holds the page-math shared by every list endpoint.
package pagination

import "strconv"

const (
	DefaultLimit = 6
	MaxLimit     = 50
)

type Params struct {
	Limit  int
	Skip   int
	Filter string
}

// ParseParams reads raw query values, falling back to defaults on anything
// that does not parse. Clamping happens in Normalize.
func ParseParams(limit, skip, filter string) Params {
	p := Params{Limit: DefaultLimit, Filter: filter}
	if n, err := strconv.Atoi(limit); err == nil {
		p.Limit = n
	}
	if n, err := strconv.Atoi(skip); err == nil {
		p.Skip = n
	}
	return p.Normalize()
}

// Normalize clamps the limit to [1, MaxLimit] and the skip to >= 0.
func (p Params) Normalize() Params {
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	return p
}

type Meta struct {
	Total       int64  `json:"total"`
	Page        int    `json:"page"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
	Limit       int    `json:"limit"`
	Skip        int    `json:"skip"`
	Filter      string `json:"filter,omitempty"`
}

// NewMeta derives page metadata from a total match count and the request
// parameters. TotalPages is never below 1, even for an empty result.
func NewMeta(total int64, p Params) Meta {
	p = p.Normalize()

	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Skip/p.Limit + 1

	return Meta{
		Total:       total,
		Page:        page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		Limit:       p.Limit,
		Skip:        p.Skip,
		Filter:      p.Filter,
	}
}
