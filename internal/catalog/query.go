package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// ListParams hasil parse dari query string /api/products.
type ListParams struct {
	Limit int
	Page  int
	Sort  string // "asc" | "desc" | ""
	Query string // raw "field:value", boleh kosong
}

// ParseListParams menerima nilai mentah dari query string.
// Limit/page kosong pakai default; angka tidak valid atau <= 0 -> ValidationError.
func ParseListParams(limit, page, sort, query string) (ListParams, error) {
	p := ListParams{Limit: DefaultLimit, Page: DefaultPage, Sort: sort, Query: query}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return ListParams{}, &ValidationError{Field: "limit", Reason: "must be a positive integer"}
		}
		p.Limit = n
	}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n <= 0 {
			return ListParams{}, &ValidationError{Field: "page", Reason: "must be a positive integer"}
		}
		p.Page = n
	}
	return p, nil
}

type Filter struct {
	Category *string
	Status   *bool
}

// Filter menurunkan filter dari Query. Field yang tidak dikenal
// sengaja di-skip tanpa error (permissive, bukan strict parse).
func (p ListParams) Filter() Filter {
	var f Filter
	if p.Query == "" {
		return f
	}
	value := ""
	if _, v, ok := strings.Cut(p.Query, ":"); ok {
		value = v
	}
	switch {
	case strings.Contains(p.Query, "category"):
		f.Category = &value
	case strings.Contains(p.Query, "status"):
		status := value == "true"
		f.Status = &status
	}
	return f
}

func (p ListParams) offset() int { return (p.Page - 1) * p.Limit }

// Pagination metadata untuk response list; prev/next nil kalau tidak ada.
type Pagination struct {
	Page        int     `json:"page"`
	TotalPages  int     `json:"totalPages"`
	HasPrevPage bool    `json:"hasPrevPage"`
	HasNextPage bool    `json:"hasNextPage"`
	PrevPage    *int    `json:"prevPage"`
	NextPage    *int    `json:"nextPage"`
	PrevLink    *string `json:"prevLink"`
	NextLink    *string `json:"nextLink"`
}

// Paginate menghitung metadata dari total record yang match.
// Page di luar range tidak error: payload kosong, dua flag false.
func Paginate(p ListParams, total int, baseURL string) Pagination {
	totalPages := (total + p.Limit - 1) / p.Limit
	out := Pagination{Page: p.Page, TotalPages: totalPages}
	if p.Page > totalPages {
		return out
	}
	out.HasPrevPage = p.Page > 1
	out.HasNextPage = p.Page < totalPages
	if out.HasPrevPage {
		n := p.Page - 1
		out.PrevPage = &n
		link := pageLink(baseURL, p, n)
		out.PrevLink = &link
	}
	if out.HasNextPage {
		n := p.Page + 1
		out.NextPage = &n
		link := pageLink(baseURL, p, n)
		out.NextLink = &link
	}
	return out
}

func pageLink(baseURL string, p ListParams, page int) string {
	return fmt.Sprintf("%s/api/products?page=%d&limit=%d&sort=%s&query=%s",
		baseURL, page, p.Limit, p.Sort, url.QueryEscape(p.Query))
}
