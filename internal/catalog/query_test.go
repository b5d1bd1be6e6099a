package catalog

import (
	"errors"
	"testing"
)

func TestParseListParamsDefaults(t *testing.T) {
	p, err := ParseListParams("", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Limit != 10 || p.Page != 1 {
		t.Fatalf("expected defaults limit=10 page=1, got limit=%d page=%d", p.Limit, p.Page)
	}
	if p.Sort != "" || p.Query != "" {
		t.Fatalf("expected empty sort/query, got %q %q", p.Sort, p.Query)
	}
}

func TestParseListParamsValidation(t *testing.T) {
	cases := []struct {
		name        string
		limit, page string
	}{
		{"limit not a number", "abc", "1"},
		{"limit zero", "0", "1"},
		{"limit negative", "-5", "1"},
		{"page not a number", "10", "x"},
		{"page zero", "10", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseListParams(tc.limit, tc.page, "", "")
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestFilterCategory(t *testing.T) {
	p, _ := ParseListParams("", "", "", "category:shoes")
	f := p.Filter()
	if f.Category == nil || *f.Category != "shoes" {
		t.Fatalf("expected category filter shoes, got %+v", f)
	}
	if f.Status != nil {
		t.Fatalf("status filter should be unset, got %+v", f)
	}
}

func TestFilterStatus(t *testing.T) {
	p, _ := ParseListParams("", "", "", "status:true")
	f := p.Filter()
	if f.Status == nil || *f.Status != true {
		t.Fatalf("expected status=true filter, got %+v", f)
	}

	// perbandingan case-sensitive dengan literal "true"; nilai lain = false
	for _, q := range []string{"status:True", "status:false", "status:1", "status:"} {
		p, _ := ParseListParams("", "", "", q)
		f := p.Filter()
		if f.Status == nil || *f.Status != false {
			t.Fatalf("query %q: expected status=false filter, got %+v", q, f)
		}
	}
}

func TestFilterUnknownFieldPassThrough(t *testing.T) {
	for _, q := range []string{"brand:nike", "price:10", "garbage"} {
		p, _ := ParseListParams("", "", "", q)
		f := p.Filter()
		if f.Category != nil || f.Status != nil {
			t.Fatalf("query %q: expected no filter, got %+v", q, f)
		}
	}
}

func TestPaginateFlags(t *testing.T) {
	// total 25, limit 10 -> 3 halaman
	p := ListParams{Limit: 10, Page: 2, Sort: "asc", Query: "category:shoes"}
	pg := Paginate(p, 25, "http://localhost:8080")

	if pg.TotalPages != 3 {
		t.Fatalf("expected totalPages=3, got %d", pg.TotalPages)
	}
	if !pg.HasPrevPage || !pg.HasNextPage {
		t.Fatalf("page 2 of 3 should have prev and next, got %+v", pg)
	}
	if pg.PrevPage == nil || *pg.PrevPage != 1 || pg.NextPage == nil || *pg.NextPage != 3 {
		t.Fatalf("expected prev=1 next=3, got %+v", pg)
	}
}

func TestPaginateHasNextIffPageBeforeLast(t *testing.T) {
	for page := 1; page <= 5; page++ {
		p := ListParams{Limit: 10, Page: page}
		pg := Paginate(p, 41, "") // 5 halaman
		wantNext := page < 5
		if pg.HasNextPage != wantNext {
			t.Fatalf("page %d: hasNextPage=%v, want %v", page, pg.HasNextPage, wantNext)
		}
		if pg.HasPrevPage != (page > 1) {
			t.Fatalf("page %d: hasPrevPage=%v", page, pg.HasPrevPage)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	p := ListParams{Limit: 10, Page: 9}
	pg := Paginate(p, 25, "")
	if pg.HasPrevPage || pg.HasNextPage {
		t.Fatalf("out-of-range page should have both flags false, got %+v", pg)
	}
	if pg.PrevPage != nil || pg.NextPage != nil || pg.PrevLink != nil || pg.NextLink != nil {
		t.Fatalf("out-of-range page should have nil prev/next, got %+v", pg)
	}
}

func TestPaginateEmptyCatalog(t *testing.T) {
	p := ListParams{Limit: 10, Page: 1}
	pg := Paginate(p, 0, "")
	if pg.TotalPages != 0 || pg.HasPrevPage || pg.HasNextPage {
		t.Fatalf("empty catalog: got %+v", pg)
	}
}

func TestPaginateLinksRebuildQuery(t *testing.T) {
	p := ListParams{Limit: 5, Page: 2, Sort: "desc", Query: "category:shoes"}
	pg := Paginate(p, 20, "http://localhost:8080")

	wantPrev := "http://localhost:8080/api/products?page=1&limit=5&sort=desc&query=category%3Ashoes"
	wantNext := "http://localhost:8080/api/products?page=3&limit=5&sort=desc&query=category%3Ashoes"
	if pg.PrevLink == nil || *pg.PrevLink != wantPrev {
		t.Fatalf("prevLink = %v, want %s", pg.PrevLink, wantPrev)
	}
	if pg.NextLink == nil || *pg.NextLink != wantNext {
		t.Fatalf("nextLink = %v, want %s", pg.NextLink, wantNext)
	}
}

func TestPaginateSinglePage(t *testing.T) {
	p := ListParams{Limit: 10, Page: 1, Query: "category:shoes"}
	pg := Paginate(p, 1, "")
	if pg.TotalPages != 1 || pg.HasNextPage || pg.HasPrevPage {
		t.Fatalf("single page: got %+v", pg)
	}
}
