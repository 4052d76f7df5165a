package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Page
	}{
		{name: "defaults", query: "", want: Page{Page: 1, PageSize: 20}},
		{name: "explicit", query: "?page=3&page_size=5", want: Page{Page: 3, PageSize: 5}},
		{name: "clamped page size", query: "?page_size=500", want: Page{Page: 1, PageSize: MaxPageSize}},
		{name: "invalid values", query: "?page=0&page_size=abc", want: Page{Page: 1, PageSize: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/calendar/guilds/5/events"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestPage_Slice(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		total      int
		start, end int
	}{
		{name: "first page", page: Page{Page: 1, PageSize: 2}, total: 5, start: 0, end: 2},
		{name: "last partial page", page: Page{Page: 3, PageSize: 2}, total: 5, start: 4, end: 5},
		{name: "past the end", page: Page{Page: 9, PageSize: 2}, total: 5, start: 5, end: 5},
		{name: "empty list", page: Page{Page: 1, PageSize: 20}, total: 0, start: 0, end: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.page.Slice(tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}, NewPaginationMeta(Page{Page: 2, PageSize: 2}, 5))
	assert.Equal(t, 0, NewPaginationMeta(Page{}, 5).TotalPages)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    uint64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/calendar/events/"+tt.value, nil)
			r.SetPathValue("eventID", tt.value)
			got, err := PathID(r, "eventID")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
