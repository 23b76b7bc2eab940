package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page       int64
		limit      int64
		wantOffset int64
		wantLimit  int64
	}{
		{"first page default limit", 1, 10, 0, 10},
		{"third page", 3, 25, 50, 25},
		{"zero page falls back", 0, 10, 0, 10},
		{"negative page falls back", -4, 10, 0, 10},
		{"zero limit falls back", 2, 0, 10, 10},
		{"oversized limit falls back", 1, 5000, 0, 10},
		{"page beyond cap is clamped", MaxPage + 100, 100, (MaxPage - 1) * 100, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.limit)
			if offset != tc.wantOffset || limit != tc.wantLimit {
				t.Fatalf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, offset, limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestParseListParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		target    string
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", "/students", 1, 10},
		{"explicit", "/students?page=3&limit=25", 3, 25},
		{"garbage falls back", "/students?page=abc&limit=xyz", 1, 10},
		{"negative falls back", "/students?page=-1&limit=-5", 1, 10},
		{"oversized limit falls back", "/students?limit=100000", 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tc.target, nil)

			page, limit := ParseListParams(c)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("ParseListParams(%q) = (%d, %d), want (%d, %d)",
					tc.target, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}
