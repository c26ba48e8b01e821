package utils_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"arabianx/utils"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "", 0, 20},
		{"first page explicit", "page=1&limit=10", 0, 10},
		{"second page", "page=2&limit=10", 10, 10},
		{"deep page", "page=5&limit=25", 100, 25},
		{"limit clamped to max", "limit=5000", 0, 100},
		{"zero page treated as first", "page=0", 0, 20},
		{"negative page treated as first", "page=-3", 0, 20},
		{"zero limit falls back to default", "limit=0", 0, 20},
		{"non-numeric values fall back", "page=abc&limit=xyz", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/orders?"+tt.query, nil)
			skip, limit := utils.ParsePagination(req, 20, 100)
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)",
					tt.query, skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	id := utils.GenerateID("o")
	if !strings.HasPrefix(id, "o") {
		t.Errorf("id %q missing prefix", id)
	}
	if len(id) != 13 {
		t.Errorf("id %q length = %d, want 13", id, len(id))
	}
	if id == utils.GenerateID("o") {
		t.Error("two generated ids collided")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "perfume.jpg", "perfume.jpg"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"spaces replaced", "my photo.png", "my_photo.png"},
		{"unicode replaced", "ámbar#1.png", "_mbar_1.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
