package listing

import (
	"reflect"
	"strings"
	"testing"

	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    *model.ListingFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no constraints beyond active status",
			filter:    &model.ListingFilter{},
			wantWhere: "",
			wantArgs:  []any{"active"},
		},
		{
			name:      "category all is treated as no constraint",
			filter:    &model.ListingFilter{Category: constant.CategoryAll},
			wantWhere: "",
			wantArgs:  []any{"active"},
		},
		{
			name:      "category constraint",
			filter:    &model.ListingFilter{Category: "vehicles"},
			wantWhere: " AND l.category = ?",
			wantArgs:  []any{"active", "vehicles"},
		},
		{
			name: "full filter",
			filter: &model.ListingFilter{
				Category:      "vehicles",
				GovernorateID: 3,
				DistrictID:    14,
				PriceMin:      1_000_000,
				PriceMax:      5_000_000,
				FeaturedOnly:  true,
			},
			wantWhere: " AND l.category = ? AND l.governorate_id = ? AND l.district_id = ? AND l.price >= ? AND l.price <= ? AND l.is_featured = ?",
			wantArgs:  []any{"active", "vehicles", uint64(3), uint64(14), float64(1_000_000), float64(5_000_000), true},
		},
		{
			name:      "zero minimum adds no lower bound",
			filter:    &model.ListingFilter{PriceMin: 0, PriceMax: 100},
			wantWhere: " AND l.price <= ?",
			wantArgs:  []any{"active", float64(100)},
		},
		{
			name:      "zero maximum adds no upper bound",
			filter:    &model.ListingFilter{PriceMin: 50},
			wantWhere: " AND l.price >= ?",
			wantArgs:  []any{"active", float64(50)},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildSearchQuery(tt.filter)
			if where != tt.wantWhere {
				t.Fatalf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		sortBy constant.SortKey
		want   string
	}{
		{name: "newest", sortBy: constant.SortNewest, want: " ORDER BY l.created_at DESC"},
		{name: "oldest", sortBy: constant.SortOldest, want: " ORDER BY l.created_at ASC"},
		{name: "price ascending", sortBy: constant.SortPriceAsc, want: " ORDER BY l.price ASC"},
		{name: "price descending", sortBy: constant.SortPriceDesc, want: " ORDER BY l.price DESC"},
		{name: "most viewed", sortBy: constant.SortMostViewed, want: " ORDER BY l.views DESC"},
		{name: "unknown falls back to newest", sortBy: constant.SortKey("bogus"), want: " ORDER BY l.created_at DESC"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.sortBy); got != tt.want {
				t.Fatalf("orderClause(%s) = %q, want %q", tt.sortBy, got, tt.want)
			}
		})
	}
}

func TestInsertListingQueryEscapesCondition(t *testing.T) {
	// condition is a reserved word in MySQL 8; the insert must backtick it
	if !strings.Contains(insertListingQuery, "`condition`") {
		t.Fatal("insertListingQuery must backtick the condition column")
	}
}
