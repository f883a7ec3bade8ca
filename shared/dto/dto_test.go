package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"homestay/shared/dto"
	"homestay/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	var m dto.Metadata
	m.FromModel(model.NewMetadata(created, "guest-1"))

	assert.Equal(t, "2025-01-10T08:00:00Z", m.CreatedAt)
	assert.Equal(t, "2025-01-10T08:00:00Z", m.ModifiedAt)
	assert.Equal(t, "guest-1", m.CreatedBy)
	assert.Equal(t, "guest-1", m.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		defaults bool
		expected dto.QueryParams
	}{
		{name: "all parameters", query: "?page=2&limit=20&sort_by=check_in&sort_dir=asc", expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: "ASC"}},
		{name: "defaults applied", query: "", defaults: true, expected: dto.QueryParams{Page: 1, Limit: 10}},
		{name: "invalid numbers ignored", query: "?page=-1&limit=abc", expected: dto.QueryParams{}},
		{name: "bad direction ignored", query: "?sort_by=total&sort_dir=sideways", expected: dto.QueryParams{SortBy: "total"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings"+tt.query, nil)

			var q dto.QueryParams
			q.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestQueryParams_AllowSort(t *testing.T) {
	q := dto.QueryParams{SortBy: "check_in; DROP TABLE bookings", SortDir: dto.SortDirDesc}
	q.AllowSort("check_in", "created_at")
	assert.Empty(t, q.SortBy)
	assert.Empty(t, q.SortDir)

	q = dto.QueryParams{SortBy: "check_in"}
	q.AllowSort("check_in", "created_at")
	assert.Equal(t, "check_in", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Eq("property_id", "p-1"),
		dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
		dto.Filter{Field: "check_in", ArgName: "range_out", Value: "2025-01-12", Operator: dto.FilterOperatorLess},
		dto.Filter{Field: "check_out", ArgName: "range_in", Value: "2025-01-10", Operator: dto.FilterOperatorGreater},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(property_id = :property_id AND status IN (:status_0, :status_1)  AND check_in < :range_out AND check_out > :range_in)", where)
	assert.Equal(t, map[string]any{
		"property_id": "p-1",
		"status_0":    "pending",
		"status_1":    "confirmed",
		"range_out":   "2025-01-12",
		"range_in":    "2025-01-10",
	}, args)
}

func TestFilter_TableQualifiedAndNull(t *testing.T) {
	f := dto.Filter{Table: "bookings", Field: "intent_id", Operator: dto.FilterIsNull}
	where, args := f.GetWhereClause()

	assert.Equal(t, "bookings.intent_id IS NULL", where)
	assert.Empty(t, args)

	unknown := dto.Filter{Field: "x", Operator: "between"}
	where, _ = unknown.GetWhereClause()
	assert.Empty(t, where)
}
