package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery(t *testing.T) {
	repo := NewSchoolRepository(nil)

	tests := []struct {
		name     string
		filters  SchoolSearchFilters
		wantSQL  []string
		wantArgs []interface{}
	}{
		{
			name:    "no filters still restricts to active schools",
			filters: SchoolSearchFilters{},
			wantSQL: []string{"is_active = $1"},
			wantArgs: []interface{}{
				true,
			},
		},
		{
			name:    "query matches name or district",
			filters: SchoolSearchFilters{Query: "Gayaza"},
			wantSQL: []string{"is_active = $1", "name ILIKE $2 OR district ILIKE $3"},
			wantArgs: []interface{}{
				true, "%Gayaza%", "%Gayaza%",
			},
		},
		{
			name: "district region and category",
			filters: SchoolSearchFilters{
				District: "Wakiso",
				Region:   "Central",
				Category: "Government",
			},
			wantSQL: []string{"district ILIKE $2", "region = $3", "category = $4"},
			wantArgs: []interface{}{
				true, "Wakiso", "Central", "Government",
			},
		},
		{
			name:    "boarding synonym expands to type set",
			filters: SchoolSearchFilters{Types: []string{"Boarding", "Mixed"}},
			wantSQL: []string{"type IN ($2,$3)"},
			wantArgs: []interface{}{
				true, "Boarding", "Mixed",
			},
		},
		{
			name:    "curriculum uses array containment",
			filters: SchoolSearchFilters{Curriculum: "UACE"},
			wantSQL: []string{"curriculum @> ARRAY[$2]::text[]"},
			wantArgs: []interface{}{
				true, "UACE",
			},
		},
		{
			name:    "max tuition caps day tuition only",
			filters: SchoolSearchFilters{MaxTuition: 1500000},
			wantSQL: []string{"tuition_day <= $2"},
			wantArgs: []interface{}{
				true, 1500000.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.buildSearchQuery(tt.filters).Columns("id").ToSql()
			require.NoError(t, err)
			for _, fragment := range tt.wantSQL {
				assert.Contains(t, sql, fragment)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSearchOrderClause(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"name", "asc", "name ASC"},
		{"name", "desc", "name DESC"},
		{"performance", "asc", "(performance->'uce'->>'div1Count')::int ASC NULLS LAST"},
		{"performance", "desc", "(performance->'uce'->>'div1Count')::int DESC NULLS LAST"},
		{"tuition", "asc", "tuition_day ASC NULLS LAST"},
		{"tuition", "desc", "tuition_day DESC NULLS LAST"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+" "+tt.sortOrder, func(t *testing.T) {
			assert.Equal(t, tt.want, searchOrderClause(tt.sortBy, tt.sortOrder))
		})
	}
}
