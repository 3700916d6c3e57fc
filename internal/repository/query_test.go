package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() Collection {
	return Collection{
		Columns: map[string]bool{
			"first_name": true,
			"state":      true,
			"occupation": true,
			"created_at": true,
		},
	}
}

func TestBuildPlanDefaults(t *testing.T) {
	plan := buildPlan(testCollection(), url.Values{})

	assert.Equal(t, 1, plan.page)
	assert.Equal(t, 10, plan.limit)
	assert.Equal(t, 0, plan.offset)
	assert.Equal(t, "created_at DESC", plan.orderBy)
	assert.Empty(t, plan.filters)
	assert.Empty(t, plan.selects)
}

func TestBuildPlanFilters(t *testing.T) {
	t.Run("equality filter", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{"state": {"Lagos"}})

		require.Len(t, plan.filters, 1)
		assert.Equal(t, filter{column: "state", op: "=", value: "Lagos"}, plan.filters[0])
	})

	t.Run("operator prefixes", func(t *testing.T) {
		tests := []struct {
			raw string
			op  string
			val string
		}{
			{"gt:5", ">", "5"},
			{"gte:5", ">=", "5"},
			{"lt:5", "<", "5"},
			{"lte:5", "<=", "5"},
			{"ne:Lagos", "<>", "Lagos"},
		}
		for _, tt := range tests {
			plan := buildPlan(testCollection(), url.Values{"state": {tt.raw}})
			require.Len(t, plan.filters, 1, tt.raw)
			assert.Equal(t, tt.op, plan.filters[0].op)
			assert.Equal(t, tt.val, plan.filters[0].value)
		}
	})

	t.Run("unknown column dropped", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{"password_hash": {"x"}, "state": {"Abuja"}})

		require.Len(t, plan.filters, 1)
		assert.Equal(t, "state", plan.filters[0].column)
	})

	t.Run("scoped column cannot be overridden", func(t *testing.T) {
		col := testCollection()
		col.Columns["memberships"] = true
		col.ScopedColumns = map[string]bool{"memberships": true}

		plan := buildPlan(col, url.Values{"memberships": {"someone-elses-org"}})
		assert.Empty(t, plan.filters)
	})

	t.Run("reserved keys are not filters", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{
			"select": {"state"},
			"sort":   {"state"},
			"page":   {"2"},
			"limit":  {"5"},
		})
		assert.Empty(t, plan.filters)
	})
}

func TestBuildPlanSelect(t *testing.T) {
	plan := buildPlan(testCollection(), url.Values{"select": {"first_name, state,secret_column"}})

	assert.Equal(t, []string{"first_name", "state"}, plan.selects)
}

func TestBuildPlanSort(t *testing.T) {
	t.Run("ascending and descending", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{"sort": {"state,-created_at"}})
		assert.Equal(t, "state ASC, created_at DESC", plan.orderBy)
	})

	t.Run("unknown sort field keeps default", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{"sort": {"no_such_column"}})
		assert.Equal(t, "created_at DESC", plan.orderBy)
	})
}

func TestBuildPlanPaging(t *testing.T) {
	t.Run("page and limit", func(t *testing.T) {
		plan := buildPlan(testCollection(), url.Values{"page": {"3"}, "limit": {"25"}})
		assert.Equal(t, 3, plan.page)
		assert.Equal(t, 25, plan.limit)
		assert.Equal(t, 50, plan.offset)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		for _, bad := range []string{"0", "-1", "abc", ""} {
			plan := buildPlan(testCollection(), url.Values{"page": {bad}, "limit": {bad}})
			assert.Equal(t, 1, plan.page, bad)
			assert.Equal(t, 10, plan.limit, bad)
		}
	})
}

func TestPaginate(t *testing.T) {
	t.Run("first page of 25 items", func(t *testing.T) {
		p := paginate(1, 10, 25)
		require.NotNil(t, p.Next)
		assert.Equal(t, Page{Page: 2, Limit: 10}, *p.Next)
		assert.Nil(t, p.Prev)
	})

	t.Run("middle page has both markers", func(t *testing.T) {
		p := paginate(2, 10, 25)
		require.NotNil(t, p.Next)
		require.NotNil(t, p.Prev)
		assert.Equal(t, Page{Page: 3, Limit: 10}, *p.Next)
		assert.Equal(t, Page{Page: 1, Limit: 10}, *p.Prev)
	})

	t.Run("last page of 25 items", func(t *testing.T) {
		p := paginate(3, 10, 25)
		assert.Nil(t, p.Next)
		require.NotNil(t, p.Prev)
		assert.Equal(t, Page{Page: 2, Limit: 10}, *p.Prev)
	})

	t.Run("single page collection", func(t *testing.T) {
		p := paginate(1, 10, 7)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Prev)
	})

	t.Run("exact boundary", func(t *testing.T) {
		p := paginate(2, 10, 20)
		assert.Nil(t, p.Next)
		require.NotNil(t, p.Prev)
	})
}
