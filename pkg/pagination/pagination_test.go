package pagination

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"negative page", "page=-1", 1, 20, 0},
		{"zero limit", "limit=0", 1, 20, 0},
		{"limit capped", "limit=500", 1, 100, 0},
		{"garbage", "page=abc&limit=xyz", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(testContext(tt.query))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPagination(Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestQueryValues(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	q := Query{Page: 2, Limit: 50, Search: "roti", Status: "ACTIVE", From: &from, To: &to}

	v := q.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "50", v.Get("limit"))
	assert.Equal(t, "roti", v.Get("search"))
	assert.Equal(t, "ACTIVE", v.Get("status"))
	assert.Equal(t, "2024-06-01T00:00:00Z", v.Get("from"))
	assert.Equal(t, "2024-07-01T00:00:00Z", v.Get("to"))

	assert.Empty(t, Query{}.Values())
}

type item struct {
	Name string `json:"name"`
}

func TestNormalizeListFlat(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"name":"a"},{"name":"b"}],"pagination":{"page":1,"limit":20,"total":2,"total_pages":1}}`)
	out, err := NormalizeList[item](raw)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "a", out.Items[0].Name)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, int64(2), out.Pagination.Total)
}

func TestNormalizeListDoubleNested(t *testing.T) {
	raw := json.RawMessage(`{"data":{"data":[{"name":"x"}],"pagination":{"page":1,"limit":20,"total":1,"total_pages":1}}}`)
	out, err := NormalizeList[item](raw)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "x", out.Items[0].Name)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, int64(1), out.Pagination.Total)
}

func TestNormalizeListBareArray(t *testing.T) {
	out, err := NormalizeList[item](json.RawMessage(`[{"name":"solo"}]`))
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Nil(t, out.Pagination)
}

func TestNormalizeListEmpty(t *testing.T) {
	out, err := NormalizeList[item](nil)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Nil(t, out.Pagination)
}

func TestNormalizeListMalformed(t *testing.T) {
	_, err := NormalizeList[item](json.RawMessage(`{"data":"not-a-list"}`))
	assert.Error(t, err)
}
