package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductQueryDefaults(t *testing.T) {
	q, err := buildProductQuery(productListParams{})
	require.NoError(t, err)

	assert.Empty(t, q.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(10), q.Limit)
	assert.Equal(t, 1, q.Page)
}

func TestBuildProductQuerySearch(t *testing.T) {
	q, err := buildProductQuery(productListParams{Search: "apple"})
	require.NoError(t, err)

	or, ok := q.Filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, "apple", re.Pattern)
	assert.Equal(t, "i", re.Options)
	assert.Contains(t, or[1].(bson.M), "title")
}

func TestBuildProductQuerySearchEscapesRegex(t *testing.T) {
	q, err := buildProductQuery(productListParams{Search: "a.b*"})
	require.NoError(t, err)

	or := q.Filter["$or"].(bson.A)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\*`, re.Pattern)
}

func TestBuildProductQueryStatus(t *testing.T) {
	q, err := buildProductQuery(productListParams{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", q.Filter["status"])
}

func TestBuildProductQueryPriceRange(t *testing.T) {
	q, err := buildProductQuery(productListParams{MinPrice: "1.5", MaxPrice: "9"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$gte": 1.5, "$lte": 9.0}, q.Filter["price"])

	q, err = buildProductQuery(productListParams{MinPrice: "2"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$gte": 2.0}, q.Filter["price"])

	q, err = buildProductQuery(productListParams{MaxPrice: "7"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$lte": 7.0}, q.Filter["price"])
}

func TestBuildProductQueryBadPrice(t *testing.T) {
	_, err := buildProductQuery(productListParams{MinPrice: "cheap"})
	require.Error(t, err)
	var iq *InvalidQueryError
	require.ErrorAs(t, err, &iq)
	assert.Equal(t, "minPrice", iq.Param)

	_, err = buildProductQuery(productListParams{MaxPrice: "x"})
	require.ErrorAs(t, err, &iq)
	assert.Equal(t, "maxPrice", iq.Param)
}

func TestBuildProductQueryAttributes(t *testing.T) {
	q, err := buildProductQuery(productListParams{Attributes: `["red","blue"]`})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$in": []string{"red", "blue"}}, q.Filter["attributes.selectedOptions"])
}

func TestBuildProductQueryAttributesEmptyList(t *testing.T) {
	q, err := buildProductQuery(productListParams{Attributes: `[]`})
	require.NoError(t, err)
	assert.NotContains(t, q.Filter, "attributes.selectedOptions")
}

func TestBuildProductQueryAttributesMalformed(t *testing.T) {
	_, err := buildProductQuery(productListParams{Attributes: `red,blue`})
	var iq *InvalidQueryError
	require.ErrorAs(t, err, &iq)
	assert.Equal(t, "attributes", iq.Param)
}

func TestBuildProductQuerySort(t *testing.T) {
	cases := map[string]bson.D{
		"price-high": {{Key: "price", Value: -1}},
		"price-low":  {{Key: "price", Value: 1}},
		"name":       {{Key: "name", Value: 1}},
		"newest":     {{Key: "createdAt", Value: -1}},
		"bogus":      {{Key: "createdAt", Value: -1}},
		"":           {{Key: "createdAt", Value: -1}},
	}
	for sortBy, want := range cases {
		q, err := buildProductQuery(productListParams{SortBy: sortBy})
		require.NoError(t, err, sortBy)
		assert.Equal(t, want, q.Sort, sortBy)
	}
}

func TestBuildProductQueryPagination(t *testing.T) {
	q, err := buildProductQuery(productListParams{Page: "3", Limit: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), q.Skip)
	assert.Equal(t, int64(2), q.Limit)
	assert.Equal(t, 3, q.Page)
}

func TestBuildProductQueryPaginationFallsBack(t *testing.T) {
	for _, params := range []productListParams{
		{Page: "abc", Limit: "xyz"},
		{Page: "0", Limit: "-5"},
	} {
		q, err := buildProductQuery(params)
		require.NoError(t, err)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, int64(10), q.Limit)
		assert.Equal(t, int64(0), q.Skip)
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, int64(0), pageCount(0, 10))
	assert.Equal(t, int64(1), pageCount(1, 10))
	assert.Equal(t, int64(1), pageCount(10, 10))
	assert.Equal(t, int64(2), pageCount(11, 10))
	assert.Equal(t, int64(3), pageCount(5, 2))
	assert.Equal(t, int64(0), pageCount(5, 0))
}
