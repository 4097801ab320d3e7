package handlers

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// productListParams carries the raw, untrusted query string values of a
// product list request.
type productListParams struct {
	Search     string
	Status     string
	MinPrice   string
	MaxPrice   string
	Attributes string
	SortBy     string
	Page       string
	Limit      string
}

func listParamsFromQuery(c *gin.Context) productListParams {
	return productListParams{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		Attributes: c.Query("attributes"),
		SortBy:     c.Query("sortBy"),
		Page:       c.Query("page"),
		Limit:      c.Query("limit"),
	}
}

// productQuery is the validated result: a filter document, a sort order
// and a pagination window, plus the echoed page so callers can compute
// pages = ceil(total/limit).
type productQuery struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
	Page   int
}

// buildProductQuery translates untrusted list parameters into a structured
// query. Bad price bounds and malformed attribute filters are rejected;
// bad page/limit/sort values silently fall back to defaults.
func buildProductQuery(p productListParams) (productQuery, error) {
	filter := bson.M{}

	if p.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"title": re},
		}
	}

	if p.Status != "" {
		filter["status"] = p.Status
	}

	if p.MinPrice != "" || p.MaxPrice != "" {
		price := bson.M{}
		if p.MinPrice != "" {
			min, err := strconv.ParseFloat(p.MinPrice, 64)
			if err != nil {
				return productQuery{}, &InvalidQueryError{Param: "minPrice", Reason: "must be a number"}
			}
			price["$gte"] = min
		}
		if p.MaxPrice != "" {
			max, err := strconv.ParseFloat(p.MaxPrice, 64)
			if err != nil {
				return productQuery{}, &InvalidQueryError{Param: "maxPrice", Reason: "must be a number"}
			}
			price["$lte"] = max
		}
		filter["price"] = price
	}

	if p.Attributes != "" {
		var opts []string
		if err := json.Unmarshal([]byte(p.Attributes), &opts); err != nil {
			return productQuery{}, &InvalidQueryError{Param: "attributes", Reason: "must be a JSON array of option strings"}
		}
		if len(opts) > 0 {
			// Flat set semantics: a product matches when any of its
			// selected options, under any attribute, is in the list.
			filter["attributes.selectedOptions"] = bson.M{"$in": opts}
		}
	}

	var sort bson.D
	switch p.SortBy {
	case "price-high":
		sort = bson.D{{Key: "price", Value: -1}}
	case "price-low":
		sort = bson.D{{Key: "price", Value: 1}}
	case "name":
		sort = bson.D{{Key: "name", Value: 1}}
	default:
		// "newest" and anything unrecognized.
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	page := positiveIntOr(p.Page, defaultPage)
	limit := positiveIntOr(p.Limit, defaultLimit)

	return productQuery{
		Filter: filter,
		Sort:   sort,
		Skip:   int64((page - 1) * limit),
		Limit:  int64(limit),
		Page:   page,
	}, nil
}

func positiveIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// pageCount computes ceil(total/limit) for the response envelope.
func pageCount(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
