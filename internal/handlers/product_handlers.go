package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fruitapp/internal/models"
)

// ListProducts handles GET /api/products: free-text search, status and
// price filters, attribute-option filters, sorting and pagination.
func (h *Handlers) ListProducts(c *gin.Context) {
	q, err := buildProductQuery(listParamsFromQuery(c))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	findOpts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := h.products().Find(ctx, q.Filter, findOpts)
	if err != nil {
		serverError(c, err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		serverError(c, err)
		return
	}

	// Total runs against the same filter, not the paginated window, so
	// the pages count stays accurate.
	total, err := h.products().CountDocuments(ctx, q.Filter)
	if err != nil {
		serverError(c, err)
		return
	}

	if err := h.populateAttributes(ctx, products); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(products),
		"total":   total,
		"page":    q.Page,
		"pages":   pageCount(total, q.Limit),
		"data":    products,
	})
}

// GetProduct handles GET /api/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	ctx := c.Request.Context()

	var product models.Product
	err = h.products().FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	view := []models.Product{product}
	if err := h.populateAttributes(ctx, view); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": view[0]})
}

// CreateProduct handles POST /api/products (admin).
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()

	refs, err := validateAttributeSelections(ctx, h, input.Attributes)
	if err != nil {
		respondAttributeError(c, err)
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusActive
	}

	now := time.Now()
	product := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Title:       input.Title,
		Price:       input.Price,
		Status:      status,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		Images:      emptyIfNil(input.Images),
		Videos:      emptyIfNil(input.Videos),
		Attributes:  refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.products().InsertOne(ctx, product); err != nil {
		serverError(c, err)
		return
	}

	view := []models.Product{product}
	if err := h.populateAttributes(ctx, view); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": view[0]})
}

// UpdateProduct handles PUT /api/products/:id (admin). Only whitelisted
// fields are applied; last writer wins.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()

	doc := input.Document()
	if input.Attributes != nil {
		refs, err := validateAttributeSelections(ctx, h, input.Attributes)
		if err != nil {
			respondAttributeError(c, err)
			return
		}
		doc["attributes"] = refs
	}

	if len(doc) == 0 {
		fail(c, http.StatusBadRequest, "No valid fields to update")
		return
	}
	doc["updatedAt"] = time.Now()

	result, err := h.products().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": doc})
	if err != nil {
		serverError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	var product models.Product
	if err := h.products().FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		serverError(c, err)
		return
	}
	view := []models.Product{product}
	if err := h.populateAttributes(ctx, view); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": view[0]})
}

// DeleteProduct handles DELETE /api/products/:id (admin). Media blobs the
// product references are left in storage; no reference counting exists.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	result, err := h.products().DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		serverError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

// populateAttributes joins the referenced attribute name/options into each
// product's attribute entries. One $in query covers the whole page.
// Dangling references (attribute deleted since the product was written)
// stay unpopulated.
func (h *Handlers) populateAttributes(ctx context.Context, products []models.Product) error {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, p := range products {
		for _, ref := range p.Attributes {
			idSet[ref.AttributeID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cursor, err := h.attributes().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	var attrs []models.Attribute
	if err := cursor.All(ctx, &attrs); err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*models.AttributeRef, len(attrs))
	for i := range attrs {
		byID[attrs[i].ID] = &models.AttributeRef{
			ID:      attrs[i].ID,
			Name:    attrs[i].Name,
			Options: attrs[i].Options,
		}
	}

	for pi := range products {
		for ai := range products[pi].Attributes {
			ref := &products[pi].Attributes[ai]
			ref.Attribute = byID[ref.AttributeID]
		}
	}
	return nil
}

func respondAttributeError(c *gin.Context, err error) {
	var notFound *AttributeNotFoundError
	var badOption *InvalidOptionError
	if errors.As(err, &notFound) || errors.As(err, &badOption) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	serverError(c, err)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
