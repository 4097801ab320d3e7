package handlers

import (
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

// ListAttributes handles GET /api/attributes, newest first.
func (h *Handlers) ListAttributes(c *gin.Context) {
	ctx := c.Request.Context()

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.attributes().Find(ctx, bson.M{}, findOpts)
	if err != nil {
		serverError(c, err)
		return
	}

	attributes := []models.Attribute{}
	if err := cursor.All(ctx, &attributes); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(attributes),
		"data":    attributes,
	})
}

// GetAttribute handles GET /api/attributes/:id.
func (h *Handlers) GetAttribute(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}

	var attribute models.Attribute
	err = h.attributes().FindOne(c.Request.Context(), bson.M{"_id": objID}).Decode(&attribute)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": attribute})
}

// CreateAttribute handles POST /api/attributes (admin). The name must not
// collide with an existing attribute; the unique index backstops the
// pre-check under concurrent creates.
func (h *Handlers) CreateAttribute(c *gin.Context) {
	var input models.CreateAttributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()

	count, err := h.attributes().CountDocuments(ctx, bson.M{"name": input.Name})
	if err != nil {
		serverError(c, err)
		return
	}
	if count > 0 {
		fail(c, http.StatusBadRequest, "Attribute with this name already exists")
		return
	}

	now := time.Now()
	attribute := models.Attribute{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Options:   input.Options,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.attributes().InsertOne(ctx, attribute); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			fail(c, http.StatusBadRequest, "Attribute with this name already exists")
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": attribute})
}

// UpdateAttribute handles PUT /api/attributes/:id (admin). Changing the
// options does not re-validate products that already selected from the old
// set; their selections go stale.
func (h *Handlers) UpdateAttribute(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}

	var input models.UpdateAttributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()

	var existing models.Attribute
	err = h.attributes().FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	if input.Name != nil && *input.Name != existing.Name {
		count, err := h.attributes().CountDocuments(ctx, bson.M{"name": *input.Name})
		if err != nil {
			serverError(c, err)
			return
		}
		if count > 0 {
			fail(c, http.StatusBadRequest, "Attribute with this name already exists")
			return
		}
	}

	doc := input.Document()
	if len(doc) == 0 {
		fail(c, http.StatusBadRequest, "No valid fields to update")
		return
	}
	doc["updatedAt"] = time.Now()

	if _, err := h.attributes().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": doc}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			fail(c, http.StatusBadRequest, "Attribute with this name already exists")
			return
		}
		serverError(c, err)
		return
	}

	var attribute models.Attribute
	if err := h.attributes().FindOne(ctx, bson.M{"_id": objID}).Decode(&attribute); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": attribute})
}

// DeleteAttribute handles DELETE /api/attributes/:id (admin). The delete
// is unconditional: products referencing this attribute keep a dangling
// reference that simply stops resolving at read time.
func (h *Handlers) DeleteAttribute(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}

	result, err := h.attributes().DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		serverError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		fail(c, http.StatusNotFound, "Attribute not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attribute deleted successfully"})
}
