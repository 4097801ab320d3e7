package handlers

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fruitapp/internal/models"
)

// attributeFinder resolves an attribute id to its definition. A (nil, nil)
// return means the attribute does not exist.
type attributeFinder interface {
	FindAttribute(ctx context.Context, id primitive.ObjectID) (*models.Attribute, error)
}

// FindAttribute implements attributeFinder against the attributes
// collection.
func (h *Handlers) FindAttribute(ctx context.Context, id primitive.ObjectID) (*models.Attribute, error) {
	var attr models.Attribute
	err := h.attributes().FindOne(ctx, bson.M{"_id": id}).Decode(&attr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// validateAttributeSelections checks every attribute reference in a
// product payload: the attribute must exist and every selected option must
// be a member of its allowed set. It short-circuits on the first failure
// and returns the references in their stored form on success.
func validateAttributeSelections(ctx context.Context, finder attributeFinder, refs []models.ProductAttributeInput) ([]models.ProductAttribute, error) {
	out := make([]models.ProductAttribute, 0, len(refs))

	for _, ref := range refs {
		id, err := primitive.ObjectIDFromHex(ref.AttributeID)
		if err != nil {
			return nil, &AttributeNotFoundError{ID: ref.AttributeID}
		}

		attr, err := finder.FindAttribute(ctx, id)
		if err != nil {
			return nil, err
		}
		if attr == nil {
			return nil, &AttributeNotFoundError{ID: ref.AttributeID}
		}

		for _, opt := range ref.SelectedOptions {
			if !attr.HasOption(opt) {
				return nil, &InvalidOptionError{Attribute: attr.Name, Option: opt}
			}
		}

		out = append(out, models.ProductAttribute{
			AttributeID:     id,
			SelectedOptions: ref.SelectedOptions,
		})
	}

	return out, nil
}
