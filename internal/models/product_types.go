package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// AttributeRef is the display-time projection of a referenced Attribute,
// joined into product reads. It is never stored on the product document.
type AttributeRef struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Options []string           `json:"options" bson:"options"`
}

// ProductAttribute links a product to an Attribute by id together with the
// options the product selected from that attribute's allowed set. The
// reference is weak: deleting the attribute leaves it dangling.
type ProductAttribute struct {
	AttributeID     primitive.ObjectID `json:"attributeId" bson:"attribute"`
	SelectedOptions []string           `json:"selectedOptions" bson:"selectedOptions"`

	// Populated on reads only.
	Attribute *AttributeRef `json:"attribute,omitempty" bson:"-"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Title       string             `json:"title" bson:"title"`
	Price       float64            `json:"price" bson:"price"`
	Status      string             `json:"status" bson:"status"`
	PhoneNumber string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Images      []string           `json:"images" bson:"images"`
	Videos      []string           `json:"videos" bson:"videos"`
	Attributes  []ProductAttribute `json:"attributes" bson:"attributes"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ProductAttributeInput struct {
	AttributeID     string   `json:"attributeId" binding:"required"`
	SelectedOptions []string `json:"selectedOptions" binding:"required,min=1,dive,required"`
}

type CreateProductInput struct {
	Name        string                  `json:"name" binding:"required,max=100"`
	Title       string                  `json:"title" binding:"required,max=200"`
	Price       float64                 `json:"price" binding:"gte=0"`
	Status      string                  `json:"status" binding:"omitempty,oneof=active inactive"`
	PhoneNumber string                  `json:"phoneNumber" binding:"omitempty,phone"`
	Address     string                  `json:"address" binding:"omitempty,max=200"`
	Images      []string                `json:"images"`
	Videos      []string                `json:"videos"`
	Attributes  []ProductAttributeInput `json:"attributes" binding:"omitempty,dive"`
}

// UpdateProductInput whitelists the updatable fields; pointers distinguish
// "absent" from "set to zero value".
type UpdateProductInput struct {
	Name        *string                 `json:"name" binding:"omitempty,min=1,max=100"`
	Title       *string                 `json:"title" binding:"omitempty,min=1,max=200"`
	Price       *float64                `json:"price" binding:"omitempty,gte=0"`
	Status      *string                 `json:"status" binding:"omitempty,oneof=active inactive"`
	PhoneNumber *string                 `json:"phoneNumber" binding:"omitempty,phone"`
	Address     *string                 `json:"address" binding:"omitempty,max=200"`
	Images      []string                `json:"images"`
	Videos      []string                `json:"videos"`
	Attributes  []ProductAttributeInput `json:"attributes" binding:"omitempty,dive"`
}

// Document builds the $set payload for an update from the fields that were
// actually provided. Attribute references are appended by the handler once
// they have been validated.
func (in *UpdateProductInput) Document() bson.M {
	doc := bson.M{}
	if in.Name != nil {
		doc["name"] = *in.Name
	}
	if in.Title != nil {
		doc["title"] = *in.Title
	}
	if in.Price != nil {
		doc["price"] = *in.Price
	}
	if in.Status != nil {
		doc["status"] = *in.Status
	}
	if in.PhoneNumber != nil {
		doc["phoneNumber"] = *in.PhoneNumber
	}
	if in.Address != nil {
		doc["address"] = *in.Address
	}
	if in.Images != nil {
		doc["images"] = in.Images
	}
	if in.Videos != nil {
		doc["videos"] = in.Videos
	}
	return doc
}
