package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attribute is a named taxonomy with an ordered list of allowed option
// strings, e.g. Color -> [red, green, blue]. Names are unique.
type Attribute struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Options   []string           `json:"options" bson:"options"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasOption reports whether opt is a member of the allowed option set.
func (a *Attribute) HasOption(opt string) bool {
	for _, o := range a.Options {
		if o == opt {
			return true
		}
	}
	return false
}

type CreateAttributeInput struct {
	Name    string   `json:"name" binding:"required,max=50"`
	Options []string `json:"options" binding:"required,min=1,dive,required"`
}

// UpdateAttributeInput uses pointers so absent fields stay untouched.
type UpdateAttributeInput struct {
	Name    *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Options []string `json:"options" binding:"omitempty,min=1,dive,required"`
}

// Document builds the $set payload for an update, whitelisting only the
// fields a client is allowed to change.
func (in *UpdateAttributeInput) Document() bson.M {
	doc := bson.M{}
	if in.Name != nil {
		doc["name"] = *in.Name
	}
	if in.Options != nil {
		doc["options"] = in.Options
	}
	return doc
}
