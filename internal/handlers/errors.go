package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AttributeNotFoundError reports a product payload referencing an
// attribute id that does not resolve.
type AttributeNotFoundError struct {
	ID string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("Attribute with ID %s not found", e.ID)
}

// InvalidOptionError reports a selected option that is not a member of the
// referenced attribute's allowed option set.
type InvalidOptionError struct {
	Attribute string
	Option    string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("Option %q is not valid for attribute %q", e.Option, e.Attribute)
}

// InvalidQueryError reports an unusable list query parameter.
type InvalidQueryError struct {
	Param  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("%s %s", e.Param, e.Reason)
}

// bindError maps a gin binding failure to the 400 envelope: one message
// for malformed JSON, a field-error list for validation failures.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on the %q rule", fe.Field(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": msgs})
		return
	}
	fail(c, http.StatusBadRequest, err.Error())
}
