package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fruitapp/internal/auth"
	"fruitapp/internal/models"
)

const identityKey = "currentUser"

// RequireAuth verifies the bearer token and resolves it to a persisted
// user. Every failure mode (missing header, malformed header, invalid or
// expired token, unknown subject) answers 401.
func RequireAuth(users *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		userID, err := auth.ValidateToken(parts[1])
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		var user models.User
		err = users.FindOne(c.Request.Context(), bson.M{"_id": objID}).Decode(&user)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		c.Set(identityKey, &user)
		c.Next()
	}
}

// RequireRole gates a route to the given role set. It must run after
// RequireAuth. A valid credential with the wrong role answers 403, which
// keeps Forbidden distinct from Unauthenticated.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		if !user.Role.In(roles...) {
			abort(c, http.StatusForbidden, "User role is not authorized to access this route")
			return
		}

		c.Next()
	}
}

// CurrentUser returns the identity RequireAuth stored on the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
