package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fruitapp/internal/auth"
	"fruitapp/internal/middleware"
	"fruitapp/internal/models"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register. The very first account becomes
// the admin; everyone after that is a regular user.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		serverError(c, err)
		return
	}

	role := models.RoleUser
	count, err := h.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		serverError(c, err)
		return
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: password.Hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			fail(c, http.StatusBadRequest, "User with this email already exists")
			return
		}
		serverError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex())
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

// Login handles POST /api/auth/login. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	var user models.User
	err := h.users().FindOne(c.Request.Context(), bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		serverError(c, err)
		return
	}
	if !match {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex())
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Me handles GET /api/auth/me and echoes the authenticated identity.
func (h *Handlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
