package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"fruitapp/internal/storage"
)

// Handlers holds the dependencies every handler needs: the process-wide
// database handle and the media blob store.
type Handlers struct {
	DB    *mongo.Database
	Media *storage.DiskStore
}

func (h *Handlers) products() *mongo.Collection   { return h.DB.Collection("products") }
func (h *Handlers) attributes() *mongo.Collection { return h.DB.Collection("attributes") }
func (h *Handlers) users() *mongo.Collection      { return h.DB.Collection("users") }

// Users exposes the users collection for the auth middleware wiring.
func (h *Handlers) Users() *mongo.Collection { return h.users() }

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError logs the real cause and answers with a generic message so
// internal detail never reaches the client.
func serverError(c *gin.Context, err error) {
	log.Printf("server error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	fail(c, 500, "Server error")
}
