package main

import (
	"context"
	"log"

	"fruitapp/internal/config"
	"fruitapp/internal/database"
	"fruitapp/internal/handlers"
	"fruitapp/internal/routes"
	"fruitapp/internal/storage"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Printf("WARNING: could not create indexes: %v", err)
	}

	media, err := storage.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to prepare media storage: %v", err)
	}

	h := &handlers.Handlers{DB: db, Media: media}
	router := routes.SetupRouter(h)

	log.Println("Starting fruit catalog API on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
