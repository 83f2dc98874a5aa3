package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tooltrack/config"
	"tooltrack/controllers"
	"tooltrack/notify"
	"tooltrack/routes"
	"tooltrack/storage"
	"tooltrack/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system environment")
	}

	config.ConnectDB()
	if err := config.Migrate(config.DB); err != nil {
		log.Fatalf("migrating schema: %v", err)
	}

	utils.SetSecret(os.Getenv("JWT_SECRET"))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL := os.Getenv("UPLOAD_BASE_URL")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	imageStore, err := storage.NewDiskStore(uploadDir, baseURL)
	if err != nil {
		log.Fatalf("setting up image store: %v", err)
	}

	controllers.Init(imageStore, notify.LogNotifier{})

	r := gin.Default()
	r.Static("/uploads", uploadDir)
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
