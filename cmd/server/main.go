package main

import (
	"context"
	"log"

	"mindemotion-core/internal/adapter/api"
	"mindemotion-core/internal/adapter/client"
	"mindemotion-core/internal/adapter/model"
	"mindemotion-core/internal/adapter/store"
	"mindemotion-core/internal/config"
	"mindemotion-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Model artifacts are loaded once at startup; a missing artifact is fatal.
	emotionModel, err := model.LoadEmotionModel(cfg.ModelDir)
	if err != nil {
		log.Fatalf("failed to load emotion model from %s: %v", cfg.ModelDir, err)
	}
	mriModel, err := model.LoadMriModel(cfg.ModelDir)
	if err != nil {
		log.Fatalf("failed to load mri model from %s: %v", cfg.ModelDir, err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	completer := client.NewGeminiCompleter(genaiClient, cfg.GenerationModel, 0.6, 250)
	chatProvider := client.NewGeminiAssistant(genaiClient, cfg.ChatModel)

	sessions := store.NewSessionStore()

	coping := usecase.NewCopingService(completer)
	assistant := usecase.NewAssistant(chatProvider, sessions)
	images := usecase.NewImageLink()

	app := fiber.New(fiber.Config{
		AppName: "MindEmotion Gateway",
	})

	handler := api.NewHandler(emotionModel, mriModel, coping, assistant, images)
	api.SetupRouter(app, handler)

	log.Printf("MindEmotion Gateway running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
