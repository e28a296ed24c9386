package main

import (
	"context"
	"net/http"
	"time"

	"github.com/feedbackhq/feedback-backend/config"
	"github.com/feedbackhq/feedback-backend/internal/moderation"
	"github.com/feedbackhq/feedback-backend/internal/store/mongodb"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/graphql-go/handler"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the disallowed word list
	badWords, err := moderation.LoadBadWords(cfg.Moderation.BadWordsFile)
	if err != nil {
		log.Fatalf("Failed to load bad words from %s: %v", cfg.Moderation.BadWordsFile, err)
	}
	log.Infof("Loaded %d disallowed words", len(badWords))

	// Connect to MongoDB; the spam check counts recent submissions
	mongoClient, err := mongodb.Connect(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Errorw("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	feedbackStore := mongodb.NewFeedbackStore(mongoClient.Database(cfg.Database.Name))
	moderator := moderation.NewModerator(
		feedbackStore,
		badWords,
		cfg.Moderation.SpamThreshold,
		time.Duration(cfg.Moderation.SpamWindowSeconds)*time.Second,
	)

	schema, err := moderation.NewSchema(moderator)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	http.Handle("/graphql", handler.New(&handler.Config{
		Schema: &schema,
		Pretty: true,
	}))

	log.Infof("Moderation service listening on port %s", cfg.Moderation.Port)
	if err := http.ListenAndServe(":"+cfg.Moderation.Port, nil); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
