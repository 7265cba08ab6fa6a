package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techwithgen-io/beginner-ai-projects/internal/config"
	"github.com/techwithgen-io/beginner-ai-projects/internal/handlers"
	"github.com/techwithgen-io/beginner-ai-projects/internal/repository"
	"github.com/techwithgen-io/beginner-ai-projects/internal/router"
	"github.com/techwithgen-io/beginner-ai-projects/internal/services"
)

func main() {
	root := &cobra.Command{
		Use:   "flashcards",
		Short: "AI flashcard generator with a local JSON deck store",
	}
	root.AddCommand(serveCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the flashcards HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}
}

func serve() {
	log.Println("🚀 Starting Flashcards API...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// Without a Gemini key the generator still works: it produces
	// placeholder cards instead of calling the model.
	var llm services.ChatModel
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, 0.7, cfg.GeminiConcurrentReqs)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		llm = gemini
		log.Println("✓ Gemini client initialized")
	} else {
		log.Println("✓ No GEMINI_API_KEY set, using placeholder card generation")
	}

	deckRepo := repository.NewDeckRepo(cfg.MemoryDir)
	statsRepo := repository.NewStatsRepo(cfg.MemoryDir)
	log.Printf("✓ Deck store ready (%s)", cfg.MemoryDir)

	generator := services.NewFlashcardGenerator(llm)
	deckHandler := handlers.NewDeckHandler(deckRepo, generator)
	studyHandler := handlers.NewStudyHandler(deckRepo, statsRepo)

	r := router.New(deckHandler, studyHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Flashcards API ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <deck-id>",
		Short: "Export a deck as question/answer CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			deckRepo := repository.NewDeckRepo(cfg.MemoryDir)

			deck, ok := deckRepo.Get(args[0])
			if !ok {
				return fmt.Errorf("deck %q not found", args[0])
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			writer := csv.NewWriter(out)
			for _, card := range deck.Cards {
				writer.Write([]string{card.Q, card.A})
			}
			writer.Flush()
			return writer.Error()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to a file instead of stdout")
	return cmd
}
