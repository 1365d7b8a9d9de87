package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/trip-tracker/internal/airline"
	"github.com/zombor/trip-tracker/internal/extraction"
	"github.com/zombor/trip-tracker/internal/heuristic"
	"github.com/zombor/trip-tracker/internal/model"
	"github.com/zombor/trip-tracker/internal/trip"
	"github.com/zombor/trip-tracker/internal/vision"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("trip-tracker")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "trip-tracker.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./boarding-passes", "Storage directory path")
		provider      = fs.StringLong("provider", "gemini", "Vision/model provider: 'gemini' or 'ollama'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaVision  = fs.StringLong("ollama-vision-model", "llava", "Ollama vision model name (e.g., llava, llava-phi3, qwen2-vl)")
		ollamaModel   = fs.StringLong("ollama-model", "llama3.1", "Ollama text model name")
		noModel       = fs.BoolLong("no-model", "Disable the model extraction stage (heuristic scanning only)")
		airlineSource = fs.StringLong("airline-source", "static", "Airline lookup source: 'static' or 'adsbdb'")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("TRIP_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := trip.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize vision recognizer and model session based on provider
	var (
		recognizer extraction.TextRecognizer
		session    extraction.ModelSession
	)
	switch *provider {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini provider...", "model", *geminiModel)
		g, err := vision.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini vision", "error", err)
			os.Exit(1)
		}
		defer g.Close()
		recognizer = g

		if !*noModel {
			m, err := model.NewGemini(apiKey, *geminiModel)
			if err != nil {
				slog.Error("Failed to initialize Gemini model", "error", err)
				os.Exit(1)
			}
			defer m.Close()
			session = m
		}
	case "ollama":
		slog.Info("Initializing Ollama provider...", "url", *ollamaURL, "vision_model", *ollamaVision, "model", *ollamaModel)
		o, err := vision.NewOllama(*ollamaURL, *ollamaVision)
		if err != nil {
			slog.Error("Failed to initialize Ollama vision", "error", err)
			os.Exit(1)
		}
		defer o.Close()
		recognizer = o

		if !*noModel {
			m, err := model.NewOllama(*ollamaURL, *ollamaModel)
			if err != nil {
				slog.Error("Failed to initialize Ollama model", "error", err)
				os.Exit(1)
			}
			defer m.Close()
			session = m
		}
	default:
		slog.Error("Invalid provider", "provider", *provider, "valid", "gemini or ollama")
		os.Exit(1)
	}
	if session == nil {
		slog.Info("Model extraction stage disabled")
		session = model.Disabled{}
	}

	// Initialize airline directory
	var directory extraction.AirlineDirectory
	switch *airlineSource {
	case "static":
		directory = airline.Static{}
	case "adsbdb":
		directory = airline.NewHTTPDirectory("")
	default:
		slog.Error("Invalid airline source", "source", *airlineSource, "valid", "static or adsbdb")
		os.Exit(1)
	}

	// Assemble the extraction pipeline
	pipeline := extraction.NewPipeline(
		recognizer,
		extraction.NewExtractor(session),
		extraction.NewResolver(directory),
		heuristic.NewScanner(recognizer, directory),
	)

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := trip.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	tripService := trip.NewService(db, pipeline, store)

	// Initialize server
	basicAuth := trip.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := trip.NewServer(tripService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
