package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/tonefield/composer/internal/composer"
	"github.com/tonefield/composer/internal/config"
	"github.com/tonefield/composer/internal/llm"
	"github.com/tonefield/composer/internal/metrics"
	"github.com/tonefield/composer/internal/observability"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	input := flag.String("input", "", "musician request to compose from (required)")
	style := flag.String("style", "", "target style for the composition (required)")
	duration := flag.Int("duration", 0, "length in beats (default 8)")
	tempo := flag.Int("tempo", 0, "tempo in beats per minute (default 60)")
	scale := flag.String("scale", "", "scale override for the encoder (default: derived from the input)")
	seed := flag.Int64("seed", 0, "random seed; same seed, same MIDI output (default: wall clock)")
	model := flag.String("model", cfg.Model, "model to generate with")
	providerName := flag.String("provider", "", "force a provider: openai or gemini (default: inferred from model)")
	flag.Parse()

	var seedPtr *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedPtr = seed
		}
	})

	if *input == "" || *style == "" {
		fmt.Fprintln(os.Stderr, "both -input and -style are required")
		flag.Usage()
		os.Exit(2)
	}

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "composer@" + releaseVersion,             // Use embedded release version
			EnableTracing:    true,                                     // Enable tracing for spans
			TracesSampleRate: 1.0,                                      // 100% sampling for now, adjust based on volume
			EnableLogs:       true,                                     // Enable Sentry Logs feature
			Debug:            cfg.Environment != environmentProduction, // Enable debug in non-prod
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	observability.InitializeLangfuse(ctx, cfg)

	cw, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	sentryM := metrics.NewSentryMetrics()

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	provider, err := factory.GetProvider(ctx, *model, *providerName)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to create provider: ", err)
	}

	out, err := composer.New(provider, cw, sentryM).Run(ctx, composer.Input{
		MusicianInput: *input,
		Style:         *style,
		Duration:      *duration,
		Tempo:         *tempo,
		Scale:         *scale,
		Seed:          seedPtr,
		Model:         *model,
	})
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Composition failed: ", err)
	}

	fmt.Println(out.Composition)
	fmt.Printf("\nMIDI file: %s (seed %d)\n", out.MIDIPath, out.Seed)
}
