package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"studio-backend/handler"
	"studio-backend/internal/calc"
	"studio-backend/internal/domain"
	"studio-backend/internal/integrations/paramstore"
	"studio-backend/internal/journey"
	"studio-backend/internal/repository"
	"studio-backend/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	contentTable := mustEnv("CONTENT_TABLE")
	paramPrefix := mustEnv("PARAM_PREFIX")
	cacheTTL := time.Duration(envInt("CACHE_TTL_SECONDS", 300)) * time.Second

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	dynamoClient := awsdynamodb.NewFromConfig(cfg)
	contentClient, err := repository.New(dynamoClient, contentTable)
	if err != nil {
		slog.Error("failed to create content client", "err", err)
		os.Exit(1)
	}

	// ---- Services ----
	pricingService, err := usecase.NewPricingService(ssmClient, paramPrefix, slog.Default())
	if err != nil {
		slog.Error("failed to create pricing service", "err", err)
		os.Exit(1)
	}

	maps := loadJourneyMaps(ctx, ssmClient, paramPrefix)
	dashboardService, err := usecase.NewDashboardService(contentClient, contentClient, maps, calc.NewCache(), cacheTTL, slog.Default())
	if err != nil {
		slog.Error("failed to create dashboard service", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := handler.NewHandler(pricingService, dashboardService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

// loadJourneyMaps fetches the journey_maps parameter and falls back to the
// compiled defaults when it is absent or invalid.
func loadJourneyMaps(ctx context.Context, params paramstore.Getter, paramPrefix string) []domain.JourneyMap {
	raw, err := params.GetParameter(ctx, paramPrefix+"/journey_maps")
	if err != nil {
		slog.Warn("journey maps parameter unavailable, using defaults", "err", err)
		return journey.DefaultMaps()
	}
	maps, err := journey.ParseMaps([]byte(raw))
	if err != nil {
		slog.Warn("journey maps parameter invalid, using defaults", "err", err)
		return journey.DefaultMaps()
	}
	return maps
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
