package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/auth"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/client"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/config"
)

// buildClassifier selects the classification backend. Missing API keys are not an
// error here; the adapters report them per request as configuration errors.
func buildClassifier(cfg *config.ClassifierConfig) (service.Classifier, error) {
	switch cfg.Backend {
	case config.ClassifierHuggingFace:
		return client.NewHuggingFaceClassifier(
			client.NewHuggingFaceClient(cfg.BaseURL, cfg.Model, cfg.APIKey, cfg.Timeout),
		), nil
	case config.ClassifierLLM:
		// base_url and model must point at an OpenAI-compatible endpoint
		return client.NewLLMClassifier(client.NewChatClient(client.ChatConfig{
			Name:       "llm",
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			APIKey:     cfg.APIKey,
			APIKeyName: cfg.APIKeyName(),
			Timeout:    cfg.Timeout,
		})), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}

// buildExplainer selects the explanation provider. The returned func releases it.
func buildExplainer(ctx context.Context, cfg *config.ExplainerConfig) (service.Explainer, func(), error) {
	switch cfg.Provider {
	case config.ExplainerGroq:
		temperature := cfg.Temperature
		return client.NewChatExplainer(client.NewChatClient(client.ChatConfig{
			Name:        "groq",
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			APIKeyName:  cfg.APIKeyName(),
			Timeout:     cfg.Timeout,
			Temperature: &temperature,
			MaxTokens:   cfg.MaxTokens,
		})), func() {}, nil
	case config.ExplainerGemini:
		explainer, err := client.NewGeminiExplainer(ctx, client.GeminiConfig{
			APIKey:      cfg.APIKey,
			ModelName:   cfg.Model,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
			MaxTokens:   int32(cfg.MaxTokens),
		})
		if err != nil {
			return nil, nil, err
		}
		return explainer, func() { _ = explainer.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown explainer provider %q", cfg.Provider)
	}
}

// buildResolver selects the identity resolver. Only GoTrue lookups go through the
// Redis cache: local JWT verification is cheap and must re-check expiry on every
// request.
func buildResolver(cfg *config.AuthConfig, redisClient *redis.Client, log *zap.Logger) service.IdentityResolver {
	switch cfg.Mode {
	case config.AuthModeGoTrue:
		resolver := auth.NewGoTrueResolver(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.Timeout)
		return auth.NewCachedResolver(resolver, redisClient, cfg.CacheTTL, log)
	default:
		return auth.NewJWTResolver(cfg.JWTSecret)
	}
}
