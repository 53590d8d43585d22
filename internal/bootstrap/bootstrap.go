// Package bootstrap wires configuration into a ready Detector.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/codes"
	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/core"
	"github.com/agenthands/naics/internal/core/classifier"
	"github.com/agenthands/naics/internal/llm"
	"github.com/agenthands/naics/internal/search"
)

// NewDetector loads the code tables and builds the provider clients. A table
// that cannot be loaded is a startup error.
func NewDetector(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*core.Detector, error) {
	store, err := codes.Load(cfg.Codes.RemapPath, cfg.Codes.DescriptionsPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded NAICS tables",
		zap.Int("remap_entries", len(store.Remap())),
		zap.Int("descriptions", len(store.Descriptions())))

	chat, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	provider, err := search.NewProvider(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search provider: %w", err)
	}

	logger.Info("detector ready",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("search_provider", cfg.Search.Provider))

	c := classifier.NewClassifier(chat, cfg.LLM, logger.Named("classifier"))
	return core.NewDetector(c, provider, store, logger.Named("detector")), nil
}
