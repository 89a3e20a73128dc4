// Package advisor fetches short AI-written styling text for products. It never
// fails: any provider problem resolves to a fixed fallback sentence.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/domain"

	"go.uber.org/zap"
)

// Fallback texts
const (
	FallbackAdviceEmpty      = "Pair with neutral tones and clean silhouettes for a timeless look."
	FallbackAdviceError      = "Style with monochromatic essentials for a sophisticated minimalist aesthetic."
	FallbackDescriptionEmpty = "Crafted for durability and style, this piece embodies modern luxury."
	FallbackDescriptionError = "A premium addition to your wardrobe, designed with meticulous attention to detail and sustainable materials."
)

var errNoProvider = errors.New("no advisory provider configured")

// Provider generates plain text for a prompt
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Advisor wraps a Provider with a per-call timeout and fallback texts.
// Calls are never retried and results are never cached.
type Advisor struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates an Advisor. A nil provider makes every call return its fallback.
func New(provider Provider, timeout time.Duration, logger *zap.Logger) *Advisor {
	return &Advisor{provider: provider, timeout: timeout, logger: logger}
}

// StylistAdvice returns two short styling tips for the product
func (a *Advisor) StylistAdvice(ctx context.Context, productName, category string) string {
	prompt := fmt.Sprintf(
		"You are a high-end minimalist fashion stylist for a brand like COS. Provide 2 concise styling tips for a %q in the %q category. Keep it editorial, sophisticated, and under 60 words total.",
		productName, category,
	)
	return a.generate(ctx, "stylist advice", prompt, FallbackAdviceEmpty, FallbackAdviceError)
}

// ProductDescription returns an editorial product description
func (a *Advisor) ProductDescription(ctx context.Context, productName, category string) string {
	prompt := fmt.Sprintf(
		"Write a sophisticated, editorial-style product description for a clothing item named %q in the category %q. Focus on quality, sustainability, and timeless design. Keep it under 50 words.",
		productName, category,
	)
	return a.generate(ctx, "product description", prompt, FallbackDescriptionEmpty, FallbackDescriptionError)
}

func (a *Advisor) generate(ctx context.Context, op, prompt, emptyFallback, errorFallback string) string {
	if a == nil {
		return errorFallback
	}
	if a.provider == nil {
		a.logger.Debug("Advisory provider unavailable, using fallback",
			zap.String("op", op),
			zap.Error(errNoProvider),
		)
		return errorFallback
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.provider.GenerateText(ctx, prompt)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)) {
		a.logger.Debug("Advisory request cancelled", zap.String("op", op))
		return errorFallback
	}
	if err != nil {
		a.logger.Warn("Advisory provider failed, using fallback",
			zap.String("op", op),
			zap.Error(domain.NewAdvisoryProviderError(op, err)),
		)
		return errorFallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return emptyFallback
	}
	return text
}
