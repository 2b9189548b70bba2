package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/metrics"
	"github.com/lox/skycast/internal/theme"
)

var ErrNoAPIKey = errors.New("no OpenAI API key")

// Generator creates banner images using OpenAI's image API.
type Generator struct {
	client openai.Client
	model  string
	log    zerolog.Logger
}

// NewGenerator returns ErrNoAPIKey when apiKey is empty.
func NewGenerator(apiKey string, log zerolog.Logger, opts ...option.RequestOption) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Generator{
		client: openai.NewClient(opts...),
		model:  "gpt-image-1",
		log:    log.With().Str("component", "imagegen").Logger(),
	}, nil
}

// Generate returns a PNG banner for the condition and time of day.
func (g *Generator) Generate(ctx context.Context, condition theme.WeatherCondition, tod theme.TimeOfDay, t time.Time) ([]byte, error) {
	key := theme.ConditionWithTime(condition, tod)
	g.log.Info().Str("condition", key).Msg("generating banner")

	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:        g.model,
		Prompt:       BuildPrompt(condition, tod, t),
		Size:         openai.ImageGenerateParamsSize1536x1024,
		Quality:      openai.ImageGenerateParamsQualityLow,
		OutputFormat: openai.ImageGenerateParamsOutputFormatPNG,
	})
	if err != nil {
		metrics.ImagesGenerated.WithLabelValues("banner", "error").Inc()
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		metrics.ImagesGenerated.WithLabelValues("banner", "error").Inc()
		return nil, errors.New("empty image data returned")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		metrics.ImagesGenerated.WithLabelValues("banner", "error").Inc()
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	metrics.ImagesGenerated.WithLabelValues("banner", "ok").Inc()
	g.log.Info().Str("condition", key).Int("bytes", len(data)).Msg("generated banner")
	return data, nil
}
