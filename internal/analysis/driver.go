package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wardrobe-backend/internal/shared/metrics"
	"wardrobe-backend/internal/shared/telemetry"
)

// Failure reasons recorded when a run ends in StatusFailed.
const (
	FailureResolution = "resolution"
	FailureProvider   = "provider"
	FailureExtraction = "extraction"
	FailureParse      = "parse"
)

const analysisPrompt = `Analyze this outfit image and return ONLY a valid JSON object with this exact structure:
{
  "description": "2-3 sentences about the outfit style",
  "clothing_items": ["specific items visible"],
  "colors": ["hex or color names"],
  "patterns": ["solid", "striped"],
  "styles": ["casual", "formal", "streetwear"],
  "occasions": ["weekend", "work", "casual"],
  "fit_analysis": "description of how clothes fit",
  "color_theory": "explanation of color harmony",
  "recommendations": ["styling tip 1", "styling tip 2", "styling tip 3"]
}`

// ErrEmptyResponse indicates the provider call succeeded but returned no text.
var ErrEmptyResponse = errors.New("empty response from provider")

// Provider is the single-shot model call the driver depends on.
type Provider interface {
	AnalyzeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// StatusWriter persists terminal analysis state. Implementations must treat a
// missing record as a no-op so a slow run racing a delete stays harmless.
type StatusWriter interface {
	UpdateAnalysisStatus(ctx context.Context, outfitID, status string, result Result) error
}

// Driver runs one end-to-end analysis attempt for an outfit record and owns
// every status write after creation.
type Driver struct {
	Repo     StatusWriter
	Resolver ImageResolver
	Provider Provider
}

// Run resolves the image, calls the provider, normalizes the response, and
// writes exactly one terminal status. It never returns an error or panics to
// its invoker; it is meant to be scheduled detached from the request that
// created the record.
func (d *Driver) Run(ctx context.Context, imageRef, outfitID string) {
	started := time.Now()
	metrics.IncAnalysisStarted()
	defer func() {
		metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	}()
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("analysis.panic", map[string]any{
				"outfit_id": outfitID,
				"error":     fmt.Sprint(r),
			})
			d.fail(ctx, outfitID, FailureProvider, fmt.Errorf("panic: %v", r))
		}
	}()

	telemetry.Info("analysis.started", map[string]any{"outfit_id": outfitID})

	data, mimeType, err := d.Resolver.Resolve(ctx, imageRef)
	if err != nil {
		d.fail(ctx, outfitID, FailureResolution, err)
		return
	}

	raw, err := d.Provider.AnalyzeImage(ctx, analysisPrompt, data, mimeType)
	if err != nil {
		d.fail(ctx, outfitID, FailureProvider, err)
		return
	}
	if strings.TrimSpace(raw) == "" {
		d.fail(ctx, outfitID, FailureProvider, ErrEmptyResponse)
		return
	}

	result, err := Normalize(raw)
	if err != nil {
		reason := FailureParse
		if errors.Is(err, ErrNoJSONObject) {
			reason = FailureExtraction
		}
		d.fail(ctx, outfitID, reason, err)
		return
	}

	if err := d.Repo.UpdateAnalysisStatus(ctx, outfitID, StatusCompleted, result); err != nil {
		telemetry.Error("analysis.status_write_failed", map[string]any{
			"outfit_id": outfitID,
			"status":    StatusCompleted,
			"error":     err.Error(),
		})
		return
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{"outfit_id": outfitID})
}

// fail records a terminal failure. The result column stays NULL on failure;
// the reason travels in logs only.
func (d *Driver) fail(ctx context.Context, outfitID, reason string, cause error) {
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.failed", map[string]any{
		"outfit_id": outfitID,
		"reason":    reason,
		"error":     cause.Error(),
	})
	if err := d.Repo.UpdateAnalysisStatus(ctx, outfitID, StatusFailed, nil); err != nil {
		telemetry.Error("analysis.status_write_failed", map[string]any{
			"outfit_id": outfitID,
			"status":    StatusFailed,
			"error":     err.Error(),
		})
	}
}
