package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

const defaultHistoryLimit = 10

type PredictionResult struct {
	Prediction *types.Prediction `json:"prediction"`
	Enriched   any               `json:"enriched"`
}

type PredictionService interface {
	// PredictAndStore runs the full chain: classify the image, enrich for the
	// owner's role, persist the ledger entry, then best-effort remove the
	// uploaded image.
	PredictAndStore(ctx context.Context, user *types.User, imagePath string) (*PredictionResult, error)
	// History returns the owner's newest predictions. Records whose stored
	// payload lacks narrative content get one generated for the response
	// only; the stored rows are never rewritten.
	History(ctx context.Context, userID uuid.UUID, viewerRole types.UserRole, limit int) ([]*types.Prediction, error)
	ListAll(ctx context.Context) ([]*types.Prediction, error)
}

type predictionService struct {
	log            *logger.Logger
	inference      InferenceClient
	enrichment     EnrichmentService
	narrative      NarrativeService
	predictionRepo repos.PredictionRepo
}

func NewPredictionService(
	log *logger.Logger,
	inference InferenceClient,
	enrichment EnrichmentService,
	narrative NarrativeService,
	predictionRepo repos.PredictionRepo,
) PredictionService {
	return &predictionService{
		log:            log.With("service", "PredictionService"),
		inference:      inference,
		enrichment:     enrichment,
		narrative:      narrative,
		predictionRepo: predictionRepo,
	}
}

func (ps *predictionService) PredictAndStore(ctx context.Context, user *types.User, imagePath string) (*PredictionResult, error) {
	inference, err := ps.inference.Classify(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	enriched, err := ps.enrichment.EnrichForRole(ctx, user.Role, inference, user.ID)
	if err != nil {
		return nil, fmt.Errorf("enrich prediction: %w", err)
	}

	payloadJSON, err := json.Marshal(enriched)
	if err != nil {
		return nil, fmt.Errorf("marshal enriched payload: %w", err)
	}

	prediction := &types.Prediction{
		ID:           uuid.New(),
		UserID:       user.ID,
		Species:      inference.Species,
		Disease:      inference.Disease,
		Confidence:   inference.Confidence,
		Severity:     inference.Severity,
		QualityIndex: inference.QualityIndex,
		Payload:      payloadJSON,
	}
	stored, err := ps.predictionRepo.Create(ctx, nil, prediction)
	if err != nil {
		return nil, fmt.Errorf("store prediction: %w", err)
	}

	if err := os.Remove(imagePath); err != nil {
		ps.log.Warn("Failed to cleanup uploaded file", "path", imagePath, "error", err)
	}

	return &PredictionResult{Prediction: stored, Enriched: enriched}, nil
}

func (ps *predictionService) History(ctx context.Context, userID uuid.UUID, viewerRole types.UserRole, limit int) ([]*types.Prediction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	predictions, err := ps.predictionRepo.ListByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, err
	}

	// Backfill missing narratives concurrently, one slot per record so the
	// most-recent-first ordering survives unordered completion. A record
	// whose backfill fails is returned exactly as stored.
	results := make([]*types.Prediction, len(predictions))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range predictions {
		g.Go(func() error {
			results[i] = ps.backfillNarrative(gctx, viewerRole, p)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (ps *predictionService) backfillNarrative(ctx context.Context, viewerRole types.UserRole, p *types.Prediction) *types.Prediction {
	var payload map[string]any
	if len(p.Payload) > 0 {
		if err := json.Unmarshal(p.Payload, &payload); err != nil {
			ps.log.Warn("Stored payload failed to decode, returning record as-is", "prediction_id", p.ID, "error", err)
			return p
		}
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if desc, ok := payload["aiDescription"]; ok && desc != nil {
		return p
	}

	input := NarrativeInput{
		Species:      p.Species,
		Disease:      p.Disease,
		Severity:     p.Severity,
		QualityIndex: p.QualityIndex,
	}
	if v, ok := payload["medicinalValue"].(string); ok {
		input.MedicinalValue = v
	}
	if v, ok := payload["nutritionalValue"].(string); ok {
		input.NutritionalInfo = v
	} else if v, ok := payload["nutritionalInfo"].(string); ok {
		input.NutritionalInfo = v
	}
	if v, ok := payload["toxicityRisk"].(string); ok {
		input.ToxicityRisk = v
	}

	payload["aiDescription"] = ps.narrative.Describe(ctx, viewerRole, input)

	augmented, err := json.Marshal(payload)
	if err != nil {
		ps.log.Warn("Failed to re-encode backfilled payload", "prediction_id", p.ID, "error", err)
		return p
	}

	enriched := *p
	enriched.Payload = augmented
	return &enriched
}

func (ps *predictionService) ListAll(ctx context.Context) ([]*types.Prediction, error) {
	return ps.predictionRepo.ListAll(ctx, nil)
}
