package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

// ErrInferenceUnavailable covers transport failures, timeouts and malformed
// responses from the image classifier. The client does not retry; callers
// decide what a failed classification means for the request.
var ErrInferenceUnavailable = errors.New("inference service unavailable")

const inferenceTimeout = 60 * time.Second

type InferenceClient interface {
	Classify(ctx context.Context, imagePath string) (*types.InferenceResult, error)
}

type inferenceClient struct {
	log        *logger.Logger
	url        string
	httpClient *http.Client
}

func NewInferenceClient(log *logger.Logger, url string) InferenceClient {
	return &inferenceClient{
		log:        log.With("service", "InferenceClient"),
		url:        url,
		httpClient: &http.Client{Timeout: inferenceTimeout},
	}
}

func (ic *inferenceClient) Classify(ctx context.Context, imagePath string) (*types.InferenceResult, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", imagePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy image into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.url, &body)
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := ic.httpClient.Do(req)
	if err != nil {
		ic.log.Error("Inference call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInferenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ic.log.Error("Inference call returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrInferenceUnavailable, resp.StatusCode)
	}

	var result types.InferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		ic.log.Error("Inference response failed to decode", "error", err)
		return nil, fmt.Errorf("%w: decode response: %v", ErrInferenceUnavailable, err)
	}
	if result.Species == "" || result.Disease == "" {
		return nil, fmt.Errorf("%w: incomplete response shape", ErrInferenceUnavailable)
	}
	return &result, nil
}
