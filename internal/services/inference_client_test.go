package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/agrisight/agrisight-backend/internal/logger"
)

const testInferenceURL = "http://inference.local/predict"

func newInferenceForTest(t *testing.T) InferenceClient {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewInferenceClient(logger.NewNop(), testInferenceURL)
}

func TestClassifyDecodesResponse(t *testing.T) {
	client := newInferenceForTest(t)
	httpmock.RegisterResponder(http.MethodPost, testInferenceURL,
		httpmock.NewStringResponder(http.StatusOK,
			`{"species":"Tomato","disease":"Late Blight","confidence":0.93,"severity":"high","quality_index":64.2}`))

	result, err := client.Classify(context.Background(), writeTempImage(t))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Species != "Tomato" || result.Disease != "Late Blight" {
		t.Fatalf("result=%+v", result)
	}
	if result.Confidence != 0.93 || result.Severity != "high" || result.QualityIndex != 64.2 {
		t.Fatalf("numeric fields mismatch: %+v", result)
	}
	if httpmock.GetTotalCallCount() != 1 {
		t.Fatalf("call count=%d, want 1", httpmock.GetTotalCallCount())
	}
}

func TestClassifyNon200IsUnavailable(t *testing.T) {
	client := newInferenceForTest(t)
	httpmock.RegisterResponder(http.MethodPost, testInferenceURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"model crashed"}`))

	if _, err := client.Classify(context.Background(), writeTempImage(t)); !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("err=%v, want ErrInferenceUnavailable", err)
	}
}

func TestClassifyTransportErrorIsUnavailable(t *testing.T) {
	client := newInferenceForTest(t)
	httpmock.RegisterResponder(http.MethodPost, testInferenceURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	if _, err := client.Classify(context.Background(), writeTempImage(t)); !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("err=%v, want ErrInferenceUnavailable", err)
	}
}

func TestClassifyMalformedBodyIsUnavailable(t *testing.T) {
	client := newInferenceForTest(t)
	httpmock.RegisterResponder(http.MethodPost, testInferenceURL,
		httpmock.NewStringResponder(http.StatusOK, `not json at all`))

	if _, err := client.Classify(context.Background(), writeTempImage(t)); !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("err=%v, want ErrInferenceUnavailable", err)
	}
}

func TestClassifyIncompleteShapeIsUnavailable(t *testing.T) {
	client := newInferenceForTest(t)
	httpmock.RegisterResponder(http.MethodPost, testInferenceURL,
		httpmock.NewStringResponder(http.StatusOK, `{"confidence":0.5}`))

	if _, err := client.Classify(context.Background(), writeTempImage(t)); !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("err=%v, want ErrInferenceUnavailable", err)
	}
}

func TestClassifyMissingFileFailsBeforeRequest(t *testing.T) {
	client := newInferenceForTest(t)

	if _, err := client.Classify(context.Background(), "/nonexistent/leaf.jpg"); err == nil {
		t.Fatal("expected error for missing image file")
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Fatalf("call count=%d, want 0", httpmock.GetTotalCallCount())
	}
}
