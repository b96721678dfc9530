package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"guest-response-agent/internal/inquiry"
	"guest-response-agent/pkg/log"
)

type fakeUseCase struct {
	output inquiry.RespondOutput
	input  inquiry.RespondInput
}

func (f *fakeUseCase) Respond(ctx context.Context, input inquiry.RespondInput) (inquiry.RespondOutput, error) {
	f.input = input
	return f.output, nil
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                 {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Fatal(ctx context.Context, args ...any)                 {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any) {}

var _ log.Logger = nopLogger{}

func newTestRouter(uc inquiry.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(nopLogger{}, uc)
	r.POST("/respond", h.Respond)
	return r
}

func post(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/respond", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondHandler(t *testing.T) {
	uc := &fakeUseCase{output: inquiry.RespondOutput{
		Text:       "Check-in is at 3 PM.",
		Tier:       inquiry.TierDirectTemplate,
		Confidence: 0.93,
		Metadata:   inquiry.Metadata{TemplatesFound: 2, LatencyMS: 12},
	}}
	r := newTestRouter(uc)

	w := post(t, r, map[string]string{
		"message":        "what time is check-in",
		"property_id":    "prop-1",
		"reservation_id": "res-1",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data respondResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ResponseType != "direct_template" || resp.Data.ConfidenceScore != 0.93 {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
	if resp.Data.Metadata.TemplatesFound != 2 {
		t.Errorf("metadata = %+v", resp.Data.Metadata)
	}
	if uc.input.ReservationID != "res-1" {
		t.Errorf("input not forwarded: %+v", uc.input)
	}
}

func TestRespondHandlerValidation(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing message", map[string]string{"property_id": "prop-1"}},
		{"blank message", map[string]string{"message": "   ", "property_id": "prop-1"}},
		{"missing property", map[string]string{"message": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := post(t, r, tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
