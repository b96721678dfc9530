package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"guest-response-agent/internal/inquiry"
)

// maxMessageLength bounds the accepted guest message size.
const maxMessageLength = 4000

type respondReq struct {
	Message       string `json:"message" binding:"required"`
	PropertyID    string `json:"property_id" binding:"required"`
	ReservationID string `json:"reservation_id"`
}

func (h *handler) processRespondReq(c *gin.Context) (respondReq, error) {
	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return respondReq{}, err
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return respondReq{}, inquiry.ErrEmptyMessage
	}
	if len(req.Message) > maxMessageLength {
		return respondReq{}, inquiry.ErrMessageTooLong
	}
	if strings.TrimSpace(req.PropertyID) == "" {
		return respondReq{}, inquiry.ErrPropertyRequired
	}

	return req, nil
}

func (req respondReq) toInput() inquiry.RespondInput {
	return inquiry.RespondInput{
		Message:       req.Message,
		PropertyID:    req.PropertyID,
		ReservationID: req.ReservationID,
	}
}

type respondMetadata struct {
	PIIDetected    bool  `json:"pii_detected"`
	TemplatesFound int   `json:"templates_found"`
	LatencyMS      int64 `json:"latency_ms"`
}

type respondResp struct {
	ResponseText    string          `json:"response_text"`
	ResponseType    string          `json:"response_type"`
	ConfidenceScore float64         `json:"confidence_score"`
	Metadata        respondMetadata `json:"metadata"`
}

func (h *handler) newRespondResp(out inquiry.RespondOutput) respondResp {
	return respondResp{
		ResponseText:    out.Text,
		ResponseType:    string(out.Tier),
		ConfidenceScore: out.Confidence,
		Metadata: respondMetadata{
			PIIDetected:    out.Metadata.PIIDetected,
			TemplatesFound: out.Metadata.TemplatesFound,
			LatencyMS:      out.Metadata.LatencyMS,
		},
	}
}
