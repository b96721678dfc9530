package http

import (
	"github.com/gin-gonic/gin"

	"guest-response-agent/pkg/response"
)

// Respond godoc
// @Summary     Answer a guest inquiry
// @Description Runs the guest message through guardrails, template retrieval and tiered generation, returning the response text, tier and confidence.
// @Tags        Inquiry
// @Accept      json
// @Produce     json
// @Param       body body respondReq true "Guest inquiry"
// @Success     200 {object} respondResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/inquiries/respond [POST]
func (h *handler) Respond(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRespondReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Respond(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Respond: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newRespondResp(output))
}
