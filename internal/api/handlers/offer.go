package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venture_web/internal/service"
)

// OfferHandler exposes the negotiation state machine over plain
// request/response endpoints. Negotiation never happens on the socket.
type OfferHandler struct {
	negotiation *service.NegotiationService
}

func NewOfferHandler(negotiation *service.NegotiationService) *OfferHandler {
	return &OfferHandler{negotiation: negotiation}
}

// TermsInput carries proposed terms. Amount and equity must be positive;
// that validation lives here at the boundary, not in the service.
type TermsInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Equity float64 `json:"equity" binding:"required,gt=0"`
}

func (h *OfferHandler) ExpressInterest(c *gin.Context) {
	offer, err := h.negotiation.ExpressInterest(c.Request.Context(), c.Param("id"), c.Param("investorId"))
	if err != nil {
		c.JSON(offerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	var input TermsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.negotiation.SubmitOffer(c.Request.Context(), c.Param("id"), c.Param("investorId"), input.Amount, input.Equity)
	if err != nil {
		c.JSON(offerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	offer, err := h.negotiation.AcceptOffer(c.Request.Context(), c.Param("id"), c.Param("investorId"))
	if err != nil {
		c.JSON(offerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) CounterOffer(c *gin.Context) {
	var input TermsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.negotiation.CounterOffer(c.Request.Context(), c.Param("id"), c.Param("investorId"), input.Amount, input.Equity)
	if err != nil {
		c.JSON(offerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) RejectOffer(c *gin.Context) {
	offer, err := h.negotiation.RejectOffer(c.Request.Context(), c.Param("id"), c.Param("investorId"))
	if err != nil {
		c.JSON(offerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func offerErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrOfferNotFound), errors.Is(err, service.ErrRoundNotFound), errors.Is(err, service.ErrInvestorNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOfferAlreadyAccepted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
