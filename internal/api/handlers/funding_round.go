package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"venture_web/internal/service"
)

type FundingRoundHandler struct {
	rounds *service.FundingRoundService
}

func NewFundingRoundHandler(rounds *service.FundingRoundService) *FundingRoundHandler {
	return &FundingRoundHandler{rounds: rounds}
}

type CreateRoundInput struct {
	StartupID     string    `json:"startupId" binding:"required"`
	AskAmount     float64   `json:"askAmount" binding:"required,gt=0"`
	EquityOffered float64   `json:"equityOffered" binding:"required,gt=0"`
	ClosingDate   time.Time `json:"closingDate" binding:"required"`
}

func (h *FundingRoundHandler) CreateRound(c *gin.Context) {
	var input CreateRoundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.rounds.CreateRound(c.Request.Context(), input.StartupID, input.AskAmount, input.EquityOffered, input.ClosingDate)
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create funding round"})
		return
	}
	c.JSON(http.StatusCreated, round)
}

// GetCurrentRound serves the founder dashboard's view of the startup's
// active round without the caller needing the round id.
func (h *FundingRoundHandler) GetCurrentRound(c *gin.Context) {
	detail, err := h.rounds.GetActiveRound(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch funding round"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetRound serves the round read model: valuation, progress and the
// interested-investor list.
func (h *FundingRoundHandler) GetRound(c *gin.Context) {
	detail, err := h.rounds.GetRoundDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch funding round"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *FundingRoundHandler) CloseRound(c *gin.Context) {
	round, err := h.rounds.CloseRound(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close funding round"})
		return
	}
	c.JSON(http.StatusOK, round)
}

func (h *FundingRoundHandler) GetCapTable(c *gin.Context) {
	entries, err := h.rounds.GetCapTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cap table"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
