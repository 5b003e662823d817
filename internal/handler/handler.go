package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dallmi/SearchAnalytics/docs"
	"github.com/dallmi/SearchAnalytics/internal/dto"
	"github.com/dallmi/SearchAnalytics/internal/service"
)

type Handler struct {
	analytics service.AnalyticsServicer
	router    *gin.Engine
	log       *zap.Logger
}

func NewHandler(analytics service.AnalyticsServicer, log *zap.Logger) *Handler {
	h := &Handler{
		analytics: analytics,
		router:    gin.Default(),
		log:       log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/journeys", h.getJourneys)
	h.router.GET("/aggregates/daily", h.getDailyAggregates)
	h.router.GET("/aggregates/terms", h.getTermAggregates)
	h.router.GET("/rollups/daily", h.getJourneyRollups)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// getJourneys handles GET /journeys
// @Summary Get session journeys
// @Description Retrieve session journey summaries for a date range, optionally filtered to a single outcome
// @Tags journeys
// @Produce json
// @Param from query string true "Start date (inclusive)" example:"2026-08-01"
// @Param to query string true "End date (inclusive)" example:"2026-08-07"
// @Param outcome query string false "Outcome to filter by" Enums(Success, Engaged, NoResults, Abandoned, Unknown)
// @Success 200 {object} dto.GetJourneysResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /journeys [get]
func (h *Handler) getJourneys(c *gin.Context) {
	var req dto.GetJourneysRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid journeys request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetJourneys(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to get journeys",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.String("outcome", req.Outcome))
		return
	}

	h.log.Info("Journeys retrieved",
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.Int("count", response.Count))

	c.JSON(http.StatusOK, response)
}

// getDailyAggregates handles GET /aggregates/daily
// @Summary Get daily aggregates
// @Description Retrieve date-grain event aggregates for a date range
// @Tags aggregates
// @Produce json
// @Param from query string true "Start date (inclusive)" example:"2026-08-01"
// @Param to query string true "End date (inclusive)" example:"2026-08-07"
// @Success 200 {object} dto.GetDailyAggregatesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /aggregates/daily [get]
func (h *Handler) getDailyAggregates(c *gin.Context) {
	var req dto.DateRangeRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid daily aggregates request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetDailyAggregates(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to get daily aggregates",
			zap.String("from", req.From),
			zap.String("to", req.To))
		return
	}

	c.JSON(http.StatusOK, response)
}

// getTermAggregates handles GET /aggregates/terms
// @Summary Get term aggregates
// @Description Retrieve per-term aggregates for a date range, optionally restricted to one normalized term
// @Tags aggregates
// @Produce json
// @Param from query string true "Start date (inclusive)" example:"2026-08-01"
// @Param to query string true "End date (inclusive)" example:"2026-08-07"
// @Param term query string false "Normalized search term to filter by" example:"budget report"
// @Success 200 {object} dto.GetTermAggregatesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /aggregates/terms [get]
func (h *Handler) getTermAggregates(c *gin.Context) {
	var req dto.GetTermAggregatesRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid term aggregates request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetTermAggregates(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to get term aggregates",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.String("term", req.Term))
		return
	}

	c.JSON(http.StatusOK, response)
}

// getJourneyRollups handles GET /rollups/daily
// @Summary Get daily journey rollups
// @Description Retrieve the permanent per-day journey rollups, the only journey data retained past the retention horizon
// @Tags rollups
// @Produce json
// @Param from query string true "Start date (inclusive)" example:"2026-05-01"
// @Param to query string true "End date (inclusive)" example:"2026-05-31"
// @Success 200 {object} dto.GetJourneyRollupsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /rollups/daily [get]
func (h *Handler) getJourneyRollups(c *gin.Context) {
	var req dto.DateRangeRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid rollups request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetJourneyRollups(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to get journey rollups",
			zap.String("from", req.From),
			zap.String("to", req.To))
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondError maps service errors onto HTTP statuses. Validation failures
// surface as 400, everything else as 500.
func (h *Handler) respondError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	if isValidationError(err) {
		h.log.Warn(msg, append(fields, zap.Error(err))...)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Error(msg, append(fields, zap.Error(err))...)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

func isValidationError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "invalid ") || strings.HasPrefix(msg, "from date")
}
