package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"network-match/internal/domain"
	"network-match/internal/matching"
	"network-match/internal/metrics"
	"network-match/internal/service"
)

// RecommendationHandler expone las recomendaciones del miembro autenticado.
type RecommendationHandler struct {
	logger  *zap.Logger
	recServ *service.RecommendationService
	limiter service.RateLimiter
}

// NewRecommendationHandler crea el handler. limiter puede ser nil.
func NewRecommendationHandler(logger *zap.Logger, recServ *service.RecommendationService, limiter service.RateLimiter) *RecommendationHandler {
	return &RecommendationHandler{
		logger:  logger,
		recServ: recServ,
		limiter: limiter,
	}
}

type recommendationItem struct {
	domain.MatchResult
	ExplanationText string        `json:"explanation_text"`
	Member          domain.Member `json:"user"`
}

type recommendationMetadata struct {
	Algorithm string             `json:"algorithm"`
	Weights   map[string]float64 `json:"weights"`
}

type recommendationResponse struct {
	Recommendations []recommendationItem   `json:"recommendations"`
	Total           int                    `json:"total"`
	EmptyReason     domain.EmptyReason     `json:"empty_reason"`
	Message         string                 `json:"message,omitempty"`
	Metadata        recommendationMetadata `json:"metadata"`
}

// GetRecommendations maneja GET /recommendations.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	h.handle(c, service.ModeConnections)
}

// GetMentors maneja GET /recommendations/mentors.
func (h *RecommendationHandler) GetMentors(c *gin.Context) {
	h.handle(c, service.ModeMentors)
}

// InvalidateActivity maneja POST /recommendations/activity/:id/invalidate.
// Solo el propio miembro puede descartar sus señales cacheadas.
func (h *RecommendationHandler) InvalidateActivity(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	memberID := strings.TrimSpace(c.Param("id"))
	if memberID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member id required"})
		return
	}
	if memberID != claims.MemberID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.recServ.InvalidateActivity(c.Request.Context(), memberID); err != nil {
		h.logger.Error("invalidate activity failed", zap.String("member_id", memberID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not invalidate activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

func (h *RecommendationHandler) handle(c *gin.Context, mode service.Mode) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	if h.limiter != nil && !h.limiter.Allow(claims.MemberID) {
		metrics.RateLimited.Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	var (
		res service.RecommendationResult
		err error
	)
	switch mode {
	case service.ModeMentors:
		res, err = h.recServ.RecommendMentors(c.Request.Context(), claims.MemberID, limit)
	default:
		res, err = h.recServ.Recommend(c.Request.Context(), claims.MemberID, limit)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		case errors.Is(err, service.ErrInvalidLimit):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		default:
			h.logger.Error("recommendation failed",
				zap.String("mode", string(mode)),
				zap.String("member_id", claims.MemberID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute recommendations"})
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(res))
}

func toResponse(res service.RecommendationResult) recommendationResponse {
	items := make([]recommendationItem, 0, len(res.Results))
	for _, r := range res.Results {
		items = append(items, recommendationItem{
			MatchResult:     r,
			ExplanationText: matching.JoinExplanation(r.Explanation),
			Member:          res.Members[r.CandidateID],
		})
	}
	return recommendationResponse{
		Recommendations: items,
		Total:           res.ResultCount,
		EmptyReason:     res.EmptyReason,
		Message:         res.Message,
		Metadata: recommendationMetadata{
			Algorithm: string(res.Mode),
			Weights: map[string]float64{
				"skills":     matching.WeightSkill,
				"branch":     matching.WeightAffiliation,
				"experience": matching.WeightRole,
				"activity":   matching.WeightActivity,
			},
		},
	}
}
