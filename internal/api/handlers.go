// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/bookstar/bookstar/internal/config"
	"github.com/bookstar/bookstar/internal/database"
	"github.com/bookstar/bookstar/internal/logging"
	"github.com/bookstar/bookstar/internal/metrics"
	"github.com/bookstar/bookstar/internal/recommend"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	cfg      *config.Config
	db       *database.DB
	engine   *recommend.Engine
	validate *validator.Validate
}

// NewHandler creates an API handler.
func NewHandler(cfg *config.Config, db *database.DB, engine *recommend.Engine) *Handler {
	return &Handler{
		cfg:      cfg,
		db:       db,
		engine:   engine,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// recommendBooksRequest is the legacy recommendation request body.
type recommendBooksRequest struct {
	UserID             int64 `json:"user_id" validate:"required,gt=0"`
	NumRecommendations int   `json:"num_recommendations" validate:"omitempty,gt=0,lte=100"`
}

// RecommendBooks handles POST /recommend_books. The server derives the
// member's read and want lists from storage before invoking the engine.
func (h *Handler) RecommendBooks(w http.ResponseWriter, r *http.Request) {
	var req recommendBooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	h.serveRecommendations(w, r, req.UserID, req.NumRecommendations)
}

// UserRecommendations handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || memberID <= 0 {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid user id")
		return
	}
	count := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count <= 0 || count > 100 {
			writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid count parameter")
			return
		}
	}
	h.serveRecommendations(w, r, memberID, count)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, memberID int64, count int) {
	ctx := r.Context()
	start := time.Now()

	lists, err := h.db.GetMemberReadingLists(ctx, memberID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Int64("member_id", memberID).
			Msg("Failed to load reading lists")
		metrics.RecordRecommendation("error", 0, time.Since(start))
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternal, "failed to load reading history")
		return
	}

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		MemberID:  memberID,
		ReadList:  lists.ReadIDs,
		WantList:  lists.WantIDs,
		Count:     count,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Int64("member_id", memberID).
			Msg("Recommendation failed")
		metrics.RecordRecommendation("error", 0, time.Since(start))
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternal, "recommendation failed")
		return
	}

	result := "hybrid"
	if resp.Metadata.Fallback {
		result = "fallback"
	}
	metrics.RecordRecommendation(result, len(resp.Recommendations), time.Since(start))
	metrics.CacheEntries.Set(float64(h.engine.CacheSize()))

	writeJSON(w, r, http.StatusOK, resp)
}

// ClearCache handles POST /api/v1/cache/clear.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCache()
	metrics.CacheEntries.Set(0)
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

// EngineMetrics handles GET /api/v1/recommendations/metrics.
func (h *Handler) EngineMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.engine.GetMetrics())
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Ready means the database
// answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeInternal, "database unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
