package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/internal/report"
	"github.com/wonny/smartmoney/pkg/logger"
)

// Scorer scores one stock
type Scorer interface {
	Score(ctx context.Context, code string) (*contracts.ScoreRecord, error)
}

// Ranker ranks a list of stocks
type Ranker interface {
	Rank(ctx context.Context, codes []string) ([]contracts.RankedStock, error)
}

// LatestRanking exposes the most recent scheduled ranking
type LatestRanking interface {
	Latest() (*contracts.RankingSnapshot, bool)
}

// ScoreHandler handles scoring, ranking and report endpoints
// ⭐ SSOT: 스마트머니 API 핸들러는 이 구조체에서만
type ScoreHandler struct {
	scorer       Scorer
	ranker       Ranker
	latest       LatestRanking
	weights      contracts.WeightTable
	defaultCodes []string
	logger       *logger.Logger
}

// NewScoreHandler creates a new score handler. latest may be nil.
func NewScoreHandler(scorer Scorer, ranker Ranker, latest LatestRanking, weights contracts.WeightTable, defaultCodes []string, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		scorer:       scorer,
		ranker:       ranker,
		latest:       latest,
		weights:      weights,
		defaultCodes: defaultCodes,
		logger:       log,
	}
}

// ScoreResponse is a score record with its rating
type ScoreResponse struct {
	*contracts.ScoreRecord
	Rating report.Rating       `json:"rating"`
	Radar  []report.RadarPoint `json:"radar"`
}

// GetScore scores a single stock
// GET /api/score/{code}
func (h *ScoreHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	record, ok := h.score(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, ScoreResponse{
		ScoreRecord: record,
		Rating:      report.RatingFor(record.TotalScore),
		Radar:       report.RadarSeries(record.Scores),
	})
}

// GetRanking ranks the given or default codes
// GET /api/ranking?codes=000858,600519
func (h *ScoreHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	codes := parseCodes(r.URL.Query().Get("codes"))
	if len(codes) == 0 {
		codes = h.defaultCodes
	}
	if len(codes) == 0 {
		respondError(w, http.StatusBadRequest, "No codes given (use ?codes=a,b,c)")
		return
	}

	ranked, err := h.ranker.Rank(r.Context(), codes)
	if err != nil {
		h.logger.WithError(err).Warn("Ranking interrupted")
		respondError(w, http.StatusServiceUnavailable, "Ranking interrupted")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(ranked),
		"stocks": ranked,
	})
}

// GetLatestRanking returns the last scheduled ranking
// GET /api/ranking/latest
func (h *ScoreHandler) GetLatestRanking(w http.ResponseWriter, r *http.Request) {
	if h.latest == nil {
		respondError(w, http.StatusNotFound, "Scheduled ranking is not enabled")
		return
	}

	snapshot, ok := h.latest.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "No ranking has completed yet")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// GetReport renders the stock report as HTML, or markdown with ?format=md
// GET /api/report/{code}
func (h *ScoreHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	record, ok := h.score(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, report.Markdown(record, h.weights))
		return
	}

	html, err := report.HTML(record, h.weights)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render report")
		respondError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}

// GetRadar renders the radar chart PDF
// GET /api/report/{code}/radar
func (h *ScoreHandler) GetRadar(w http.ResponseWriter, r *http.Request) {
	record, ok := h.score(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.RenderRadar(&buf, record); err != nil {
		h.logger.WithError(err).Error("Failed to render radar")
		respondError(w, http.StatusInternalServerError, "Failed to render radar")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", record.Code+"_radar.pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// score runs the scorer for the {code} path variable, writing errors itself
func (h *ScoreHandler) score(w http.ResponseWriter, r *http.Request) (*contracts.ScoreRecord, bool) {
	code := strings.TrimSpace(mux.Vars(r)["code"])
	if code == "" {
		respondError(w, http.StatusBadRequest, "Stock code is required")
		return nil, false
	}

	record, err := h.scorer.Score(r.Context(), code)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Warn("Failed to score stock")
		respondError(w, http.StatusServiceUnavailable, "Scoring failed")
		return nil, false
	}

	return record, true
}

func parseCodes(raw string) []string {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
