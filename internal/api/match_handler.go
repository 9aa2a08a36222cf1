package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Gauntlet/internal/domain"
	"github.com/shaiso/Gauntlet/internal/repo"
)

// Границы параметров матча.
const (
	minPlayers      = 2
	maxPlayers      = 16
	defaultMapSize  = 48
	defaultTimeSec  = 300.0
	maxMatchListLen = 500
)

// CreateMatch создаёт новый матч в статусе PENDING и публикует
// match.ready для воркеров.
// POST /api/v1/matches
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if len(req.PlayerIDs) < minPlayers || len(req.PlayerIDs) > maxPlayers {
		BadRequest(w, "match requires between 2 and 16 players")
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if _, dup := seen[id]; dup {
			BadRequest(w, "duplicate player in match")
			return
		}
		seen[id] = struct{}{}
	}

	// Все участники должны существовать.
	if _, err := h.playerRepo.ListByIDs(r.Context(), req.PlayerIDs); err != nil {
		if HandleRepoError(w, h.logger, err, "player not found") {
			return
		}
	}

	// Умолчания для незаданных параметров.
	if req.MapWidth <= 0 {
		req.MapWidth = defaultMapSize
	}
	if req.MapHeight <= 0 {
		req.MapHeight = defaultMapSize
	}
	if req.TimeLimitSec <= 0 {
		req.TimeLimitSec = defaultTimeSec
	}

	match := domain.NewMatch(req.PlayerIDs, req.MapWidth, req.MapHeight,
		req.MapSeed, req.TimeLimitSec, req.KeepReplay, req.KeepLogs)

	if err := h.matchRepo.Create(r.Context(), match); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	// Публикуем событие в очередь
	if h.publisher != nil {
		if err := h.publisher.PublishMatchReady(r.Context(), match.ID); err != nil {
			h.logger.Warn("failed to publish match.ready", "match_id", match.ID, "error", err)
		}
	}

	h.logger.Info("match created",
		"match_id", match.ID,
		"players", match.NumPlayers(),
	)

	Created(w, MatchFromDomain(*match))
}

// GetMatch возвращает матч по ID.
// GET /api/v1/matches/{id}
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid match id")
		return
	}

	match, err := h.matchRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "match not found") {
		return
	}

	Success(w, MatchFromDomain(*match))
}

// ListMatches возвращает список матчей с фильтрацией.
// GET /api/v1/matches?status=...&limit=...&offset=...
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	filter := repo.MatchFilter{
		Status: domain.MatchStatus(r.URL.Query().Get("status")),
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if filter.Limit > maxMatchListLen {
		filter.Limit = maxMatchListLen
	}

	matches, err := h.matchRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]MatchResponse, len(matches))
	for i, m := range matches {
		result[i] = MatchFromDomain(m)
	}

	List(w, result, len(result))
}
