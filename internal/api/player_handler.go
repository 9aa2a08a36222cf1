package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shaiso/Gauntlet/internal/domain"
)

// CreatePlayer регистрирует нового игрока с приорным рейтингом.
// POST /api/v1/players
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}
	if req.ExecPath == "" {
		BadRequest(w, "exec_path is required")
		return
	}

	player := domain.NewPlayer(req.Name, req.ExecPath)

	if err := h.playerRepo.Create(r.Context(), player); err != nil {
		if HandleRepoError(w, h.logger, err, "") {
			return
		}
	}

	h.logger.Info("player registered", "player_id", player.ID, "name", player.Name)

	Created(w, PlayerFromDomain(*player))
}

// GetPlayer возвращает игрока по ID.
// GET /api/v1/players/{id}
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid player id")
		return
	}

	player, err := h.playerRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "player not found") {
		return
	}

	Success(w, PlayerFromDomain(*player))
}

// ListPlayers возвращает список игроков.
// GET /api/v1/players?limit=...&offset=...
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	players, err := h.playerRepo.List(r.Context(), limit, offset)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]PlayerResponse, len(players))
	for i, p := range players {
		result[i] = PlayerFromDomain(p)
	}

	List(w, result, len(result))
}

// parseIntQuery парсит числовой query-параметр с дефолтным значением.
func parseIntQuery(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
