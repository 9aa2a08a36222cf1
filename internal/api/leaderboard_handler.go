package api

import (
	"net/http"
)

// Leaderboard возвращает игроков по убыванию консервативной оценки
// навыка (skill = mu - 3*sigma).
// GET /api/v1/leaderboard?limit=...
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 100)

	players, err := h.playerRepo.Leaderboard(r.Context(), limit)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		result[i] = LeaderboardEntry{
			Rank:       i + 1,
			ID:         p.ID,
			Name:       p.Name,
			Mu:         p.Mu,
			Sigma:      p.Sigma,
			Skill:      p.Skill,
			MatchCount: p.MatchCount,
		}
	}

	List(w, result, len(result))
}
