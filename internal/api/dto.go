package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Gauntlet/internal/domain"
)

// Player DTOs

// CreatePlayerRequest — запрос на регистрацию игрока.
type CreatePlayerRequest struct {
	Name     string `json:"name"`
	ExecPath string `json:"exec_path"`
}

// PlayerResponse — ответ с игроком.
type PlayerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ExecPath   string    `json:"exec_path"`
	Mu         float64   `json:"mu"`
	Sigma      float64   `json:"sigma"`
	Skill      float64   `json:"skill"`
	MatchCount int       `json:"match_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlayerFromDomain конвертирует domain.Player в PlayerResponse.
func PlayerFromDomain(p domain.Player) PlayerResponse {
	return PlayerResponse{
		ID:         p.ID,
		Name:       p.Name,
		ExecPath:   p.ExecPath,
		Mu:         p.Mu,
		Sigma:      p.Sigma,
		Skill:      p.Skill,
		MatchCount: p.MatchCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// Match DTOs

// CreateMatchRequest — запрос на создание матча.
type CreateMatchRequest struct {
	PlayerIDs    []uuid.UUID `json:"player_ids"`
	MapWidth     int         `json:"map_width"`
	MapHeight    int         `json:"map_height"`
	MapSeed      int64       `json:"map_seed"`
	TimeLimitSec float64     `json:"time_limit_sec"`
	KeepReplay   bool        `json:"keep_replay"`
	KeepLogs     bool        `json:"keep_logs"`
}

// MatchResponse — ответ с матчем.
type MatchResponse struct {
	ID           uuid.UUID          `json:"id"`
	PlayerIDs    []uuid.UUID        `json:"player_ids"`
	MapWidth     int                `json:"map_width"`
	MapHeight    int                `json:"map_height"`
	MapSeed      int64              `json:"map_seed"`
	TimeLimitSec float64            `json:"time_limit_sec"`
	KeepReplay   bool               `json:"keep_replay"`
	KeepLogs     bool               `json:"keep_logs"`
	Status       domain.MatchStatus `json:"status"`
	ReturnCode   *int               `json:"return_code,omitempty"`
	Ranks        []int              `json:"ranks,omitempty"`
	Scores       []int              `json:"scores,omitempty"`
	ReplayFile   string             `json:"replay_file,omitempty"`
	MapGenerator string             `json:"map_generator,omitempty"`
	Error        string             `json:"error,omitempty"`
	StartedAt    *time.Time         `json:"started_at,omitempty"`
	FinishedAt   *time.Time         `json:"finished_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// MatchFromDomain конвертирует domain.Match в MatchResponse.
func MatchFromDomain(m domain.Match) MatchResponse {
	return MatchResponse{
		ID:           m.ID,
		PlayerIDs:    m.PlayerIDs,
		MapWidth:     m.MapWidth,
		MapHeight:    m.MapHeight,
		MapSeed:      m.MapSeed,
		TimeLimitSec: m.TimeLimitSec,
		KeepReplay:   m.KeepReplay,
		KeepLogs:     m.KeepLogs,
		Status:       m.Status,
		ReturnCode:   m.ReturnCode,
		Ranks:        m.Ranks,
		Scores:       m.Scores,
		ReplayFile:   m.ReplayFile,
		MapGenerator: m.MapGenerator,
		Error:        m.Error,
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// Leaderboard DTOs

// LeaderboardEntry — строка таблицы лидеров.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Mu         float64   `json:"mu"`
	Sigma      float64   `json:"sigma"`
	Skill      float64   `json:"skill"`
	MatchCount int       `json:"match_count"`
}
