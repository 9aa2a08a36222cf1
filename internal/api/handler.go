package api

import (
	"log/slog"

	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	playerRepo *repo.PlayerRepo
	matchRepo  *repo.MatchRepo
	publisher  *mq.Publisher
	logger     *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	PlayerRepo *repo.PlayerRepo
	MatchRepo  *repo.MatchRepo
	Publisher  *mq.Publisher
	Logger     *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		playerRepo: cfg.PlayerRepo,
		matchRepo:  cfg.MatchRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
	}
}
