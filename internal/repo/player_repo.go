package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Gauntlet/internal/domain"
)

// PlayerRepo — репозиторий для работы с players.
type PlayerRepo struct {
	pool *pgxpool.Pool
}

// NewPlayerRepo создаёт новый PlayerRepo.
func NewPlayerRepo(pool *pgxpool.Pool) *PlayerRepo {
	return &PlayerRepo{pool: pool}
}

const playerColumns = `id, name, exec_path, mu, sigma, skill, match_count, created_at, updated_at`

// Create создаёт нового игрока.
func (r *PlayerRepo) Create(ctx context.Context, p *domain.Player) error {
	query := `
		INSERT INTO players (id, name, exec_path, mu, sigma, skill, match_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.ExecPath,
		p.Mu,
		p.Sigma,
		p.Skill,
		p.MatchCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player %q", ErrAlreadyExists, p.Name)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// GetByID возвращает игрока по ID.
func (r *PlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.pool.QueryRow(ctx, query, id))
}

// ListByIDs возвращает игроков в порядке переданных ID.
//
// Порядок критичен: индекс игрока в матче определяет его позицию
// в ranks/scores. Отсутствие любого из запрошенных — ErrNotFound.
func (r *PlayerRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list players by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.Player, len(ids))
	for rows.Next() {
		p, err := scanPlayerFromRows(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	players := make([]*domain.Player, len(ids))
	for i, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, id)
		}
		players[i] = p
	}
	return players, nil
}

// List возвращает всех игроков, отсортированных по имени.
func (r *PlayerRepo) List(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayerFromRows(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// Leaderboard возвращает игроков по убыванию консервативной оценки
// навыка (skill = mu - 3*sigma).
func (r *PlayerRepo) Leaderboard(ctx context.Context, limit int) ([]domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY skill DESC, name ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayerFromRows(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// UpdateRatings сохраняет новые рейтинги всех участников матча одной
// транзакцией: либо все, либо никто.
func (r *PlayerRepo) UpdateRatings(ctx context.Context, players []*domain.Player) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE players
		SET mu = $2, sigma = $3, skill = $4, match_count = $5, updated_at = $6
		WHERE id = $1
	`
	for _, p := range players {
		result, err := tx.Exec(ctx, query,
			p.ID, p.Mu, p.Sigma, p.Skill, p.MatchCount, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update player %s: %w", p.ID, err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("%w: player %s", ErrNotFound, p.ID)
		}
	}
	return tx.Commit(ctx)
}

// scanPlayer сканирует одну строку в Player.
func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.ExecPath,
		&p.Mu,
		&p.Sigma,
		&p.Skill,
		&p.MatchCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}

// scanPlayerFromRows сканирует строку из rows в Player.
func scanPlayerFromRows(rows pgx.Rows) (*domain.Player, error) {
	var p domain.Player
	err := rows.Scan(
		&p.ID,
		&p.Name,
		&p.ExecPath,
		&p.Mu,
		&p.Sigma,
		&p.Skill,
		&p.MatchCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
