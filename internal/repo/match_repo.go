package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Gauntlet/internal/domain"
)

// MatchRepo — репозиторий для работы с matches.
type MatchRepo struct {
	pool *pgxpool.Pool
}

// NewMatchRepo создаёт новый MatchRepo.
func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

const matchColumns = `id, player_ids, map_width, map_height, map_seed, time_limit_sec,
	       keep_replay, keep_logs, status, return_code, raw_results, ranks, scores,
	       replay_file, error_logs, map_generator, error, started_at, finished_at, created_at`

// Create создаёт новый матч.
func (r *MatchRepo) Create(ctx context.Context, m *domain.Match) error {
	playerIDsJSON, err := json.Marshal(m.PlayerIDs)
	if err != nil {
		return fmt.Errorf("marshal player ids: %w", err)
	}

	query := `
		INSERT INTO matches (id, player_ids, map_width, map_height, map_seed,
		                     time_limit_sec, keep_replay, keep_logs, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.pool.Exec(ctx, query,
		m.ID,
		playerIDsJSON,
		m.MapWidth,
		m.MapHeight,
		m.MapSeed,
		m.TimeLimitSec,
		m.KeepReplay,
		m.KeepLogs,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// GetByID возвращает матч по ID.
func (r *MatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.pool.QueryRow(ctx, query, id))
}

// Update сохраняет изменяемые поля матча.
func (r *MatchRepo) Update(ctx context.Context, m *domain.Match) error {
	var ranksJSON, scoresJSON []byte
	var err error
	if m.Ranks != nil {
		if ranksJSON, err = json.Marshal(m.Ranks); err != nil {
			return fmt.Errorf("marshal ranks: %w", err)
		}
	}
	if m.Scores != nil {
		if scoresJSON, err = json.Marshal(m.Scores); err != nil {
			return fmt.Errorf("marshal scores: %w", err)
		}
	}

	query := `
		UPDATE matches
		SET map_width = $2, map_height = $3, map_seed = $4, status = $5,
		    return_code = $6, raw_results = $7, ranks = $8, scores = $9,
		    replay_file = $10, error_logs = $11, map_generator = $12,
		    error = $13, started_at = $14, finished_at = $15
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		m.ID,
		m.MapWidth,
		m.MapHeight,
		m.MapSeed,
		m.Status,
		m.ReturnCode,
		nullString(m.RawResults),
		ranksJSON,
		scoresJSON,
		nullString(m.ReplayFile),
		nullString(m.ErrorLogs),
		nullString(m.MapGenerator),
		nullString(m.Error),
		m.StartedAt,
		m.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus меняет только статус матча с проверкой текущего.
//
// Атомарный CAS: два воркера, получившие один матч, не запустят его
// дважды — второй получит ErrInvalidState.
func (r *MatchRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.MatchStatus) error {
	query := `UPDATE matches SET status = $3 WHERE id = $1 AND status = $2`
	result, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: match %s is not %s", ErrInvalidState, id, from)
	}
	return nil
}

// ListByStatus возвращает матчи в указанном статусе, старые первыми.
func (r *MatchRepo) ListByStatus(ctx context.Context, status domain.MatchStatus, limit int) ([]domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE status = $1 ORDER BY created_at ASC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

// List возвращает матчи с фильтрацией.
func (r *MatchRepo) List(ctx context.Context, filter MatchFilter) ([]domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE ($1::text IS NULL OR status = $1::match_status)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query,
		nullString(string(filter.Status)),
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

// RequeueStuck возвращает в PENDING матчи, зависшие в RUNNING дольше
// собственного бюджета с запасом graceSec. Возвращает ID возвращённых.
//
// Терминальные статусы условие не задевает: sweeper перезапускает
// только матчи умерших воркеров.
func (r *MatchRepo) RequeueStuck(ctx context.Context, graceSec float64) ([]uuid.UUID, error) {
	query := `
		UPDATE matches
		SET status = 'PENDING', started_at = NULL
		WHERE status = 'RUNNING'
		  AND started_at < now() - make_interval(secs => time_limit_sec + $1)
		RETURNING id
	`
	rows, err := r.pool.Query(ctx, query, graceSec)
	if err != nil {
		return nil, fmt.Errorf("requeue stuck matches: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan requeued id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Helpers ---

// MatchFilter — параметры фильтрации matches.
type MatchFilter struct {
	Status domain.MatchStatus
	Limit  int
	Offset int
}

func collectMatches(rows pgx.Rows) ([]domain.Match, error) {
	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatchFromRows(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// scanMatch сканирует одну строку в Match.
func scanMatch(row pgx.Row) (*domain.Match, error) {
	m, err := scanMatchRow(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// scanMatchFromRows сканирует строку из rows в Match.
func scanMatchFromRows(rows pgx.Rows) (*domain.Match, error) {
	return scanMatchRow(rows.Scan)
}

func scanMatchRow(scan func(dest ...any) error) (*domain.Match, error) {
	var m domain.Match
	var playerIDsJSON, ranksJSON, scoresJSON []byte
	var rawResults, replayFile, errorLogs, mapGenerator, matchError *string

	err := scan(
		&m.ID,
		&playerIDsJSON,
		&m.MapWidth,
		&m.MapHeight,
		&m.MapSeed,
		&m.TimeLimitSec,
		&m.KeepReplay,
		&m.KeepLogs,
		&m.Status,
		&m.ReturnCode,
		&rawResults,
		&ranksJSON,
		&scoresJSON,
		&replayFile,
		&errorLogs,
		&mapGenerator,
		&matchError,
		&m.StartedAt,
		&m.FinishedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(playerIDsJSON, &m.PlayerIDs); err != nil {
		return nil, fmt.Errorf("unmarshal player ids: %w", err)
	}
	if ranksJSON != nil {
		if err := json.Unmarshal(ranksJSON, &m.Ranks); err != nil {
			return nil, fmt.Errorf("unmarshal ranks: %w", err)
		}
	}
	if scoresJSON != nil {
		if err := json.Unmarshal(scoresJSON, &m.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
	}
	if rawResults != nil {
		m.RawResults = *rawResults
	}
	if replayFile != nil {
		m.ReplayFile = *replayFile
	}
	if errorLogs != nil {
		m.ErrorLogs = *errorLogs
	}
	if mapGenerator != nil {
		m.MapGenerator = *mapGenerator
	}
	if matchError != nil {
		m.Error = *matchError
	}
	return &m, nil
}
