package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match — одно соревнование между N ботами.
//
// Identity-поля задаются при создании и далее не меняются. Outcome-поля
// записываются ровно один раз (RecordOutcome либо один из MarkXxx) —
// после перехода в терминальный статус матч не мутируется; реванш —
// это новый Match.
//
// Seed и размеры карты могут быть скорректированы: игровой процесс
// вправе подстроить их и сообщить фактические значения — им и верим.
type Match struct {
	// ID — уникальный идентификатор матча.
	ID uuid.UUID `json:"id"`

	// PlayerIDs — упорядоченный список участников.
	// Порядок соответствует индексам в Ranks/Scores.
	PlayerIDs []uuid.UUID `json:"player_ids"`

	// MapWidth, MapHeight — размеры карты.
	MapWidth  int `json:"map_width"`
	MapHeight int `json:"map_height"`

	// MapSeed — seed генератора карты.
	MapSeed int64 `json:"map_seed"`

	// TimeLimitSec — бюджет wall-clock времени на весь матч, в секундах.
	TimeLimitSec float64 `json:"time_limit_sec"`

	// KeepReplay — сохранять ли replay-файл.
	KeepReplay bool `json:"keep_replay"`

	// KeepLogs — сохранять ли логи игрового процесса.
	KeepLogs bool `json:"keep_logs"`

	// Status — текущий статус матча.
	Status MatchStatus `json:"status"`

	// --- Outcome-поля, заполняются после завершения процесса ---

	// ReturnCode — raw-код выхода игрового процесса. Записывается,
	// но не влияет на успех парсинга: payload авторитетен.
	ReturnCode *int `json:"return_code,omitempty"`

	// RawResults — сырой захваченный stdout процесса.
	RawResults string `json:"raw_results,omitempty"`

	// Ranks — место каждого игрока (1 = лучший), по индексу участника.
	Ranks []int `json:"ranks,omitempty"`

	// Scores — счёт каждого игрока, по индексу участника.
	Scores []int `json:"scores,omitempty"`

	// ReplayFile — путь к replay-файлу (только если KeepReplay).
	ReplayFile string `json:"replay_file,omitempty"`

	// ErrorLogs — блоб логов ошибок из результата процесса.
	ErrorLogs string `json:"error_logs,omitempty"`

	// MapGenerator — идентификатор генератора карты из результата.
	MapGenerator string `json:"map_generator,omitempty"`

	// Error — текст ошибки при неуспешном завершении.
	Error string `json:"error,omitempty"`

	// StartedAt — время запуска игрового процесса.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время перехода в терминальный статус.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// CreatedAt — время создания матча.
	CreatedAt time.Time `json:"created_at"`
}

// Outcome — распарсенный результат игрового процесса.
// Заполняется пакетом arena и переносится в Match ровно один раз.
type Outcome struct {
	ReturnCode   int
	Raw          []byte
	Ranks        []int
	Scores       []int
	ReplayFile   string
	ErrorLogs    string
	MapWidth     int
	MapHeight    int
	MapSeed      int64
	MapGenerator string
}

// NewMatch создаёт матч с identity-полями в статусе PENDING.
func NewMatch(playerIDs []uuid.UUID, width, height int, seed int64, timeLimitSec float64, keepReplay, keepLogs bool) *Match {
	ids := make([]uuid.UUID, len(playerIDs))
	copy(ids, playerIDs)

	return &Match{
		ID:           uuid.New(),
		PlayerIDs:    ids,
		MapWidth:     width,
		MapHeight:    height,
		MapSeed:      seed,
		TimeLimitSec: timeLimitSec,
		KeepReplay:   keepReplay,
		KeepLogs:     keepLogs,
		Status:       MatchStatusPending,
		CreatedAt:    time.Now(),
	}
}

// NumPlayers возвращает количество участников.
func (m *Match) NumPlayers() int {
	return len(m.PlayerIDs)
}

// IsFinished возвращает true, если матч в терминальном статусе.
func (m *Match) IsFinished() bool {
	return m.Status.IsTerminal()
}

// Duration возвращает продолжительность матча.
func (m *Match) Duration() time.Duration {
	if m.StartedAt == nil || m.FinishedAt == nil {
		return 0
	}
	return m.FinishedAt.Sub(*m.StartedAt)
}

// MarkRunning переводит матч в статус RUNNING.
func (m *Match) MarkRunning() {
	now := time.Now()
	m.Status = MatchStatusRunning
	m.StartedAt = &now
}

// RecordOutcome переносит распарсенный результат в матч и переводит
// его в статус PLAYED. Размеры карты и seed берутся из результата:
// процесс мог скорректировать запрошенные значения.
func (m *Match) RecordOutcome(o *Outcome) {
	rc := o.ReturnCode
	m.ReturnCode = &rc
	m.RawResults = string(o.Raw)
	m.Ranks = o.Ranks
	m.Scores = o.Scores
	m.ReplayFile = o.ReplayFile
	m.ErrorLogs = o.ErrorLogs
	m.MapWidth = o.MapWidth
	m.MapHeight = o.MapHeight
	m.MapSeed = o.MapSeed
	m.MapGenerator = o.MapGenerator
	m.Status = MatchStatusPlayed
}

// MarkFinished переводит матч в статус FINISHED после применения рейтингов.
func (m *Match) MarkFinished() {
	now := time.Now()
	m.Status = MatchStatusFinished
	m.FinishedAt = &now
}

// MarkFailed переводит матч в указанный терминальный статус с ошибкой.
func (m *Match) MarkFailed(status MatchStatus, errMsg string) {
	now := time.Now()
	m.Status = status
	m.Error = errMsg
	m.FinishedAt = &now
}

// ResetForRequeue возвращает зависший матч в PENDING.
// Используется sweeper'ом, когда воркер умер, не завершив матч.
// Терминальные матчи не трогаем.
func (m *Match) ResetForRequeue() bool {
	if m.Status != MatchStatusRunning {
		return false
	}
	m.Status = MatchStatusPending
	m.StartedAt = nil
	return true
}
