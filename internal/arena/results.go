package arena

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shaiso/Gauntlet/internal/domain"
)

// flexInt принимает и JSON-число, и числовую строку: бинарник игры
// исторически непоследователен в типах rank/score.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", string(data))
	}
	*f = flexInt(n)
	return nil
}

// decodeErrorLogs нормализует поле error_logs: null и отсутствие поля
// дают пустую строку, строковое значение декодируется без кавычек.
// Нестроковый JSON сохраняется как есть, чтобы не терять диагностику.
func decodeErrorLogs(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// resultsPayload — структура JSON-отчёта игры.
//
// Указатели на flexInt отличают отсутствующее поле от нулевого.
type resultsPayload struct {
	ErrorLogs    json.RawMessage `json:"error_logs"`
	MapWidth     *flexInt        `json:"map_width"`
	MapHeight    *flexInt        `json:"map_height"`
	MapSeed      *flexInt        `json:"map_seed"`
	MapGenerator string          `json:"map_generator"`
	Replay       string          `json:"replay"`
	Stats        map[string]struct {
		Rank  *flexInt `json:"rank"`
		Score *flexInt `json:"score"`
	} `json:"stats"`
}

// ParseResults разбирает stdout бинарника игры в Outcome.
//
// Stats ключуется строковым индексом игрока; карта заполняется по
// ключу, а не по порядку обхода. Любой пропуск — отсутствующий индекс,
// индекс вне [0, N), недостающий rank или score — делает отчёт
// невалидным целиком: частичных результатов не бывает.
func ParseResults(raw []byte, m *domain.Match) (*domain.Outcome, error) {
	var payload resultsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultUnparseable, err)
	}
	if payload.MapWidth == nil || payload.MapHeight == nil || payload.MapSeed == nil {
		return nil, fmt.Errorf("%w: missing map metadata", ErrResultUnparseable)
	}
	if payload.Stats == nil {
		return nil, fmt.Errorf("%w: missing stats", ErrResultUnparseable)
	}

	n := m.NumPlayers()
	ranks := make([]int, n)
	scores := make([]int, n)
	seen := make([]bool, n)
	for key, st := range payload.Stats {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: bad player index %q", ErrResultUnparseable, key)
		}
		if st.Rank == nil || st.Score == nil {
			return nil, fmt.Errorf("%w: player %d missing rank or score", ErrResultUnparseable, idx)
		}
		ranks[idx] = int(*st.Rank)
		scores[idx] = int(*st.Score)
		seen[idx] = true
	}
	for idx, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: no stats for player %d", ErrResultUnparseable, idx)
		}
	}

	out := &domain.Outcome{
		Raw:          raw,
		Ranks:        ranks,
		Scores:       scores,
		ErrorLogs:    decodeErrorLogs(payload.ErrorLogs),
		MapWidth:     int(*payload.MapWidth),
		MapHeight:    int(*payload.MapHeight),
		MapSeed:      int64(*payload.MapSeed),
		MapGenerator: payload.MapGenerator,
	}
	if m.KeepReplay {
		if payload.Replay == "" {
			return nil, fmt.Errorf("%w: missing replay path", ErrResultUnparseable)
		}
		out.ReplayFile = payload.Replay
	}
	return out, nil
}
