package arena

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Gauntlet/internal/domain"
)

func testMatch(nPlayers int) *domain.Match {
	ids := make([]uuid.UUID, nPlayers)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return domain.NewMatch(ids, 48, 48, 42, 5.0, true, false)
}

func testPlayers(n int) []*domain.Player {
	players := make([]*domain.Player, n)
	for i := range players {
		players[i] = domain.NewPlayer("bot", "/bots/bot.py")
	}
	return players
}

const sampleResults = `{
	"error_logs": null,
	"map_width": 48,
	"map_height": 48,
	"map_seed": 42,
	"map_generator": "fractal",
	"replay": "replays/replay-42.hlt",
	"stats": {
		"1": {"rank": 2, "score": 150},
		"0": {"rank": "1", "score": "980"}
	}
}`

// TestParseResults: заполнение по ключу индекса, а не по порядку
// обхода карты; строковые числа принимаются наравне с числами.
func TestParseResults(t *testing.T) {
	m := testMatch(2)
	out, err := ParseResults([]byte(sampleResults), m)
	if err != nil {
		t.Fatalf("ParseResults вернул ошибку: %v", err)
	}
	if out.Ranks[0] != 1 || out.Ranks[1] != 2 {
		t.Errorf("неверные ranks: %v", out.Ranks)
	}
	if out.Scores[0] != 980 || out.Scores[1] != 150 {
		t.Errorf("неверные scores: %v", out.Scores)
	}
	if out.MapWidth != 48 || out.MapHeight != 48 || out.MapSeed != 42 {
		t.Errorf("неверные метаданные карты: %dx%d seed=%d",
			out.MapWidth, out.MapHeight, out.MapSeed)
	}
	if out.MapGenerator != "fractal" {
		t.Errorf("неверный генератор: %q", out.MapGenerator)
	}
	if out.ReplayFile != "replays/replay-42.hlt" {
		t.Errorf("неверный replay: %q", out.ReplayFile)
	}
}

// TestParseResultsNoReplay: без KeepReplay путь к replay игнорируется,
// даже если бинарник его прислал.
func TestParseResultsNoReplay(t *testing.T) {
	m := testMatch(2)
	m.KeepReplay = false
	out, err := ParseResults([]byte(sampleResults), m)
	if err != nil {
		t.Fatalf("ParseResults вернул ошибку: %v", err)
	}
	if out.ReplayFile != "" {
		t.Errorf("replay должен игнорироваться: %q", out.ReplayFile)
	}
}

// TestParseResultsMissingReplay: при KeepReplay путь к replay обязателен.
func TestParseResultsMissingReplay(t *testing.T) {
	raw := `{"map_width": 48, "map_height": 48, "map_seed": 1,
		"stats": {"0": {"rank": 1, "score": 1}, "1": {"rank": 2, "score": 0}}}`
	m := testMatch(2)
	if _, err := ParseResults([]byte(raw), m); !errors.Is(err, ErrResultUnparseable) {
		t.Errorf("ожидался ErrResultUnparseable, получено %v", err)
	}

	// Без KeepReplay тот же отчёт валиден.
	m.KeepReplay = false
	if _, err := ParseResults([]byte(raw), m); err != nil {
		t.Errorf("отчёт без replay должен быть валиден: %v", err)
	}
}

// TestParseResultsErrorLogs: error_logs — строка либо null; null и
// отсутствие поля дают пустую строку, строка декодируется без кавычек.
func TestParseResultsErrorLogs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"строка", `{"error_logs": "bot 1 crashed", "map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}, "1": {"rank": 2, "score": 0}}}`, "bot 1 crashed"},
		{"null", `{"error_logs": null, "map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}, "1": {"rank": 2, "score": 0}}}`, ""},
		{"поля нет", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}, "1": {"rank": 2, "score": 0}}}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := testMatch(2)
			m.KeepReplay = false
			out, err := ParseResults([]byte(tc.raw), m)
			if err != nil {
				t.Fatalf("ParseResults вернул ошибку: %v", err)
			}
			if out.ErrorLogs != tc.want {
				t.Errorf("ожидалось %q, получено %q", tc.want, out.ErrorLogs)
			}
		})
	}
}

// TestParseResultsInvalid: любой дефект отчёта отвергает его целиком.
func TestParseResultsInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"не JSON", "panic: runtime error"},
		{"пустой вывод", ""},
		{"нет stats", `{"error_logs": null, "map_width": 48, "map_height": 48, "map_seed": 1}`},
		{"нет map_seed", `{"error_logs": null, "map_width": 48, "map_height": 48, "stats": {"0": {"rank": 1, "score": 1}, "1": {"rank": 2, "score": 0}}}`},
		{"пропущен игрок", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}}}`},
		{"индекс вне диапазона", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}, "2": {"rank": 2, "score": 0}}}`},
		{"нечисловой индекс", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": 1, "score": 1}, "x": {"rank": 2, "score": 0}}}`},
		{"нет rank", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"score": 1}, "1": {"rank": 2, "score": 0}}}`},
		{"нечисловой rank", `{"map_width": 48, "map_height": 48, "map_seed": 1, "stats": {"0": {"rank": "first", "score": 1}, "1": {"rank": 2, "score": 0}}}`},
	}
	m := testMatch(2)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseResults([]byte(tc.raw), m); !errors.Is(err, ErrResultUnparseable) {
				t.Errorf("ожидался ErrResultUnparseable, получено %v", err)
			}
		})
	}
}

// TestBuildArgs проверяет состав командной строки.
func TestBuildArgs(t *testing.T) {
	a := New("/usr/local/bin/game-engine", "")
	m := testMatch(2)
	players := []*domain.Player{
		domain.NewPlayer("alpha", "/bots/alpha.py"),
		domain.NewPlayer("beta", "/bots/beta.py"),
	}
	args := a.BuildArgs(m, players)

	want := []string{
		"--replay-directory", "replays/",
		"--width", "48", "--height", "48",
		"-s", "42",
		"--results-as-json",
		"--no-logs",
		"--no-compression",
		"--override-names", "alpha",
		"--override-names", "beta",
		"exec /bots/alpha.py",
		"exec /bots/beta.py",
	}
	if len(args) != len(want) {
		t.Fatalf("ожидалось %d аргументов, получено %d: %v",
			len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("аргумент %d: ожидалось %q, получено %q",
				i, want[i], args[i])
		}
	}
}

// TestBuildArgsNoReplay: без replay и с логами флаги меняются.
func TestBuildArgsNoReplay(t *testing.T) {
	a := New("game-engine", "")
	m := testMatch(2)
	m.KeepReplay = false
	m.KeepLogs = true
	args := a.BuildArgs(m, testPlayers(2))

	if args[0] != "--no-replay" {
		t.Errorf("ожидался --no-replay, получено %q", args[0])
	}
	for _, arg := range args {
		if arg == "--no-logs" {
			t.Errorf("--no-logs не должен присутствовать при KeepLogs")
		}
		if arg == "--replay-directory" {
			t.Errorf("--replay-directory не должен присутствовать без KeepReplay")
		}
	}
}

// writeScript кладёт исполняемый sh-скрипт во временный каталог.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sh-скрипты недоступны на windows")
	}
	path := filepath.Join(t.TempDir(), "game.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("не удалось записать скрипт: %v", err)
	}
	return path
}

// TestExecute: успешный запуск фиктивной «игры», которая печатает
// готовый отчёт.
func TestExecute(t *testing.T) {
	bin := writeScript(t, "cat <<'EOF'\n"+sampleResults+"\nEOF\n")
	a := New(bin, "")
	m := testMatch(2)

	out, err := a.Execute(context.Background(), m, testPlayers(2))
	if err != nil {
		t.Fatalf("Execute вернул ошибку: %v", err)
	}
	if out.ReturnCode != 0 {
		t.Errorf("ожидался код возврата 0, получено %d", out.ReturnCode)
	}
	if out.Ranks[0] != 1 || out.Ranks[1] != 2 {
		t.Errorf("неверные ranks: %v", out.Ranks)
	}
}

// TestExecuteNonZeroExit: ненулевой код возврата с валидным отчётом —
// успех, отчёт авторитетен.
func TestExecuteNonZeroExit(t *testing.T) {
	bin := writeScript(t, "cat <<'EOF'\n"+sampleResults+"\nEOF\nexit 3\n")
	a := New(bin, "")
	m := testMatch(2)

	out, err := a.Execute(context.Background(), m, testPlayers(2))
	if err != nil {
		t.Fatalf("Execute вернул ошибку: %v", err)
	}
	if out.ReturnCode != 3 {
		t.Errorf("ожидался код возврата 3, получено %d", out.ReturnCode)
	}
}

// TestExecuteTimeout: процесс, переживший бюджет, убивается,
// его частичный вывод не разбирается.
func TestExecuteTimeout(t *testing.T) {
	bin := writeScript(t, "echo '{\"partial\":'\nsleep 30\n")
	a := New(bin, "")
	m := testMatch(2)
	m.TimeLimitSec = 0.2

	start := time.Now()
	_, err := a.Execute(context.Background(), m, testPlayers(2))
	if !errors.Is(err, ErrMatchTimedOut) {
		t.Fatalf("ожидался ErrMatchTimedOut, получено %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("процесс не был убит вовремя: %v", elapsed)
	}
}

// TestExecuteSpawnFailure: отсутствующий бинарник — ErrSpawnFailed.
func TestExecuteSpawnFailure(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "no-such-binary"), "")
	m := testMatch(2)

	_, err := a.Execute(context.Background(), m, testPlayers(2))
	if !errors.Is(err, ErrSpawnFailed) {
		t.Fatalf("ожидался ErrSpawnFailed, получено %v", err)
	}
}

// TestExecuteGarbageOutput: мусор в stdout — ErrResultUnparseable.
func TestExecuteGarbageOutput(t *testing.T) {
	bin := writeScript(t, "echo 'Segmentation fault'\n")
	a := New(bin, "")
	m := testMatch(2)

	_, err := a.Execute(context.Background(), m, testPlayers(2))
	if !errors.Is(err, ErrResultUnparseable) {
		t.Fatalf("ожидался ErrResultUnparseable, получено %v", err)
	}
}

// TestExecutePlayerCountMismatch: расхождение списка игроков с матчем
// отсекается до запуска процесса.
func TestExecutePlayerCountMismatch(t *testing.T) {
	a := New("game-engine", "")
	m := testMatch(2)

	_, err := a.Execute(context.Background(), m, testPlayers(3))
	if !errors.Is(err, ErrSpawnFailed) {
		t.Fatalf("ожидался ErrSpawnFailed, получено %v", err)
	}
}
