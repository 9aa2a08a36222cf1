package arena

import (
	"strconv"

	"github.com/shaiso/Gauntlet/internal/domain"
)

// Arena — конфигурация запуска игрового бинарника.
type Arena struct {
	// Binary — путь к бинарнику игры.
	Binary string

	// ReplayDir — каталог для записей матчей (когда match.KeepReplay).
	ReplayDir string
}

// New создаёт арену с заполнением умолчаний.
func New(binary, replayDir string) *Arena {
	if replayDir == "" {
		replayDir = "replays/"
	}
	return &Arena{Binary: binary, ReplayDir: replayDir}
}

// BuildArgs собирает аргументы командной строки для матча.
//
// Бинарник игры принимает команду каждого бота одним аргументом
// ("exec <путь>"), сам раскрывая её при запуске, поэтому путь
// не разбивается на токены.
func (a *Arena) BuildArgs(m *domain.Match, players []*domain.Player) []string {
	args := make([]string, 0, 10+3*len(players))

	if m.KeepReplay {
		args = append(args, "--replay-directory", a.ReplayDir)
	} else {
		args = append(args, "--no-replay")
	}
	args = append(args,
		"--width", strconv.Itoa(m.MapWidth),
		"--height", strconv.Itoa(m.MapHeight),
		"-s", strconv.FormatInt(m.MapSeed, 10),
		"--results-as-json",
	)
	if !m.KeepLogs {
		args = append(args, "--no-logs")
	}
	args = append(args, "--no-compression")
	for _, p := range players {
		args = append(args, "--override-names", p.Name)
	}
	for _, p := range players {
		args = append(args, "exec "+p.ExecPath)
	}
	return args
}
