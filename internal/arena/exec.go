package arena

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/shaiso/Gauntlet/internal/domain"
)

// waitDelay — запас после отмены контекста на то, чтобы процесс
// успел умереть и отдать stdout, прежде чем пайпы будут закрыты
// принудительно.
const waitDelay = 5 * time.Second

// Execute запускает матч и возвращает разобранный результат.
//
// Процесс получает весь бюджет матча как дедлайн контекста; по его
// истечении процесс убивается и возвращается ErrMatchTimedOut —
// частичный вывод убитого процесса не разбирается. stdin процессу
// не подаётся, stderr не перехватывается (боты пишут туда свои логи).
//
// Ненулевой код возврата сам по себе не ошибка: если отчёт в stdout
// разобрался, он авторитетен.
func (a *Arena) Execute(ctx context.Context, m *domain.Match, players []*domain.Player) (*domain.Outcome, error) {
	if len(players) != m.NumPlayers() {
		return nil, fmt.Errorf("%w: match wants %d players, got %d",
			ErrSpawnFailed, m.NumPlayers(), len(players))
	}

	budget := time.Duration(m.TimeLimitSec * float64(time.Second))
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.Binary, a.BuildArgs(m, players)...)
	cmd.Stdin = nil
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: exceeded %.1fs budget",
			ErrMatchTimedOut, m.TimeLimitSec)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
		}
		// ExitError: процесс запустился и завершился сам —
		// решает разбор отчёта ниже.
	}

	outcome, perr := ParseResults(stdout.Bytes(), m)
	if perr != nil {
		return nil, perr
	}
	outcome.ReturnCode = cmd.ProcessState.ExitCode()
	return outcome, nil
}
