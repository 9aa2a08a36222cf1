package sweeper

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// --- cron Tests ---

func TestNextTick(t *testing.T) {
	from := time.Date(2026, 8, 31, 12, 30, 15, 0, time.UTC)

	next, err := NextTick("* * * * *", from)
	if err != nil {
		t.Fatalf("NextTick вернул ошибку: %v", err)
	}
	want := time.Date(2026, 8, 31, 12, 31, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("ожидалось %v, получено %v", want, next)
	}

	next, err = NextTick("0 3 * * *", from)
	if err != nil {
		t.Fatalf("NextTick вернул ошибку: %v", err)
	}
	want = time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("ожидалось %v, получено %v", want, next)
	}
}

func TestValidateCronExpr(t *testing.T) {
	if err := ValidateCronExpr("*/5 * * * *"); err != nil {
		t.Errorf("валидное выражение отвергнуто: %v", err)
	}
	if err := ValidateCronExpr("not a cron"); err == nil {
		t.Error("невалидное выражение принято")
	}
	if err := ValidateCronExpr(DefaultCronExpr); err != nil {
		t.Errorf("дефолтное выражение отвергнуто: %v", err)
	}
}

// --- pruneReplays Tests ---

func TestPruneReplays(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "replay-old.hlt")
	if err := os.WriteFile(oldFile, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	freshFile := filepath.Join(dir, "replay-fresh.hlt")
	if err := os.WriteFile(freshFile, []byte("fresh"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(Config{ReplayDir: dir, ReplayTTL: 24 * time.Hour})
	if err := s.pruneReplays(); err != nil {
		t.Fatalf("pruneReplays вернул ошибку: %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("старый replay не удалён")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Error("свежий replay удалён")
	}
}

// --- configuration Tests ---

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})

	if s.graceSec != defaultGraceSec {
		t.Errorf("ожидался grace %v, получено %v", defaultGraceSec, s.graceSec)
	}
	if s.logger == nil {
		t.Error("ожидался логгер по умолчанию")
	}
}
