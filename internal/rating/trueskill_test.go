package rating

import (
	"errors"
	"math"
	"testing"
)

func defaultRating() Rating {
	return Rating{Mu: 25.0, Sigma: 25.0 / 3.0}
}

// TestRateTwoPlayers проверяет базовый дуэльный сценарий:
// mu победителя растёт, mu проигравшего падает, обе sigma сжимаются.
func TestRateTwoPlayers(t *testing.T) {
	in := []Rating{defaultRating(), defaultRating()}
	out, err := Rate(in, []int{0, 1}, DefaultConfig())
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("ожидалось 2 рейтинга, получено %d", len(out))
	}
	if out[0].Mu <= in[0].Mu {
		t.Errorf("mu победителя не выросло: %v -> %v", in[0].Mu, out[0].Mu)
	}
	if out[1].Mu >= in[1].Mu {
		t.Errorf("mu проигравшего не упало: %v -> %v", in[1].Mu, out[1].Mu)
	}
	// Для дефолтных параметров дуэли сдвиг известен с точностью до
	// единиц: новый mu победителя около 29.
	if out[0].Mu < 27 || out[0].Mu > 32 {
		t.Errorf("mu победителя вне разумного диапазона: %v", out[0].Mu)
	}
	for i, r := range out {
		if r.Sigma <= 0 {
			t.Fatalf("sigma игрока %d не положительна: %v", i, r.Sigma)
		}
		if r.Sigma >= in[i].Sigma {
			t.Errorf("sigma игрока %d не сжалась: %v -> %v",
				i, in[i].Sigma, r.Sigma)
		}
	}
}

// TestRateDrawSymmetry: ничья равных игроков не двигает mu,
// но уменьшает неопределённость симметрично.
func TestRateDrawSymmetry(t *testing.T) {
	in := []Rating{defaultRating(), defaultRating()}
	out, err := Rate(in, []int{0, 0}, DefaultConfig())
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	if math.Abs(out[0].Mu-in[0].Mu) > 1e-6 {
		t.Errorf("mu первого сдвинулось при ничьей: %v", out[0].Mu)
	}
	if math.Abs(out[0].Mu-out[1].Mu) > 1e-9 {
		t.Errorf("mu разошлись при симметричной ничьей: %v vs %v",
			out[0].Mu, out[1].Mu)
	}
	if math.Abs(out[0].Sigma-out[1].Sigma) > 1e-9 {
		t.Errorf("sigma разошлись при симметричной ничьей: %v vs %v",
			out[0].Sigma, out[1].Sigma)
	}
	if out[0].Sigma >= in[0].Sigma {
		t.Errorf("sigma не сжалась при ничьей: %v -> %v",
			in[0].Sigma, out[0].Sigma)
	}
}

// TestRateRankMonotonicity: при равных приорах лучший результат даёт
// строго больший апостериорный mu.
func TestRateRankMonotonicity(t *testing.T) {
	in := []Rating{
		defaultRating(), defaultRating(),
		defaultRating(), defaultRating(),
	}
	out, err := Rate(in, []int{0, 1, 2, 3}, DefaultConfig())
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i].Mu <= out[i+1].Mu {
			t.Errorf("mu не монотонны по местам: mu[%d]=%v <= mu[%d]=%v",
				i, out[i].Mu, i+1, out[i+1].Mu)
		}
	}
	for i, r := range out {
		if r.Sigma <= 0 || r.Sigma >= in[i].Sigma {
			t.Errorf("sigma игрока %d вне ожиданий: %v -> %v",
				i, in[i].Sigma, r.Sigma)
		}
	}
}

// TestRateTiedMiddle: игроки с одинаковым местом посреди таблицы
// получают одинаковое обновление.
func TestRateTiedMiddle(t *testing.T) {
	in := []Rating{
		defaultRating(), defaultRating(),
		defaultRating(), defaultRating(),
	}
	out, err := Rate(in, []int{0, 1, 1, 2}, DefaultConfig())
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	if math.Abs(out[1].Mu-out[2].Mu) > 1e-6 {
		t.Errorf("mu поделивших место разошлись: %v vs %v",
			out[1].Mu, out[2].Mu)
	}
	if out[0].Mu <= out[1].Mu || out[1].Mu <= out[3].Mu {
		t.Errorf("порядок mu нарушен: %v, %v, %v",
			out[0].Mu, out[1].Mu, out[3].Mu)
	}
}

// TestRateLandslide: победа над тремя соперниками убеждает сильнее,
// чем победа над одним.
func TestRateLandslide(t *testing.T) {
	cfg := DefaultConfig()

	duo, err := Rate([]Rating{defaultRating(), defaultRating()},
		[]int{0, 1}, cfg)
	if err != nil {
		t.Fatalf("Rate(2) вернул ошибку: %v", err)
	}
	quad, err := Rate([]Rating{
		defaultRating(), defaultRating(),
		defaultRating(), defaultRating(),
	}, []int{0, 1, 2, 3}, cfg)
	if err != nil {
		t.Fatalf("Rate(4) вернул ошибку: %v", err)
	}
	if quad[0].Mu <= duo[0].Mu {
		t.Errorf("победа в матче на 4 игрока дала меньше (%v), чем дуэль (%v)",
			quad[0].Mu, duo[0].Mu)
	}
}

// TestRateOrderIndependence: результат зависит от мест, а не от
// порядка игроков во входном срезе.
func TestRateOrderIndependence(t *testing.T) {
	cfg := DefaultConfig()
	a := Rating{Mu: 30, Sigma: 4}
	b := Rating{Mu: 20, Sigma: 6}

	fwd, err := Rate([]Rating{a, b}, []int{1, 0}, cfg)
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	rev, err := Rate([]Rating{b, a}, []int{0, 1}, cfg)
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	if math.Abs(fwd[0].Mu-rev[1].Mu) > 1e-9 ||
		math.Abs(fwd[0].Sigma-rev[1].Sigma) > 1e-9 {
		t.Errorf("результат зависит от порядка входа: %+v vs %+v",
			fwd[0], rev[1])
	}
	if math.Abs(fwd[1].Mu-rev[0].Mu) > 1e-9 {
		t.Errorf("результат зависит от порядка входа: %+v vs %+v",
			fwd[1], rev[0])
	}
}

// TestRateUpsetMagnitude: неожиданная победа аутсайдера двигает рейтинги
// сильнее, чем ожидаемая победа фаворита.
func TestRateUpsetMagnitude(t *testing.T) {
	cfg := DefaultConfig()
	favorite := Rating{Mu: 35, Sigma: 3}
	underdog := Rating{Mu: 15, Sigma: 3}

	expected, err := Rate([]Rating{favorite, underdog}, []int{0, 1}, cfg)
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	upset, err := Rate([]Rating{favorite, underdog}, []int{1, 0}, cfg)
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	expGain := expected[0].Mu - favorite.Mu
	upsetLoss := favorite.Mu - upset[0].Mu
	if upsetLoss <= expGain {
		t.Errorf("сенсация (%v) не сильнее ожидаемого исхода (%v)",
			upsetLoss, expGain)
	}
}

// TestRateSigmaStaysPositive: длинная серия матчей не схлопывает
// sigma в ноль — шум динамики tau держит нижний порог.
func TestRateSigmaStaysPositive(t *testing.T) {
	cfg := DefaultConfig()
	cur := []Rating{defaultRating(), defaultRating()}
	for i := 0; i < 300; i++ {
		ranks := []int{i % 2, 1 - i%2}
		next, err := Rate(cur, ranks, cfg)
		if err != nil {
			t.Fatalf("матч %d: Rate вернул ошибку: %v", i, err)
		}
		for j, r := range next {
			if r.Sigma <= 0 || math.IsNaN(r.Sigma) || math.IsNaN(r.Mu) {
				t.Fatalf("матч %d: игрок %d деградировал: %+v", i, j, r)
			}
		}
		cur = next
	}
	for j, r := range cur {
		if r.Sigma < cfg.Tau {
			t.Errorf("sigma игрока %d упала ниже шума динамики: %v",
				j, r.Sigma)
		}
	}
}

// TestRateDoesNotMutateInput: вход остаётся нетронутым.
func TestRateDoesNotMutateInput(t *testing.T) {
	in := []Rating{defaultRating(), defaultRating()}
	orig := make([]Rating, len(in))
	copy(orig, in)
	if _, err := Rate(in, []int{0, 1}, DefaultConfig()); err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}
	for i := range in {
		if in[i] != orig[i] {
			t.Errorf("вход изменён: %+v -> %+v", orig[i], in[i])
		}
	}
}

// TestRateInvalidInput: все формы некорректного входа дают
// ErrInvalidInput без паники.
func TestRateInvalidInput(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name    string
		ratings []Rating
		ranks   []int
	}{
		{"несовпадение длин", []Rating{defaultRating(), defaultRating()}, []int{0}},
		{"один игрок", []Rating{defaultRating()}, []int{0}},
		{"нулевая sigma", []Rating{{Mu: 25, Sigma: 0}, defaultRating()}, []int{0, 1}},
		{"отрицательная sigma", []Rating{{Mu: 25, Sigma: -1}, defaultRating()}, []int{0, 1}},
		{"отрицательное место", []Rating{defaultRating(), defaultRating()}, []int{0, -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Rate(tc.ratings, tc.ranks, cfg); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ожидался ErrInvalidInput, получено %v", err)
			}
		})
	}
}

// TestDrawMargin: порог ничьей растёт с вероятностью ничьей и с beta.
func TestDrawMargin(t *testing.T) {
	small := drawMargin(0.001, 25.0/6.0)
	large := drawMargin(0.3, 25.0/6.0)
	if small <= 0 || large <= small {
		t.Errorf("drawMargin не монотонен: %v, %v", small, large)
	}
	wide := drawMargin(0.001, 25.0/3.0)
	if wide <= small {
		t.Errorf("drawMargin не растёт с beta: %v vs %v", wide, small)
	}
}

// TestWinCorrectionsAsymptote: при глубоком underflow нормировки
// поправки выходят на свои пределы: v -> -x, w -> 1 для x < 0.
func TestWinCorrectionsAsymptote(t *testing.T) {
	// normCDF(-40) за пределами float64, работает асимптотическая ветка.
	if v := vWin(-40, 0); v != 40 {
		t.Errorf("vWin в асимптотике: ожидалось 40, получено %v", v)
	}
	if w := wWin(-40, 0); w != 1 {
		t.Errorf("wWin в асимптотике: ожидалось 1, получено %v", w)
	}
	// Гарантированная победа с огромным отрывом ничего не меняет.
	if w := wWin(40, 0); w > 1e-10 {
		t.Errorf("wWin при x >> 0 должен стремиться к 0, получено %v", w)
	}
}
