package rating

import (
	"fmt"
	"math"
	"sort"
)

// Rating — гауссово представление навыка игрока.
type Rating struct {
	Mu    float64
	Sigma float64
}

// Rate пересчитывает рейтинги по результату одного матча.
//
// ratings[i] — текущий навык игрока i, ranks[i] — его место в матче
// (0 — лучший; равные места означают ничью между этими игроками).
// Возвращает НОВЫЕ рейтинги в порядке исходного среза, не трогая вход.
// Обновление «всё или ничего»: при любой ошибке ни одно значение
// не считается посчитанным.
//
// Инференс — передача сообщений по цепочке факторов между соседними
// по месту парами. Для двух игроков достаточно одного прохода, для
// большего числа итерации идут вперёд-назад до сходимости MinDelta
// (с потолком MaxIter).
func Rate(ratings []Rating, ranks []int, cfg Config) ([]Rating, error) {
	cfg = cfg.withDefaults()
	if !cfg.valid() {
		return nil, fmt.Errorf("%w: bad config (beta=%v tau=%v drawProb=%v)",
			ErrInvalidInput, cfg.Beta, cfg.Tau, cfg.DrawProb)
	}
	if len(ratings) != len(ranks) {
		return nil, fmt.Errorf("%w: %d ratings vs %d ranks",
			ErrInvalidInput, len(ratings), len(ranks))
	}
	if len(ratings) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d",
			ErrInvalidInput, len(ratings))
	}
	for i, r := range ratings {
		if r.Sigma <= 0 || math.IsNaN(r.Mu) || math.IsNaN(r.Sigma) {
			return nil, fmt.Errorf("%w: player %d has sigma=%v mu=%v",
				ErrInvalidInput, i, r.Sigma, r.Mu)
		}
		if ranks[i] < 0 {
			return nil, fmt.Errorf("%w: player %d has negative rank %d",
				ErrInvalidInput, i, ranks[i])
		}
	}

	n := len(ratings)

	// Сортируем по месту, запоминая исходные позиции.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranks[order[a]] < ranks[order[b]]
	})

	g := newGraph(cfg, n)
	for pos, idx := range order {
		g.setPrior(pos, ratings[idx])
		if pos > 0 {
			g.draws[pos-1] = ranks[order[pos-1]] == ranks[idx]
		}
	}

	g.run()

	out := make([]Rating, n)
	for pos, idx := range order {
		out[idx] = g.posterior(pos)
	}
	return out, nil
}

// graph — цепочка факторов для одного матча. Игроки уже отсортированы
// по месту; фактор k связывает перформансы соседей k и k+1 через
// переменную разницы.
type graph struct {
	cfg  Config
	eps  float64
	n    int
	mu   []float64 // приорные mu
	sig2 []float64 // приорные sigma^2 + tau^2 (после шума динамики)

	perfPrior []gaussian // сообщение вниз: N(mu, sig2 + beta^2)
	msgRight  []gaussian // от фактора k к перформансу k (влево-вверх)
	msgLeft   []gaussian // от фактора k к перформансу k+1 (вправо-вверх)
	diffDown  []gaussian // от фактора k к переменной разницы
	truncMsg  []gaussian // от усечения к переменной разницы
	draws     []bool     // фактор k — ничья между k и k+1
}

func newGraph(cfg Config, n int) *graph {
	return &graph{
		cfg:       cfg,
		eps:       drawMargin(cfg.DrawProb, cfg.Beta),
		n:         n,
		mu:        make([]float64, n),
		sig2:      make([]float64, n),
		perfPrior: make([]gaussian, n),
		msgRight:  make([]gaussian, n-1),
		msgLeft:   make([]gaussian, n-1),
		diffDown:  make([]gaussian, n-1),
		truncMsg:  make([]gaussian, n-1),
		draws:     make([]bool, n-1),
	}
}

func (g *graph) setPrior(pos int, r Rating) {
	g.mu[pos] = r.Mu
	g.sig2[pos] = r.Sigma*r.Sigma + g.cfg.Tau*g.cfg.Tau
	g.perfPrior[pos] = newGaussian(r.Mu,
		math.Sqrt(g.sig2[pos]+g.cfg.Beta*g.cfg.Beta))
}

// perfValue — текущее значение переменной перформанса pos:
// произведение приора и входящих сообщений от соседних факторов.
func (g *graph) perfValue(pos int) gaussian {
	v := g.perfPrior[pos]
	if pos > 0 {
		v = v.mul(g.msgLeft[pos-1])
	}
	if pos < g.n-1 {
		v = v.mul(g.msgRight[pos])
	}
	return v
}

// down пересчитывает сообщение фактора k к переменной разницы
// из контекстов обоих перформансов (без собственных сообщений фактора).
func (g *graph) down(k int) {
	a := g.perfValue(k).div(g.msgRight[k])
	b := g.perfValue(k + 1).div(g.msgLeft[k])
	g.diffDown[k] = newGaussian(a.mu()-b.mu(),
		math.Sqrt(a.variance()+b.variance()))
}

// truncate обновляет сообщение усечения для фактора k и возвращает
// величину изменения.
func (g *graph) truncate(k int) float64 {
	ctx := g.diffDown[k]
	sqrtPi := math.Sqrt(ctx.pi)
	t := ctx.tau / sqrtPi
	e := g.eps * sqrtPi

	var v, w float64
	if g.draws[k] {
		v, w = vDraw(t, e), wDraw(t, e)
	} else {
		v, w = vWin(t, e), wWin(t, e)
	}
	rem := 1 - w
	if rem < smallestDenom {
		rem = smallestDenom
	}
	val := gaussian{
		pi:  ctx.pi / rem,
		tau: (ctx.tau + sqrtPi*v) / rem,
	}
	msg := val.div(ctx)
	delta := msg.delta(g.truncMsg[k])
	g.truncMsg[k] = msg
	return delta
}

// upLeft шлёт сообщение фактора k перформансу k.
func (g *graph) upLeft(k int) {
	b := g.perfValue(k + 1).div(g.msgLeft[k])
	d := g.truncMsg[k]
	g.msgRight[k] = newGaussian(b.mu()+d.mu(),
		math.Sqrt(b.variance()+d.variance()))
}

// upRight шлёт сообщение фактора k перформансу k+1.
func (g *graph) upRight(k int) {
	a := g.perfValue(k).div(g.msgRight[k])
	d := g.truncMsg[k]
	g.msgLeft[k] = newGaussian(a.mu()-d.mu(),
		math.Sqrt(a.variance()+d.variance()))
}

// run гоняет передачу сообщений до сходимости.
func (g *graph) run() {
	if g.n == 2 {
		g.down(0)
		g.truncate(0)
	} else {
		for iter := 0; iter < g.cfg.MaxIter; iter++ {
			delta := 0.0
			// Вперёд: слева направо.
			for k := 0; k <= g.n-3; k++ {
				g.down(k)
				delta = math.Max(delta, g.truncate(k))
				g.upRight(k)
			}
			// Назад: справа налево.
			for k := g.n - 2; k >= 1; k-- {
				g.down(k)
				delta = math.Max(delta, g.truncate(k))
				g.upLeft(k)
			}
			if delta < g.cfg.MinDelta {
				break
			}
		}
	}
	// Крайним игрокам сообщения шлются один раз после сходимости.
	g.upLeft(0)
	g.upRight(g.n - 2)
}

// posterior поднимает сошедшееся значение перформанса обратно к
// переменной навыка: сообщение вверх через фактор перформанса
// добавляет beta^2 к дисперсии, затем умножается на приор.
func (g *graph) posterior(pos int) Rating {
	up := g.perfValue(pos).div(g.perfPrior[pos])
	lifted := newGaussian(up.mu(),
		math.Sqrt(up.variance()+g.cfg.Beta*g.cfg.Beta))
	prior := newGaussian(g.mu[pos], math.Sqrt(g.sig2[pos]))
	val := prior.mul(lifted)
	return Rating{Mu: val.mu(), Sigma: val.sigma()}
}
