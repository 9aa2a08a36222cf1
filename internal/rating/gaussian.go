package rating

import "math"

// gaussian — нормальное распределение в precision-форме:
// pi = 1/sigma^2 (точность), tau = mu/sigma^2 (precision-adjusted mean).
// Нулевое значение (pi=0, tau=0) — несобственный равномерный приор,
// нейтральный элемент умножения.
type gaussian struct {
	pi  float64
	tau float64
}

func newGaussian(mu, sigma float64) gaussian {
	pi := 1.0 / (sigma * sigma)
	return gaussian{pi: pi, tau: pi * mu}
}

func (g gaussian) mu() float64 {
	if g.pi == 0 {
		return 0
	}
	return g.tau / g.pi
}

func (g gaussian) variance() float64 {
	if g.pi == 0 {
		return math.Inf(1)
	}
	return 1.0 / g.pi
}

func (g gaussian) sigma() float64 {
	return math.Sqrt(g.variance())
}

// mul — произведение плотностей: точности и tau складываются.
func (g gaussian) mul(o gaussian) gaussian {
	return gaussian{pi: g.pi + o.pi, tau: g.tau + o.tau}
}

// div — деление плотностей (вычитание сообщения).
func (g gaussian) div(o gaussian) gaussian {
	return gaussian{pi: g.pi - o.pi, tau: g.tau - o.tau}
}

// delta — метрика расхождения двух сообщений для проверки сходимости.
func (g gaussian) delta(o gaussian) float64 {
	return math.Max(math.Abs(g.tau-o.tau), math.Sqrt(math.Abs(g.pi-o.pi)))
}

const invSqrt2 = math.Sqrt2 / 2

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x*invSqrt2)
}

// normPPF — квантиль стандартного нормального распределения.
func normPPF(p float64) float64 {
	return -math.Sqrt2 * math.Erfcinv(2*p)
}

// drawMargin переводит вероятность ничьей в порог eps на разнице
// перформансов двух игроков.
func drawMargin(drawProb, beta float64) float64 {
	return normPPF((drawProb+1)/2) * math.Sqrt2 * beta
}

// vWin и wWin — аддитивная и мультипликативная поправки усечённого
// нормального распределения для исхода «победа» (разница перформансов
// обусловлена > eps).
func vWin(t, eps float64) float64 {
	x := t - eps
	denom := normCDF(x)
	if denom < smallestDenom {
		return -x
	}
	return normPDF(x) / denom
}

func wWin(t, eps float64) float64 {
	x := t - eps
	if normCDF(x) < smallestDenom {
		// Предел усечения: при x -> -inf вся масса срезается (w -> 1),
		// при x -> +inf усечение ничего не меняет (w -> 0).
		if x < 0 {
			return 1
		}
		return 0
	}
	v := vWin(t, eps)
	w := v * (v + x)
	if w < 0 || w > 1 {
		// При экстремальных t float64 успевает потерять точность
		// раньше, чем w сойдётся к границе.
		if w < 0 {
			return 0
		}
		return 1
	}
	return w
}

// vDraw и wDraw — поправки для исхода «ничья» (|разница| <= eps).
func vDraw(t, eps float64) float64 {
	abs := math.Abs(t)
	a := eps - abs
	b := -eps - abs
	denom := normCDF(a) - normCDF(b)
	if denom < smallestDenom {
		if t < 0 {
			return a
		}
		return -a
	}
	v := (normPDF(b) - normPDF(a)) / denom
	if t < 0 {
		return -v
	}
	return v
}

func wDraw(t, eps float64) float64 {
	abs := math.Abs(t)
	a := eps - abs
	b := -eps - abs
	denom := normCDF(a) - normCDF(b)
	if denom < smallestDenom {
		return 1
	}
	v := vDraw(t, eps)
	w := v*v + (a*normPDF(a)-b*normPDF(b))/denom
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// smallestDenom — порог, ниже которого нормировочный знаменатель
// считается нулём и включается асимптотическая ветка.
const smallestDenom = 1e-294
