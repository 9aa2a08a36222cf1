package rating

// Default configuration values.
//
// Mu/Sigma приора задаются на стороне игрока (domain.DefaultMu/DefaultSigma);
// здесь — параметры самого инференса.
const (
	// defaultBeta — масштаб дисперсии перформанса (ширина класса):
	// насколько один матч может сдвинуть распределение. sigma0 / 2.
	defaultBeta = 25.0 / 6.0

	// defaultTau — шум динамики навыка: дисперсия, добавляемая перед
	// каждым обновлением. Не даёт sigma схлопнуться в ноль на длинной
	// истории. Для финалов турнира ставят 0 через Config.
	defaultTau = 0.008

	// defaultDrawProb — вероятность ничьей. В играх без настоящих
	// ничьих — почти ноль, но строго > 0: из неё выводится draw margin.
	defaultDrawProb = 0.001

	// defaultMinDelta — порог сходимости передачи сообщений.
	defaultMinDelta = 1e-4

	// defaultMaxIter — страховочный потолок итераций по цепочке.
	defaultMaxIter = 100
)

// Config — параметры одного вызова Rate.
type Config struct {
	// Beta — масштаб дисперсии перформанса (default: 25/6).
	Beta float64

	// Tau — шум динамики навыка, строго > 0 (default: 0.008).
	Tau float64

	// DrawProb — вероятность ничьей, в (0, 1) (default: 0.001).
	DrawProb float64

	// MinDelta — порог сходимости (default: 1e-4).
	MinDelta float64

	// MaxIter — максимум итераций передачи сообщений (default: 100).
	MaxIter int
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Beta:     defaultBeta,
		Tau:      defaultTau,
		DrawProb: defaultDrawProb,
		MinDelta: defaultMinDelta,
		MaxIter:  defaultMaxIter,
	}
}

// withDefaults заполняет нулевые поля значениями по умолчанию.
func (c Config) withDefaults() Config {
	if c.Beta == 0 {
		c.Beta = defaultBeta
	}
	if c.Tau == 0 {
		c.Tau = defaultTau
	}
	if c.DrawProb == 0 {
		c.DrawProb = defaultDrawProb
	}
	if c.MinDelta == 0 {
		c.MinDelta = defaultMinDelta
	}
	if c.MaxIter <= 0 {
		c.MaxIter = defaultMaxIter
	}
	return c
}

// valid проверяет согласованность параметров после withDefaults.
func (c Config) valid() bool {
	return c.Beta > 0 && c.Tau > 0 && c.DrawProb > 0 && c.DrawProb < 1
}
