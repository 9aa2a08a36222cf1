package domain

import (
	"time"

	"github.com/google/uuid"
)

// skillEnvelope — множитель sigma в консервативной оценке навыка.
// Skill = Mu - 3*Sigma: с вероятностью ~99.7% истинный навык выше.
const skillEnvelope = 3.0

// Default rating prior.
const (
	// DefaultMu — среднее априорного распределения навыка.
	DefaultMu = 25.0

	// DefaultSigma — стандартное отклонение априорного распределения.
	DefaultSigma = DefaultMu / 3.0
)

// Player — участник турнира: бот-бинарник с текущей оценкой навыка.
//
// Навык моделируется гауссовским распределением (Mu, Sigma).
// Skill — производный скаляр для сортировки лидерборда; он всегда
// пересчитывается при изменении Mu или Sigma и никогда не хранится
// устаревшим.
type Player struct {
	// ID — уникальный идентификатор игрока.
	ID uuid.UUID `json:"id"`

	// Name — уникальное имя игрока. Используется как display-name
	// в игровом процессе и как стабильный ключ для блокировок.
	Name string `json:"name"`

	// ExecPath — путь к бинарнику бота. Для ядра это непрозрачная строка.
	ExecPath string `json:"exec_path"`

	// Mu — среднее гауссовского распределения навыка.
	Mu float64 `json:"mu"`

	// Sigma — стандартное отклонение. Инвариант: Sigma > 0 всегда.
	Sigma float64 `json:"sigma"`

	// Skill — консервативная оценка навыка (Mu - 3*Sigma).
	// Чистая функция от (Mu, Sigma).
	Skill float64 `json:"skill"`

	// MatchCount — количество завершённых матчей с участием игрока.
	MatchCount int `json:"match_count"`

	// CreatedAt — время регистрации игрока.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего обновления рейтинга.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayer создаёт игрока с априорным рейтингом.
func NewPlayer(name, execPath string) *Player {
	p := &Player{
		ID:        uuid.New(),
		Name:      name,
		ExecPath:  execPath,
		Mu:        DefaultMu,
		Sigma:     DefaultSigma,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	p.UpdateSkill()
	return p
}

// ApplyRating записывает новое распределение навыка и пересчитывает Skill.
func (p *Player) ApplyRating(mu, sigma float64) {
	p.Mu = mu
	p.Sigma = sigma
	p.UpdateSkill()
	p.MatchCount++
	p.UpdatedAt = time.Now()
}

// UpdateSkill пересчитывает производный скаляр Skill из (Mu, Sigma).
func (p *Player) UpdateSkill() {
	p.Skill = p.Mu - skillEnvelope*p.Sigma
}
