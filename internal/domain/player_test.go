package domain

import (
	"testing"

	"github.com/shaiso/Gauntlet/internal/rating"
)

// TestNewPlayerPrior: новый игрок получает априорный рейтинг,
// Skill посчитан сразу.
func TestNewPlayerPrior(t *testing.T) {
	p := NewPlayer("alpha", "/bots/alpha")
	if p.Mu != DefaultMu || p.Sigma != DefaultSigma {
		t.Errorf("неверный приор: mu=%v sigma=%v", p.Mu, p.Sigma)
	}
	if p.Skill != p.Mu-skillEnvelope*p.Sigma {
		t.Errorf("Skill не посчитан из приора: %v", p.Skill)
	}
	if p.MatchCount != 0 {
		t.Errorf("MatchCount нового игрока: %d", p.MatchCount)
	}
}

// TestUpdateSkill: Skill — чистая функция от (Mu, Sigma).
func TestUpdateSkill(t *testing.T) {
	p := NewPlayer("beta", "/bots/beta")
	p.Mu = 30
	p.Sigma = 2
	p.UpdateSkill()
	if p.Skill != 24 {
		t.Errorf("ожидался Skill 24, получено %v", p.Skill)
	}
}

// TestApplyRatingAfterMatch: полный цикл для двух игроков — рейтинг
// матча через rating.Rate, затем ApplyRating. Skill победителя растёт,
// проигравшего падает, MatchCount у обоих увеличивается.
func TestApplyRatingAfterMatch(t *testing.T) {
	winner := NewPlayer("alpha", "/bots/alpha")
	loser := NewPlayer("beta", "/bots/beta")
	prior := winner.Skill

	next, err := rating.Rate(
		[]rating.Rating{
			{Mu: winner.Mu, Sigma: winner.Sigma},
			{Mu: loser.Mu, Sigma: loser.Sigma},
		},
		[]int{0, 1},
		rating.DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("Rate вернул ошибку: %v", err)
	}

	winner.ApplyRating(next[0].Mu, next[0].Sigma)
	loser.ApplyRating(next[1].Mu, next[1].Sigma)

	if winner.Skill <= prior {
		t.Errorf("Skill победителя не вырос: %v -> %v", prior, winner.Skill)
	}
	if loser.Skill >= prior {
		t.Errorf("Skill проигравшего не упал: %v -> %v", prior, loser.Skill)
	}
	for _, p := range []*Player{winner, loser} {
		if p.Skill != p.Mu-skillEnvelope*p.Sigma {
			t.Errorf("Skill игрока %s устарел: %v при mu=%v sigma=%v",
				p.Name, p.Skill, p.Mu, p.Sigma)
		}
		if p.Sigma >= DefaultSigma {
			t.Errorf("sigma игрока %s не уменьшилась: %v", p.Name, p.Sigma)
		}
		if p.MatchCount != 1 {
			t.Errorf("MatchCount игрока %s: %d", p.Name, p.MatchCount)
		}
	}
}
