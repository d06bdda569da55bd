package match

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/udisondev/archerduel/internal/combat"
)

// Winner of a round.
type Winner int32

const (
	WinnerPlayer Winner = iota
	WinnerEnemy
)

func (w Winner) String() string {
	if w == WinnerEnemy {
		return "ENEMY"
	}
	return "PLAYER"
}

// Reason explains how a round ended.
type Reason string

const (
	ReasonKnockout Reason = "knockout"
	ReasonTimeout  Reason = "timeout"
	ReasonAborted  Reason = "aborted"
)

// Result is the summary of a finished round.
type Result struct {
	ID        ulid.ULID
	StartedAt time.Time
	Duration  time.Duration // simulated time
	Ticks     int
	Seed      uint64

	Winner   Winner
	Reason   Reason
	PlayerHP int32
	EnemyHP  int32

	PlayerSkills [combat.AbilityCount]int
	EnemySkills  [combat.AbilityCount]int

	PlayerArrows int
	EnemyArrows  int
	PlayerDamage int32
	EnemyDamage  int32
}

// decide applies the round rules: a knockout goes to whoever is still standing
// (the enemy if both fall on the same tick); on timeout the player wins ties.
func decide(playerHP, enemyHP int32, timedOut bool) (Winner, Reason) {
	if playerHP <= 0 || enemyHP <= 0 {
		if playerHP > 0 {
			return WinnerPlayer, ReasonKnockout
		}
		return WinnerEnemy, ReasonKnockout
	}
	if timedOut {
		if playerHP >= enemyHP {
			return WinnerPlayer, ReasonTimeout
		}
		return WinnerEnemy, ReasonTimeout
	}
	return WinnerEnemy, ReasonAborted
}
