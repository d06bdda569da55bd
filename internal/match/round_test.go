package match

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/archerduel/internal/arena"
	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/config"
	"github.com/udisondev/archerduel/internal/model"
)

func testConfig() config.Arena {
	cfg := config.DefaultArena()
	cfg.Seed = 7
	cfg.TickInterval = 20 * time.Millisecond
	cfg.RoundTimeLimit = 5 * time.Second
	return cfg
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		player     int32
		enemy      int32
		timedOut   bool
		wantWinner Winner
		wantReason Reason
	}{
		{"enemy down", 40, 0, false, WinnerPlayer, ReasonKnockout},
		{"player down", 0, 700, false, WinnerEnemy, ReasonKnockout},
		{"both down", 0, 0, false, WinnerEnemy, ReasonKnockout},
		{"knockout beats timeout", 10, 0, true, WinnerPlayer, ReasonKnockout},
		{"timeout tie goes to player", 100, 100, true, WinnerPlayer, ReasonTimeout},
		{"timeout player ahead", 100, 90, true, WinnerPlayer, ReasonTimeout},
		{"timeout enemy ahead", 100, 1000, true, WinnerEnemy, ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r := decide(tt.player, tt.enemy, tt.timedOut)
			assert.Equal(t, tt.wantWinner, w)
			assert.Equal(t, tt.wantReason, r)
		})
	}
}

func TestNewRound_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds = 0

	_, err := NewRound(cfg, Options{})
	assert.Error(t, err)
}

func TestNewRound_InitialSetup(t *testing.T) {
	var states []model.CombatState
	presenter := combat.PresenterFunc(func(_ string, s model.CombatState) { states = append(states, s) })

	r, err := NewRound(testConfig(), Options{Presenter: presenter})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), r.Seed())
	assert.Equal(t, model.StateAttack, r.Player().State())
	assert.Equal(t, model.StateIdle, r.Enemy().State())
	assert.Equal(t, int32(100), r.Player().Health().Max())
	assert.Equal(t, int32(1000), r.Enemy().Health().Max())
	assert.Equal(t, model.IntentionIdle, r.Scheduler().CurrentIntention())
	assert.Equal(t, 5.0, r.Remaining())
	assert.Empty(t, states)
	assert.False(t, r.Finished())
}

func TestRound_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		r, err := NewRound(testConfig(), Options{})
		require.NoError(t, err)
		assert.False(t, seen[r.ID().String()])
		seen[r.ID().String()] = true
	}
}

func TestRound_KnockoutEndsRound(t *testing.T) {
	r, err := NewRound(testConfig(), Options{})
	require.NoError(t, err)

	r.Tick(0.02)
	r.Enemy().Kill()

	assert.True(t, r.Tick(0.02))
	res := r.Result()
	assert.Equal(t, WinnerPlayer, res.Winner)
	assert.Equal(t, ReasonKnockout, res.Reason)
	assert.Equal(t, int32(0), res.EnemyHP)
	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, r.ID(), res.ID)
	assert.Equal(t, model.IntentionDead, r.Scheduler().CurrentIntention())

	assert.True(t, r.Tick(0.02), "finished rounds stay finished")
	assert.Equal(t, 2, r.Result().Ticks)
}

func TestRound_TimeoutTieGoesToPlayer(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.MaxHealth = 100
	cfg.RoundTimeLimit = 500 * time.Millisecond
	// keep both archers far apart and out of each other's reach
	cfg.Geometry.PlayerSpawnX = -11
	cfg.Geometry.EnemySpawnX = 11
	cfg.AI.BoundMinX = 10
	cfg.AI.BoundMaxX = 11.5

	r, err := NewRound(cfg, Options{})
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Equal(t, WinnerPlayer, res.Winner)
	assert.InDelta(t, 0.5, res.Duration.Seconds(), 0.03)
}

func TestRound_RunCanceled(t *testing.T) {
	r, err := NewRound(testConfig(), Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ReasonAborted, res.Reason)
	assert.True(t, r.Finished())
}

func TestRound_RealtimeRun(t *testing.T) {
	cfg := testConfig()
	cfg.Realtime = true
	cfg.TickInterval = time.Millisecond
	cfg.RoundTimeLimit = 30 * time.Millisecond

	r, err := NewRound(cfg, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReasonTimeout, res.Reason)
}

func TestRound_AutoPilotDuel(t *testing.T) {
	cfg := testConfig()
	cfg.RoundTimeLimit = 60 * time.Second

	var pilot *AutoPilot
	r, err := NewRound(cfg, Options{Input: InputFunc(func(pc *combat.PlayerController, dt float64) {
		pilot.Drive(pc, dt)
	})})
	require.NoError(t, err)
	pilot = NewAutoPilot(r.World().Handle(arena.SidePlayer), rand.New(rand.NewPCG(3, 4)))

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, r.Finished())
	assert.Positive(t, res.Ticks)
	assert.Positive(t, res.PlayerArrows)
	assert.LessOrEqual(t, res.Duration, cfg.RoundTimeLimit+cfg.TickInterval)
	used := 0
	for _, n := range res.PlayerSkills {
		used += n
	}
	assert.Positive(t, used, "pilot should have cast skills")
}
