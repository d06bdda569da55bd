package match

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/udisondev/archerduel/internal/ai"
	"github.com/udisondev/archerduel/internal/arena"
	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/config"
)

// PlayerInput feeds the player controller once per tick.
type PlayerInput interface {
	Drive(pc *combat.PlayerController, dt float64)
}

// InputFunc adapts a function to PlayerInput.
type InputFunc func(pc *combat.PlayerController, dt float64)

func (f InputFunc) Drive(pc *combat.PlayerController, dt float64) { f(pc, dt) }

// Options customize a round. Zero values are fine.
type Options struct {
	Presenter combat.Presenter
	Input     PlayerInput
	Now       func() time.Time
}

// Round is one duel: two actors, the enemy scheduler and the physics arena.
// Tick order is player input, AI, player actor, enemy actor, physics.
//
// Not safe for concurrent use: one goroutine runs the round.
type Round struct {
	id   ulid.ULID
	cfg  config.Arena
	seed uint64

	world  *arena.World
	player *combat.Actor
	enemy  *combat.Actor
	pc     *combat.PlayerController
	sched  *ai.Scheduler
	ai     *ai.TickManager
	input  PlayerInput

	startedAt time.Time
	elapsed   float64
	limit     float64
	ticks     int
	finished  bool
	result    Result
}

// NewRound builds a round from config. cfg.Seed zero draws a fresh seed.
func NewRound(cfg config.Arena, opts Options) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = mrand.Uint64()
	}

	started := opts.Now()
	id, err := ulid.New(ulid.Timestamp(started), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating round id: %w", err)
	}

	world := arena.NewWorld(cfg.Geometry, mrand.New(mrand.NewPCG(seed, seed>>1|1)))

	playerProfile, err := cfg.Player.Profile()
	if err != nil {
		return nil, err
	}
	enemyProfile, err := cfg.Enemy.Profile()
	if err != nil {
		return nil, err
	}

	playerHandle := world.Handle(arena.SidePlayer)
	player, err := combat.NewActor(playerProfile.Name, combat.ActorPlayer, playerProfile, playerHandle.Ports(opts.Presenter))
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	enemyHandle := world.Handle(arena.SideEnemy)
	enemy, err := combat.NewActor(enemyProfile.Name, combat.ActorEnemy, enemyProfile, enemyHandle.Ports(opts.Presenter))
	if err != nil {
		return nil, fmt.Errorf("creating enemy: %w", err)
	}
	world.Bind(arena.SidePlayer, player.ID(), player)
	world.Bind(arena.SideEnemy, enemy.ID(), enemy)

	sched := ai.NewScheduler(enemy, cfg.AI.Scheduler(), mrand.New(mrand.NewPCG(seed, seed^0x5bd1e995)), enemyHandle)
	mgr := ai.NewTickManager()
	mgr.Register(enemy.ID(), sched)

	r := &Round{
		id:        id,
		cfg:       cfg,
		seed:      seed,
		world:     world,
		player:    player,
		enemy:     enemy,
		pc:        combat.NewPlayerController(player),
		sched:     sched,
		ai:        mgr,
		input:     opts.Input,
		startedAt: started,
		limit:     cfg.RoundTimeLimit.Seconds(),
	}

	slog.Info("round created",
		"round", id,
		"seed", seed,
		"time_limit", cfg.RoundTimeLimit)

	return r, nil
}

// ID returns the round id.
func (r *Round) ID() ulid.ULID { return r.id }

// Seed returns the seed driving every random choice of the round.
func (r *Round) Seed() uint64 { return r.seed }

// Player returns the player actor.
func (r *Round) Player() *combat.Actor { return r.player }

// Enemy returns the enemy actor.
func (r *Round) Enemy() *combat.Actor { return r.enemy }

// Controller returns the player input controller.
func (r *Round) Controller() *combat.PlayerController { return r.pc }

// Scheduler returns the enemy scheduler.
func (r *Round) Scheduler() *ai.Scheduler { return r.sched }

// World returns the physics arena.
func (r *Round) World() *arena.World { return r.world }

// Elapsed returns simulated seconds since the start.
func (r *Round) Elapsed() float64 { return r.elapsed }

// Remaining returns simulated seconds until the time limit.
func (r *Round) Remaining() float64 { return max(r.limit-r.elapsed, 0) }

// Finished reports whether the round is over.
func (r *Round) Finished() bool { return r.finished }

// Result returns the summary; valid once Finished.
func (r *Round) Result() Result { return r.result }

// Tick advances the round by dt seconds and reports whether it finished.
func (r *Round) Tick(dt float64) bool {
	if r.finished {
		return true
	}
	if dt <= 0 {
		return false
	}

	if r.input != nil {
		r.input.Drive(r.pc, dt)
	}
	r.ai.TickAll(dt)
	r.pc.Tick(dt)
	r.enemy.Tick(dt)
	r.world.Step(dt)

	r.elapsed += dt
	r.ticks++

	playerHP := r.player.Health().Current()
	enemyHP := r.enemy.Health().Current()
	timedOut := r.elapsed >= r.limit
	if playerHP <= 0 || enemyHP <= 0 || timedOut {
		r.finish(decide(playerHP, enemyHP, timedOut))
	}
	return r.finished
}

// Abort ends an unfinished round without a regular winner.
func (r *Round) Abort() {
	if r.finished {
		return
	}
	r.finish(WinnerEnemy, ReasonAborted)
}

func (r *Round) finish(winner Winner, reason Reason) {
	r.finished = true
	r.ai.StopAll()

	stats := r.world.Stats()
	r.result = Result{
		ID:           r.id,
		StartedAt:    r.startedAt,
		Duration:     time.Duration(r.elapsed * float64(time.Second)),
		Ticks:        r.ticks,
		Seed:         r.seed,
		Winner:       winner,
		Reason:       reason,
		PlayerHP:     r.player.Health().Current(),
		EnemyHP:      r.enemy.Health().Current(),
		PlayerSkills: r.player.Engine().Uses(),
		EnemySkills:  r.enemy.Engine().Uses(),
		PlayerArrows: stats.ArrowsFired[arena.SidePlayer],
		EnemyArrows:  stats.ArrowsFired[arena.SideEnemy],
		PlayerDamage: stats.DamageDealt[arena.SidePlayer],
		EnemyDamage:  stats.DamageDealt[arena.SideEnemy],
	}

	slog.Info("round finished",
		"round", r.id,
		"winner", winner,
		"reason", reason,
		"player_hp", r.result.PlayerHP,
		"enemy_hp", r.result.EnemyHP,
		"duration", r.result.Duration)
}

// Run ticks the round until it finishes or ctx is canceled. With cfg.Realtime
// the loop is paced by a ticker; otherwise it runs as fast as possible and
// checks ctx between ticks.
func (r *Round) Run(ctx context.Context) (Result, error) {
	dt := r.cfg.TickInterval.Seconds()

	if !r.cfg.Realtime {
		for !r.finished {
			if err := ctx.Err(); err != nil {
				r.Abort()
				return r.result, err
			}
			r.Tick(dt)
		}
		return r.result, nil
	}

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Abort()
			return r.result, ctx.Err()

		case <-ticker.C:
			if r.Tick(dt) {
				return r.result, nil
			}
		}
	}
}
