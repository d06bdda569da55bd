package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/archerduel/internal/ai"
	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

// Arena holds all configuration of the duel runner.
type Arena struct {
	LogLevel string `yaml:"log_level"`

	// Simulation
	TickInterval   time.Duration `yaml:"tick_interval"`    // fixed step (default: 20ms)
	Realtime       bool          `yaml:"realtime"`         // pace ticks with the wall clock
	RoundTimeLimit time.Duration `yaml:"round_time_limit"` // default: 60s
	Rounds         int           `yaml:"rounds"`
	Seed           uint64        `yaml:"seed"` // 0 picks a random seed per round

	Geometry Geometry    `yaml:"geometry"`
	Player   ActorConfig `yaml:"player"`
	Enemy    ActorConfig `yaml:"enemy"`
	AI       AIConfig    `yaml:"ai"`

	Database DatabaseConfig `yaml:"database"`
}

// Geometry describes the physics arena. Y points up.
type Geometry struct {
	Gravity          float64 `yaml:"gravity"`
	GroundY          float64 `yaml:"ground_y"`
	GroundMinX       float64 `yaml:"ground_min_x"`
	GroundMaxX       float64 `yaml:"ground_max_x"`
	PlayerSpawnX     float64 `yaml:"player_spawn_x"`
	EnemySpawnX      float64 `yaml:"enemy_spawn_x"`
	ActorWidth       float64 `yaml:"actor_width"`
	ActorHeight      float64 `yaml:"actor_height"`
	ArrowRadius      float64 `yaml:"arrow_radius"`
	FireRadius       float64 `yaml:"fire_radius"`
	WardRadius       float64 `yaml:"ward_radius"`
	LedgeProbeAhead  float64 `yaml:"ledge_probe_ahead"`
	LedgeProbeDepth  float64 `yaml:"ledge_probe_depth"`
	ProjectileMaxAge float64 `yaml:"projectile_max_age"` // seconds
}

// ActorConfig is the yaml form of combat.Profile.
type ActorConfig struct {
	Name               string  `yaml:"name"`
	MaxHealth          int32   `yaml:"max_health"`
	MoveSpeed          float64 `yaml:"move_speed"`
	BaseAttackCooldown float64 `yaml:"base_attack_cooldown"`
	LaunchSpeed        float64 `yaml:"launch_speed"`
	ArrowDamage        int32   `yaml:"arrow_damage"`
	AttackAngle        float64 `yaml:"attack_angle"`
	AttackRange        float64 `yaml:"attack_range"`
	InitialState       string  `yaml:"initial_state"`

	Skills SkillsConfig `yaml:"skills"`
}

// SkillsConfig lists the five skills in slot order.
type SkillsConfig struct {
	RapidShot  RapidShotConfig  `yaml:"rapid_shot"`
	MultiShot  MultiShotConfig  `yaml:"multi_shot"`
	FireArrow  FireArrowConfig  `yaml:"fire_arrow"`
	SpeedBoost SpeedBoostConfig `yaml:"speed_boost"`
	Shield     ShieldConfig     `yaml:"shield"`
}

// SkillCommon is shared by every skill.
type SkillCommon struct {
	Cooldown float64 `yaml:"cooldown"`
	AIWeight float64 `yaml:"ai_weight"`
}

type RapidShotConfig struct {
	SkillCommon   `yaml:",inline"`
	Duration      float64 `yaml:"duration"`
	AngleMin      float64 `yaml:"angle_min"`
	AngleMax      float64 `yaml:"angle_max"`
	SpeedModifier float64 `yaml:"speed_modifier"`
}

type MultiShotConfig struct {
	SkillCommon   `yaml:",inline"`
	Windup        float64 `yaml:"windup"`
	Angle         float64 `yaml:"angle"`
	Arrows        int     `yaml:"arrows"`
	Spread        float64 `yaml:"spread"`
	SpeedModifier float64 `yaml:"speed_modifier"`
}

type FireArrowConfig struct {
	SkillCommon   `yaml:",inline"`
	Windup        float64 `yaml:"windup"`
	Angle         float64 `yaml:"angle"`
	SpeedModifier float64 `yaml:"speed_modifier"`
	FireDamage    int32   `yaml:"fire_damage"`
	FireInterval  float64 `yaml:"fire_interval"`
	FireDuration  float64 `yaml:"fire_duration"`
}

type SpeedBoostConfig struct {
	SkillCommon `yaml:",inline"`
	Duration    float64 `yaml:"duration"`
	Multiplier  float64 `yaml:"multiplier"`
}

type ShieldConfig struct {
	SkillCommon `yaml:",inline"`
	Windup      float64 `yaml:"windup"`
	Hits        int32   `yaml:"hits"`
	Duration    float64 `yaml:"duration"`
}

// AIConfig is the yaml form of ai.Config.
type AIConfig struct {
	DetectRange            float64 `yaml:"detect_range"`
	AttackRange            float64 `yaml:"attack_range"`
	PatrolMin              float64 `yaml:"patrol_min"`
	PatrolMax              float64 `yaml:"patrol_max"`
	AttackMin              float64 `yaml:"attack_min"`
	AttackMax              float64 `yaml:"attack_max"`
	PostActionPatrolChance float64 `yaml:"post_action_patrol_chance"`
	BoundMinX              float64 `yaml:"bound_min_x"`
	BoundMaxX              float64 `yaml:"bound_max_x"`
}

// DefaultArena returns Arena config with the stock duel tuning.
func DefaultArena() Arena {
	aiCfg := ai.DefaultConfig()
	return Arena{
		LogLevel:       "info",
		TickInterval:   20 * time.Millisecond,
		RoundTimeLimit: 60 * time.Second,
		Rounds:         1,
		Geometry: Geometry{
			Gravity:          -20,
			GroundY:          0,
			GroundMinX:       -12,
			GroundMaxX:       12,
			PlayerSpawnX:     -5,
			EnemySpawnX:      5,
			ActorWidth:       0.8,
			ActorHeight:      1.6,
			ArrowRadius:      0.1,
			FireRadius:       1,
			WardRadius:       1.2,
			LedgeProbeAhead:  0.6,
			LedgeProbeDepth:  1,
			ProjectileMaxAge: 5,
		},
		Player: ActorConfig{
			Name:               "player",
			MaxHealth:          100,
			MoveSpeed:          5,
			BaseAttackCooldown: 0.5,
			LaunchSpeed:        10,
			ArrowDamage:        10,
			AttackAngle:        50,
			AttackRange:        30,
			InitialState:       "ATTACK",
			Skills:             defaultSkills(1.1, 1.0, 6, 1.5),
		},
		Enemy: ActorConfig{
			Name:               "enemy",
			MaxHealth:          1000,
			MoveSpeed:          1,
			BaseAttackCooldown: 2,
			LaunchSpeed:        8,
			ArrowDamage:        10,
			AttackAngle:        50,
			AttackRange:        aiCfg.AttackRange,
			InitialState:       "IDLE",
			Skills:             defaultSkills(1.2, 0.8, 3, 2),
		},
		AI: AIConfig{
			DetectRange:            aiCfg.DetectRange,
			AttackRange:            aiCfg.AttackRange,
			PatrolMin:              aiCfg.PatrolMin,
			PatrolMax:              aiCfg.PatrolMax,
			AttackMin:              aiCfg.AttackMin,
			AttackMax:              aiCfg.AttackMax,
			PostActionPatrolChance: aiCfg.PostActionPatrolChance,
			BoundMinX:              aiCfg.BoundMinX,
			BoundMaxX:              aiCfg.BoundMaxX,
		},
		Database: DefaultDatabase(),
	}
}

func defaultSkills(rapidMod, multiMod, boostDuration, boostMult float64) SkillsConfig {
	return SkillsConfig{
		RapidShot: RapidShotConfig{
			SkillCommon:   SkillCommon{Cooldown: 10, AIWeight: 0.3},
			Duration:      3,
			AngleMin:      30,
			AngleMax:      65,
			SpeedModifier: rapidMod,
		},
		MultiShot: MultiShotConfig{
			SkillCommon:   SkillCommon{Cooldown: 8, AIWeight: 0.3},
			Windup:        0.4,
			Angle:         50,
			Arrows:        10,
			Spread:        30,
			SpeedModifier: multiMod,
		},
		FireArrow: FireArrowConfig{
			SkillCommon:   SkillCommon{Cooldown: 8, AIWeight: 0.3},
			Windup:        0.4,
			Angle:         50,
			SpeedModifier: 1,
			FireDamage:    5,
			FireInterval:  1,
			FireDuration:  2,
		},
		SpeedBoost: SpeedBoostConfig{
			SkillCommon: SkillCommon{Cooldown: 12, AIWeight: 0.3},
			Duration:    boostDuration,
			Multiplier:  boostMult,
		},
		Shield: ShieldConfig{
			SkillCommon: SkillCommon{Cooldown: 15, AIWeight: 0.3},
			Windup:      0.3,
			Hits:        100,
			Duration:    6,
		},
	}
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value.
func (c Arena) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.RoundTimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("round_time_limit must be positive, got %s", c.RoundTimeLimit))
	}
	if c.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be at least 1, got %d", c.Rounds))
	}
	if c.Geometry.GroundMaxX <= c.Geometry.GroundMinX {
		errs = append(errs, errors.New("geometry: ground_max_x must exceed ground_min_x"))
	}
	if c.Geometry.ActorWidth <= 0 || c.Geometry.ActorHeight <= 0 {
		errs = append(errs, errors.New("geometry: actor size must be positive"))
	}
	if c.AI.PostActionPatrolChance < 0 || c.AI.PostActionPatrolChance > 1 {
		errs = append(errs, fmt.Errorf("ai: post_action_patrol_chance %v outside [0,1]", c.AI.PostActionPatrolChance))
	}
	if c.AI.PatrolMax < c.AI.PatrolMin || c.AI.AttackMax < c.AI.AttackMin {
		errs = append(errs, errors.New("ai: phase max below min"))
	}
	if c.AI.BoundMaxX <= c.AI.BoundMinX {
		errs = append(errs, errors.New("ai: bound_max_x must exceed bound_min_x"))
	}
	if c.Database.Enabled && c.Database.ConnectTimeout <= 0 {
		errs = append(errs, fmt.Errorf("database: connect_timeout must be positive, got %s", c.Database.ConnectTimeout))
	}
	for _, actor := range []ActorConfig{c.Player, c.Enemy} {
		if _, err := actor.Profile(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Profile converts the actor config into a combat profile.
func (c ActorConfig) Profile() (combat.Profile, error) {
	state, ok := model.ParseCombatState(c.InitialState)
	if !ok {
		return combat.Profile{}, fmt.Errorf("actor %s: unknown initial_state %q", c.Name, c.InitialState)
	}
	if state == model.StateDeath || state.IsSkillActive() {
		return combat.Profile{}, fmt.Errorf("actor %s: initial_state %s not allowed", c.Name, state)
	}
	if c.MaxHealth <= 0 {
		return combat.Profile{}, fmt.Errorf("actor %s: max_health must be positive", c.Name)
	}

	s := c.Skills
	abilities := []combat.Ability{
		{
			ID:            0,
			BaseCooldown:  s.RapidShot.Cooldown,
			AIWeight:      s.RapidShot.AIWeight,
			Duration:      s.RapidShot.Duration,
			AngleMin:      s.RapidShot.AngleMin,
			AngleMax:      s.RapidShot.AngleMax,
			SpeedModifier: s.RapidShot.SpeedModifier,
		},
		{
			ID:            1,
			BaseCooldown:  s.MultiShot.Cooldown,
			AIWeight:      s.MultiShot.AIWeight,
			Windup:        s.MultiShot.Windup,
			AngleDegrees:  s.MultiShot.Angle,
			ArrowCount:    s.MultiShot.Arrows,
			Spread:        s.MultiShot.Spread,
			SpeedModifier: s.MultiShot.SpeedModifier,
		},
		{
			ID:            2,
			BaseCooldown:  s.FireArrow.Cooldown,
			AIWeight:      s.FireArrow.AIWeight,
			Windup:        s.FireArrow.Windup,
			AngleDegrees:  s.FireArrow.Angle,
			SpeedModifier: s.FireArrow.SpeedModifier,
			Fire: model.GroundFire{
				DamagePerTick: s.FireArrow.FireDamage,
				TickInterval:  s.FireArrow.FireInterval,
				Duration:      s.FireArrow.FireDuration,
			},
		},
		{
			ID:              3,
			BaseCooldown:    s.SpeedBoost.Cooldown,
			AIWeight:        s.SpeedBoost.AIWeight,
			Duration:        s.SpeedBoost.Duration,
			SpeedMultiplier: s.SpeedBoost.Multiplier,
		},
		{
			ID:           4,
			BaseCooldown: s.Shield.Cooldown,
			AIWeight:     s.Shield.AIWeight,
			Windup:       s.Shield.Windup,
			Ward: model.Ward{
				Hits:     s.Shield.Hits,
				Duration: s.Shield.Duration,
			},
		},
	}

	// registry validation runs here so config errors surface at load time
	if _, err := combat.NewRegistry(abilities); err != nil {
		return combat.Profile{}, fmt.Errorf("actor %s: %w", c.Name, err)
	}

	return combat.Profile{
		Name:               c.Name,
		MaxHealth:          c.MaxHealth,
		MoveSpeed:          c.MoveSpeed,
		BaseAttackCooldown: c.BaseAttackCooldown,
		LaunchSpeed:        c.LaunchSpeed,
		ArrowDamage:        c.ArrowDamage,
		AttackAngle:        c.AttackAngle,
		AttackRange:        c.AttackRange,
		InitialState:       state,
		Abilities:          abilities,
	}, nil
}

// Scheduler converts the AI section into scheduler tunables.
func (c AIConfig) Scheduler() ai.Config {
	return ai.Config{
		DetectRange:            c.DetectRange,
		AttackRange:            c.AttackRange,
		PatrolMin:              c.PatrolMin,
		PatrolMax:              c.PatrolMax,
		AttackMin:              c.AttackMin,
		AttackMax:              c.AttackMax,
		PostActionPatrolChance: c.PostActionPatrolChance,
		BoundMinX:              c.BoundMinX,
		BoundMaxX:              c.BoundMaxX,
	}
}
