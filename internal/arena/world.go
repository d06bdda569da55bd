package arena

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/archerduel/internal/config"
	"github.com/udisondev/archerduel/internal/model"
)

// Side identifies one of the two duelists.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SideEnemy {
		return "ENEMY"
	}
	return "PLAYER"
}

func (s Side) opponent() Side {
	return 1 - s
}

// Target receives damage resolved by the world.
type Target interface {
	TakeDamage(amount int32) int32
	IsDead() bool
}

const (
	groundCategory uint = 1 << 0
	actorCategory  uint = 1 << 1
	arrowCategory  uint = 1 << 2

	groundThickness = 0.2
	fallLimit       = 20.0
)

// Stats counts what happened in the arena, per side.
type Stats struct {
	ArrowsFired [2]int
	ArrowsHit   [2]int
	Absorbed    [2]int // opponent arrows stopped by this side's wards
	DamageDealt [2]int32
}

// World is the physics host of a duel. It owns a chipmunk space with a flat
// ground segment, one box body per actor and every projectile in flight.
// It implements the movement, range, spawn and terrain ports of both actors.
//
// Not safe for concurrent use.
type World struct {
	geo    config.Geometry
	space  *cp.Space
	ground *cp.Shape
	rng    *rand.Rand
	sides  [2]*Handle

	arrows []*arrow
	fires  []*groundFire
	wards  []*ward
	stats  Stats
}

// NewWorld builds the arena. rng drives spread angles and must not be shared
// with another goroutine.
func NewWorld(geo config.Geometry, rng *rand.Rand) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: geo.Gravity})

	groundY := geo.GroundY - groundThickness
	ground := cp.NewSegment(space.StaticBody,
		cp.Vector{X: geo.GroundMinX, Y: groundY},
		cp.Vector{X: geo.GroundMaxX, Y: groundY},
		groundThickness)
	ground.SetFriction(1)
	ground.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, groundCategory, cp.ALL_CATEGORIES))
	space.AddShape(ground)

	w := &World{
		geo:    geo,
		space:  space,
		ground: ground,
		rng:    rng,
	}
	w.sides[SidePlayer] = w.newHandle(SidePlayer, geo.PlayerSpawnX, model.FacingRight)
	w.sides[SideEnemy] = w.newHandle(SideEnemy, geo.EnemySpawnX, model.FacingLeft)
	return w
}

func (w *World) newHandle(s Side, x float64, facing model.Facing) *Handle {
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: w.geo.GroundY + w.geo.ActorHeight/2})

	shape := cp.NewBox(body, w.geo.ActorWidth, w.geo.ActorHeight, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, actorCategory, groundCategory|actorCategory))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	return &Handle{world: w, side: s, body: body, shape: shape, facing: facing}
}

// Handle returns the port adapter of side s.
func (w *World) Handle(s Side) *Handle {
	return w.sides[s]
}

// Bind attaches the damage receiver and owner id of side s.
func (w *World) Bind(s Side, ownerID string, t Target) {
	h := w.sides[s]
	h.ownerID = ownerID
	h.target = t
}

// Stats returns the arena counters.
func (w *World) Stats() Stats {
	return w.stats
}

// Projectiles returns the number of arrows in flight.
func (w *World) Projectiles() int { return len(w.arrows) }

// Wards returns the number of active wards.
func (w *World) Wards() int { return len(w.wards) }

// Fires returns the number of burning ground fires.
func (w *World) Fires() int { return len(w.fires) }

// Step integrates physics and resolves hits, wards and ground fires.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)

	w.stepArrows(dt)
	w.stepFires(dt)
	w.stepWards(dt)
}

// spawn turns a launch into arrows or a ward owned by side s.
func (w *World) spawn(s Side, l model.Launch) {
	h := w.sides[s]
	switch l.Kind {
	case model.LaunchWard:
		w.wards = append(w.wards, &ward{
			owner:     s,
			pos:       h.Position(),
			hits:      l.Ward.Hits,
			remaining: l.Ward.Duration,
		})
	case model.LaunchArrow, model.LaunchFireArrow:
		for _, angle := range l.Angles(w.rng.Float64) {
			w.arrows = append(w.arrows, w.newArrow(h, l, angle))
			w.stats.ArrowsFired[s]++
		}
	}

	if IsDebugEnabled() {
		slog.Debug("arena spawn",
			"side", s,
			"kind", l.Kind,
			"angle", l.AngleDegrees,
			"count", l.Count)
	}
}

func (w *World) newArrow(h *Handle, l model.Launch, angle float64) *arrow {
	rad := angle * math.Pi / 180
	origin := h.Position()
	origin.X += h.facing.Sign() * (w.geo.ActorWidth/2 + w.geo.ArrowRadius)

	body := cp.NewBody(0.1, cp.MomentForCircle(0.1, 0, w.geo.ArrowRadius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: origin.X, Y: origin.Y})
	body.SetVelocityVector(cp.Vector{X: math.Cos(rad) * l.Speed, Y: math.Sin(rad) * l.Speed})

	shape := cp.NewCircle(body, w.geo.ArrowRadius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, arrowCategory, 0))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	a := &arrow{owner: h.side, body: body, shape: shape, damage: l.Damage}
	if l.Kind == model.LaunchFireArrow {
		fire := l.Fire
		a.fire = &fire
	}
	return a
}

func (w *World) removeArrow(a *arrow) {
	w.space.RemoveShape(a.shape)
	w.space.RemoveBody(a.body)
}

func (w *World) stepArrows(dt float64) {
	kept := w.arrows[:0]
	for _, a := range w.arrows {
		a.age += dt
		if w.resolveArrow(a) {
			w.removeArrow(a)
			continue
		}
		kept = append(kept, a)
	}
	clear(w.arrows[len(kept):])
	w.arrows = kept
}

// resolveArrow reports whether the arrow is spent.
func (w *World) resolveArrow(a *arrow) bool {
	p := a.body.Position()
	pos := model.Vec2{X: p.X, Y: p.Y}
	opp := a.owner.opponent()

	for _, wd := range w.wards {
		if wd.owner == opp && wd.hits > 0 && wd.pos.DistanceTo(pos) <= w.geo.WardRadius {
			wd.hits--
			w.stats.Absorbed[opp]++
			return true
		}
	}

	if target := w.sides[opp]; w.overlapsActor(target, pos) {
		if target.target != nil && !target.target.IsDead() {
			dealt := target.target.TakeDamage(a.damage)
			w.stats.ArrowsHit[a.owner]++
			w.stats.DamageDealt[a.owner] += dealt
		}
		return true
	}

	if pos.Y <= w.geo.GroundY+w.geo.ArrowRadius && pos.X >= w.geo.GroundMinX && pos.X <= w.geo.GroundMaxX {
		if a.fire != nil {
			w.fires = append(w.fires, &groundFire{
				owner:     a.owner,
				x:         pos.X,
				fire:      *a.fire,
				remaining: a.fire.Duration,
			})
		}
		return true
	}

	return a.age >= w.geo.ProjectileMaxAge || pos.Y < w.geo.GroundY-fallLimit
}

func (w *World) overlapsActor(h *Handle, pos model.Vec2) bool {
	c := h.Position()
	return math.Abs(pos.X-c.X) <= w.geo.ActorWidth/2+w.geo.ArrowRadius &&
		math.Abs(pos.Y-c.Y) <= w.geo.ActorHeight/2+w.geo.ArrowRadius
}

func (w *World) stepFires(dt float64) {
	kept := w.fires[:0]
	for _, f := range w.fires {
		f.remaining -= dt
		f.acc += dt
		for f.fire.TickInterval > 0 && f.acc >= f.fire.TickInterval {
			f.acc -= f.fire.TickInterval
			w.burn(f)
		}
		if f.remaining > 0 {
			kept = append(kept, f)
		}
	}
	clear(w.fires[len(kept):])
	w.fires = kept
}

func (w *World) burn(f *groundFire) {
	opp := f.owner.opponent()
	h := w.sides[opp]
	if h.target == nil || h.target.IsDead() {
		return
	}
	if math.Abs(h.Position().X-f.x) > w.geo.FireRadius+w.geo.ActorWidth/2 {
		return
	}
	w.stats.DamageDealt[f.owner] += h.target.TakeDamage(f.fire.DamagePerTick)
}

func (w *World) stepWards(dt float64) {
	kept := w.wards[:0]
	for _, wd := range w.wards {
		wd.remaining -= dt
		if wd.remaining > 0 && wd.hits > 0 {
			kept = append(kept, wd)
		}
	}
	clear(w.wards[len(kept):])
	w.wards = kept
}

type arrow struct {
	owner  Side
	body   *cp.Body
	shape  *cp.Shape
	damage int32
	fire   *model.GroundFire
	age    float64
}

type groundFire struct {
	owner     Side
	x         float64
	fire      model.GroundFire
	remaining float64
	acc       float64
}

type ward struct {
	owner     Side
	pos       model.Vec2
	hits      int32
	remaining float64
}
