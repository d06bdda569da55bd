package combat

import "github.com/udisondev/archerduel/internal/model"

// PlayerController maps input events onto a player actor.
// Movement held during a skill window is only recorded and applied once the
// window closes.
type PlayerController struct {
	actor *Actor
	dir   float64
}

// NewPlayerController binds input handling to actor.
func NewPlayerController(actor *Actor) *PlayerController {
	return &PlayerController{actor: actor}
}

// Actor returns the controlled actor.
func (p *PlayerController) Actor() *Actor { return p.actor }

// Move starts or continues horizontal movement in the sign of dir.
func (p *PlayerController) Move(dir float64) {
	p.dir = dir
	p.actor.SetMoveDirection(dir)
	p.reconcile()
}

// Stop releases movement input.
func (p *PlayerController) Stop() {
	p.Move(0)
}

// UseSkill requests activation of ability id.
func (p *PlayerController) UseSkill(id int) bool {
	return p.actor.Engine().TryActivate(id)
}

// EffectFired forwards the animation "effect fired" event.
func (p *PlayerController) EffectFired(id int) bool {
	return p.actor.Engine().FireEffect(id)
}

// Tick reconciles state with the held input and advances the actor.
func (p *PlayerController) Tick(dt float64) {
	p.reconcile()
	p.actor.Tick(dt)
}

// reconcile moves between Move and Attack following the held input.
// Nothing changes while a skill window is open or after death.
func (p *PlayerController) reconcile() {
	a := p.actor
	if a.IsDead() || a.Engine().IsActive() {
		return
	}
	switch st := a.State(); {
	case p.dir != 0 && st != model.StateMove:
		a.SetState(model.StateMove)
	case p.dir == 0 && st == model.StateMove:
		a.SetState(model.StateAttack)
	}
}
