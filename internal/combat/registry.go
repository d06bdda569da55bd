package combat

import (
	"fmt"

	"github.com/udisondev/archerduel/internal/model"
)

// Registry is the immutable per-actor ability table.
type Registry struct {
	abilities [AbilityCount]Ability
}

// NewRegistry validates the five ability descriptors and freezes them.
// Slot i must carry ID i; the kind is derived from the slot.
func NewRegistry(abilities []Ability) (*Registry, error) {
	if len(abilities) != AbilityCount {
		return nil, fmt.Errorf("registry needs %d abilities, got %d", AbilityCount, len(abilities))
	}

	r := &Registry{}
	for i, ab := range abilities {
		if ab.ID != i {
			return nil, fmt.Errorf("ability slot %d carries id %d", i, ab.ID)
		}
		kind, _ := KindForID(i)
		ab.Kind = kind
		ab.excludes = allSkillsAndDeath
		if err := ab.validate(); err != nil {
			return nil, err
		}
		r.abilities[i] = ab
	}
	return r, nil
}

// Get returns the ability for id.
func (r *Registry) Get(id int) (Ability, error) {
	if id < 0 || id >= AbilityCount {
		return Ability{}, fmt.Errorf("%w: %d", ErrInvalidAbilityIndex, id)
	}
	return r.abilities[id], nil
}

func (r *Registry) ability(id int) *Ability {
	return &r.abilities[id]
}

// Weights returns the AI weights in id order.
func (r *Registry) Weights() [AbilityCount]float64 {
	var w [AbilityCount]float64
	for i := range r.abilities {
		w[i] = r.abilities[i].AIWeight
	}
	return w
}

// ReadySet returns, in ascending id order, the abilities whose cooldown has elapsed
// and whose exclusivity class allows starting from state.
func (r *Registry) ReadySet(cooldowns *[AbilityCount]model.Cooldown, state model.CombatState) []int {
	ready := make([]int, 0, AbilityCount)
	for i := range r.abilities {
		if !cooldowns[i].IsReady() {
			continue
		}
		if r.abilities[i].Conflicts(state) {
			continue
		}
		ready = append(ready, i)
	}
	return ready
}
