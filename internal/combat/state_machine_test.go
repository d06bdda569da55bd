package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/archerduel/internal/model"
)

func TestStateMachine_NotifiesOncePerChange(t *testing.T) {
	rec := &recorder{}
	sm := NewStateMachine("a", model.StateIdle, rec)

	assert.True(t, sm.SetState(model.StateMove))
	assert.False(t, sm.SetState(model.StateMove), "same state is a no-op")
	assert.True(t, sm.SetState(model.StateAttack))

	assert.Equal(t, []model.CombatState{model.StateMove, model.StateAttack}, rec.states)
	assert.Equal(t, model.StateAttack, sm.Current())
}

func TestStateMachine_DeathIsAbsorbing(t *testing.T) {
	rec := &recorder{}
	sm := NewStateMachine("a", model.StateAttack, rec)

	hooks := 0
	sm.OnDeath(func() { hooks++ })

	assert.True(t, sm.SetState(model.StateDeath))
	for _, s := range model.AllCombatStates {
		assert.False(t, sm.SetState(s), "transition to %s after death", s)
	}

	assert.True(t, sm.IsDead())
	assert.Equal(t, 1, hooks)
	assert.Equal(t, []model.CombatState{model.StateDeath}, rec.states)
}

func TestStateMachine_TransitionTable(t *testing.T) {
	for _, from := range model.AllCombatStates {
		if from == model.StateDeath {
			continue
		}
		for _, to := range model.AllCombatStates {
			want := from != to && !(from.IsSkillActive() && to.IsSkillActive())

			rec := &recorder{}
			sm := NewStateMachine("a", from, rec)
			assert.Equal(t, want, sm.SetState(to), "%s -> %s", from, to)

			if want {
				assert.Equal(t, to, sm.Current())
				assert.Equal(t, []model.CombatState{to}, rec.states)
			} else {
				assert.Equal(t, from, sm.Current())
				assert.Empty(t, rec.states)
			}
		}
	}
}

func TestStateMachine_SkillCannotReplaceSkill(t *testing.T) {
	sm := NewStateMachine("a", model.StateAttack, nil)

	assert.True(t, sm.SetState(model.StateSkill1Active))
	assert.False(t, sm.SetState(model.StateSkill4Active))
	assert.True(t, sm.SetState(model.StateMove), "a skill window ends in Move")
	assert.True(t, sm.SetState(model.StateSkill4Active))
	assert.Equal(t, model.StateSkill4Active, sm.Current())
}

func TestStateMachine_DeathHooksSeeDeath(t *testing.T) {
	sm := NewStateMachine("a", model.StateSkill2Active, nil)

	var seen model.CombatState
	sm.OnDeath(func() { seen = sm.Current() })

	assert.True(t, sm.SetState(model.StateDeath))
	assert.Equal(t, model.StateDeath, seen)
	assert.False(t, sm.SetState(model.StateDeath))
}

func TestStateMachine_UnknownStateRejected(t *testing.T) {
	sm := NewStateMachine("a", model.StateIdle, nil)

	assert.False(t, sm.SetState(model.CombatState(99)))
	assert.Equal(t, model.StateIdle, sm.Current())
}
