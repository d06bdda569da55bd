package combat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/udisondev/archerduel/internal/model"
)

// stateByName maps fsm state names back to combat states.
var stateByName = func() map[string]model.CombatState {
	m := make(map[string]model.CombatState, len(model.AllCombatStates))
	for _, s := range model.AllCombatStates {
		m[s.String()] = s
	}
	return m
}()

// StateMachine holds the combat state of one actor and enforces legal transitions.
//
// Transition table:
//   - Idle, Move, Attack are reachable from every live state (a skill window ends in Attack or Move)
//   - SkillNActive is reachable only from Idle, Move or Attack, so one skill never replaces another
//   - Death is reachable from every live state and has no outgoing events
type StateMachine struct {
	actorID   string
	fsm       *fsm.FSM
	presenter Presenter
	onDeath   []func()
}

// NewStateMachine creates a state machine starting at initial.
// The initial state is not announced to the presenter.
func NewStateMachine(actorID string, initial model.CombatState, presenter Presenter) *StateMachine {
	if presenter == nil {
		presenter = PresenterFunc(func(string, model.CombatState) {})
	}

	var live, grounded []string
	for _, s := range model.AllCombatStates {
		if s == model.StateDeath {
			continue
		}
		live = append(live, s.String())
		if !s.IsSkillActive() {
			grounded = append(grounded, s.String())
		}
	}

	events := make(fsm.Events, 0, len(model.AllCombatStates))
	for _, s := range model.AllCombatStates {
		src := live
		if s.IsSkillActive() {
			src = grounded
		}
		events = append(events, fsm.EventDesc{
			Name: eventName(s),
			Src:  src,
			Dst:  s.String(),
		})
	}

	sm := &StateMachine{
		actorID:   actorID,
		presenter: presenter,
	}
	sm.fsm = fsm.NewFSM(initial.String(), events, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			if IsDebugEnabled() {
				slog.Debug("combat state changed",
					"actor", actorID,
					"from", e.Src,
					"to", e.Dst)
			}
			sm.presenter.OnStateChanged(actorID, stateByName[e.Dst])
		},
		"enter_" + model.StateDeath.String(): func(_ context.Context, _ *fsm.Event) {
			hooks := sm.onDeath
			sm.onDeath = nil
			for _, fn := range hooks {
				fn()
			}
		},
	})
	return sm
}

func eventName(s model.CombatState) string {
	return "to_" + s.String()
}

// Current returns the current state.
func (sm *StateMachine) Current() model.CombatState {
	return stateByName[sm.fsm.Current()]
}

// IsDead reports whether the machine reached Death.
func (sm *StateMachine) IsDead() bool {
	return sm.fsm.Current() == model.StateDeath.String()
}

// OnDeath registers a hook run once when Death is entered.
func (sm *StateMachine) OnDeath(fn func()) {
	if fn != nil {
		sm.onDeath = append(sm.onDeath, fn)
	}
}

// SetState fires the event leading to next. It returns false without side effects
// when the table has no such transition from the current state, including
// next == current and anything after Death. On change the presenter is notified once.
func (sm *StateMachine) SetState(next model.CombatState) bool {
	err := sm.fsm.Event(context.Background(), eventName(next))
	if err == nil {
		return true
	}

	var same fsm.NoTransitionError
	if !errors.As(err, &same) && IsDebugEnabled() {
		slog.Debug("combat transition rejected",
			"actor", sm.actorID,
			"from", sm.fsm.Current(),
			"to", next,
			"err", err)
	}
	return false
}
