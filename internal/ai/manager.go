package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// TickManager holds the AI controllers of a round and advances them together.
// Registration may happen from any goroutine; TickAll is called by the
// simulation loop only.
type TickManager struct {
	controllers     sync.Map // map[string]Controller, actorID -> controller
	controllerCount atomic.Int32
}

// NewTickManager creates an empty manager.
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register starts controller and adds it under actorID.
// A controller already registered under the same id is stopped and replaced.
func (m *TickManager) Register(actorID string, controller Controller) {
	if prev, loaded := m.controllers.Swap(actorID, controller); loaded {
		prev.(Controller).Stop()
	} else {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("AI controller registered",
		"actor", actorID,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes the controller of actorID.
func (m *TickManager) Unregister(actorID string) {
	value, ok := m.controllers.LoadAndDelete(actorID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)
	value.(Controller).Stop()

	slog.Debug("AI controller unregistered", "actor", actorID)
}

// TickAll advances every registered controller by dt seconds.
func (m *TickManager) TickAll(dt float64) {
	count := 0
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(dt)
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count, "dt", dt)
	}
}

// StopAll stops and removes every controller.
func (m *TickManager) StopAll() {
	m.controllers.Range(func(key, _ any) bool {
		m.Unregister(key.(string))
		return true
	})
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller of actorID.
func (m *TickManager) GetController(actorID string) (Controller, error) {
	value, ok := m.controllers.Load(actorID)
	if !ok {
		return nil, fmt.Errorf("controller not found for actor %s", actorID)
	}
	return value.(Controller), nil
}
