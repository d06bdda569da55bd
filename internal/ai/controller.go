package ai

import "github.com/udisondev/archerduel/internal/model"

// Controller drives one actor autonomously.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller; further ticks are ignored
	Stop()

	// SetIntention forces the current phase
	SetIntention(intention model.Intention)

	// CurrentIntention returns the current phase
	CurrentIntention() model.Intention

	// Tick advances the controller by dt seconds
	Tick(dt float64)
}
