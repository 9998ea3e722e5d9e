package main

import (
	"context"
	"time"

	"github.com/avirtanen/siderovalley/internal/session"
)

const stateSessionKey = "state"
const flashSessionKey = "flash"

// sessionState returns the investigation state for the current session,
// seeding a fresh one on first contact. Mutations must be written back with
// saveState before the response is sent.
func (app *application) sessionState(ctx context.Context) *session.State {
	if state, ok := app.sessionManager.Get(ctx, stateSessionKey).(session.State); ok {
		return &state
	}
	return session.NewState(time.Now().UnixNano())
}

func (app *application) saveState(ctx context.Context, state *session.State) {
	app.sessionManager.Put(ctx, stateSessionKey, *state)
}

func (app *application) flash(ctx context.Context, message string) {
	app.sessionManager.Put(ctx, flashSessionKey, message)
}
