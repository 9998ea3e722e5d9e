package main

import (
	"net/http"
)

type alertTemplateData struct {
	Base BaseTemplateData
}

// home shows the day-0 outbreak alert. Everything else stays locked until
// the trainee takes the assignment.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	data := alertTemplateData{
		Base: app.newBaseTemplateData(r, state),
	}
	app.render(w, r, http.StatusOK, "alert", data)
}

func (app *application) acknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)
	state.AlertAcknowledged = true
	app.saveState(ctx, state)

	http.Redirect(w, r, "/overview", http.StatusSeeOther)
}
