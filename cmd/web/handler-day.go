package main

import (
	"fmt"
	"net/http"
	"strings"
)

// advanceDay ends the current day if its checklist is complete. A refused
// advance flashes the missing tasks instead of changing anything.
func (app *application) advanceDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)

	if missing := state.AdvanceDay(); len(missing) > 0 {
		app.flash(ctx, fmt.Sprintf("Before the day can end: %s.", strings.Join(missing, "; ")))
	}
	app.saveState(ctx, state)

	redirect := localPath(r.PostFormValue("return"))
	if redirect == "" {
		redirect = "/overview"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// localPath accepts only same-site paths so form-carried return targets
// cannot redirect off-site. Protocol-relative URLs start with two slashes.
func localPath(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return ""
}
