package main

import (
	"net/http"
	"time"

	"github.com/avirtanen/siderovalley/internal/session"
)

type notebookTemplateData struct {
	Base    BaseTemplateData
	Entries []session.NotebookEntry
}

func (app *application) notebook(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	data := notebookTemplateData{
		Base:    app.newBaseTemplateData(r, state),
		Entries: state.Notebook,
	}
	app.render(w, r, http.StatusOK, "notebook", data)
}

func (app *application) addNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.sessionState(ctx)
	state.AddNote(r.PostFormValue("note"), time.Now())
	app.saveState(ctx, state)

	http.Redirect(w, r, "/notebook", http.StatusSeeOther)
}
