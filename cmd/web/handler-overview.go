package main

import (
	"net/http"

	"github.com/avirtanen/siderovalley/internal/epi"
	"github.com/avirtanen/siderovalley/internal/session"
)

type overviewTemplateData struct {
	Base           BaseTemplateData
	LineList       []epi.CaseRow
	Curve          []epi.CurvePoint
	AgeGroups      []epi.GroupCount
	Villages       []epi.GroupCount
	CaseDefinition string
	Hypotheses     []string
}

// overview shows the hospital line list and the descriptive picture.
// Viewing it checks off the first day-1 task.
func (app *application) overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)
	state.LineListViewed = true
	app.saveState(ctx, state)

	rows := epi.LineList(app.scenario)
	data := overviewTemplateData{
		Base:           app.newBaseTemplateData(r, state),
		LineList:       rows,
		Curve:          epi.Curve(rows),
		AgeGroups:      epi.CasesByAgeGroup(rows),
		Villages:       epi.CasesByVillage(rows),
		CaseDefinition: state.CaseDefinition,
		Hypotheses:     state.Hypotheses,
	}
	app.render(w, r, http.StatusOK, "overview", data)
}

func (app *application) submitCaseDefinition(w http.ResponseWriter, r *http.Request) {
	app.recordSubmission(w, r, session.SubmissionCaseDefinition, "case_definition", "/overview")
}

func (app *application) submitHypotheses(w http.ResponseWriter, r *http.Request) {
	app.recordSubmission(w, r, session.SubmissionHypotheses, "hypotheses", "/overview")
}

// recordSubmission is the shared handler body for the free-text submissions:
// store the field under the submission kind and bounce back to the page.
func (app *application) recordSubmission(w http.ResponseWriter, r *http.Request, kind, field, redirect string) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.sessionState(ctx)
	state.RecordSubmission(kind, r.PostFormValue(field))
	app.saveState(ctx, state)

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
