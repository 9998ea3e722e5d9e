package main

import (
	"net/http"

	"github.com/avirtanen/siderovalley/internal/consequence"
	"github.com/avirtanen/siderovalley/internal/session"
)

type outcomeTemplateData struct {
	Base            BaseTemplateData
	Diagnosis       string
	Recommendations []string
	Outcome         *consequence.Outcome
}

func (app *application) outcome(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	data := outcomeTemplateData{
		Base:            app.newBaseTemplateData(r, state),
		Diagnosis:       state.Diagnosis,
		Recommendations: state.Recommendations,
	}
	if state.Debriefed {
		outcome := app.scorecard.Evaluate(state, app.scenario)
		data.Outcome = &outcome
	}
	app.render(w, r, http.StatusOK, "outcome", data)
}

func (app *application) submitDiagnosis(w http.ResponseWriter, r *http.Request) {
	app.recordSubmission(w, r, session.SubmissionDiagnosis, "diagnosis", "/outcome")
}

func (app *application) submitRecommendations(w http.ResponseWriter, r *http.Request) {
	app.recordSubmission(w, r, session.SubmissionRecommendations, "recommendations", "/outcome")
}

// deliverBriefing closes the investigation and unlocks the debrief. It
// refuses without a diagnosis; everything else just scores what it finds.
func (app *application) deliverBriefing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)

	if state.Diagnosis == "" {
		app.flash(ctx, "Enter a final diagnosis before briefing the district leadership.")
	} else {
		state.Debriefed = true
	}
	app.saveState(ctx, state)

	http.Redirect(w, r, "/outcome", http.StatusSeeOther)
}
