package main

import (
	"net/http"
	"time"

	"github.com/justinas/alice"

	"github.com/avirtanen/siderovalley/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// Static assets are embedded and fingerprint-free, so cache headers are
	// the aggressive kind.
	mux.Handle("GET /static/", cacheForeverHeaders(http.FileServerFS(ui.Files)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	timeout := func(next http.Handler) http.Handler {
		return timeoutHandler(next, 5*time.Second) //nolint:mnd // matches the server write timeout
	}
	session := alice.New(timeout, app.sessionManager.LoadAndSave, noSurf, app.commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /alert/acknowledge", session.ThenFunc(app.acknowledgeAlert))

	mux.Handle("GET /overview", session.ThenFunc(app.overview))
	mux.Handle("POST /overview/case-definition", session.ThenFunc(app.submitCaseDefinition))
	mux.Handle("POST /overview/hypotheses", session.ThenFunc(app.submitHypotheses))

	mux.Handle("GET /map", session.ThenFunc(app.spotMap))

	mux.Handle("GET /interviews", session.ThenFunc(app.interviewIndex))
	mux.Handle("GET /interviews/{npcID}", session.ThenFunc(app.interviewNPC))
	mux.Handle("POST /interviews/{npcID}/ask", session.ThenFunc(app.askQuestion))
	// SSE needs the session loaded without the deferred write of LoadAndSave.
	mux.Handle("GET /interviews/{npcID}/stream", alice.New(app.serverSentEventMiddleware).ThenFunc(app.streamAnswer))

	mux.Handle("POST /day/advance", session.ThenFunc(app.advanceDay))

	mux.Handle("GET /study", session.ThenFunc(app.study))
	mux.Handle("POST /study/design", session.ThenFunc(app.submitStudyDesign))
	mux.Handle("POST /study/questionnaire", session.ThenFunc(app.submitQuestionnaire))
	mux.Handle("POST /study/dataset", session.ThenFunc(app.generateDataset))
	mux.Handle("POST /study/analyze", session.ThenFunc(app.analyzeDataset))

	mux.Handle("GET /lab", session.ThenFunc(app.labPage))
	mux.Handle("POST /lab/order", session.ThenFunc(app.orderSample))

	mux.Handle("GET /notebook", session.ThenFunc(app.notebook))
	mux.Handle("POST /notebook", session.ThenFunc(app.addNote))

	mux.Handle("GET /outcome", session.ThenFunc(app.outcome))
	mux.Handle("POST /outcome/diagnosis", session.ThenFunc(app.submitDiagnosis))
	mux.Handle("POST /outcome/recommendations", session.ThenFunc(app.submitRecommendations))
	mux.Handle("POST /outcome/submit", session.ThenFunc(app.deliverBriefing))

	mux.Handle("GET /facilitator", session.Append(app.facilitatorOnly).ThenFunc(app.facilitator))

	return app.recoverPanic(app.logRequest(app.secureHeaders(mux)))
}
