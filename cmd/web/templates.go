package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avirtanen/siderovalley/internal/contexthelpers"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/session"
	"github.com/avirtanen/siderovalley/internal/ssr"
	"github.com/avirtanen/siderovalley/ui"
)

// BaseTemplateData is available to every page under .Base.
type BaseTemplateData struct {
	Day               int
	Budget            int
	LabCredits        int
	AlertAcknowledged bool
	CSRFToken         string
	CSPNonce          string
	CurrentPath       string
	IsFacilitator     bool
	Flash             string
}

func (app *application) newBaseTemplateData(r *http.Request, state *session.State) BaseTemplateData {
	ctx := r.Context()
	return BaseTemplateData{
		Day:               state.Day,
		Budget:            state.Budget,
		LabCredits:        state.LabCredits,
		AlertAcknowledged: state.AlertAcknowledged,
		CSRFToken:         contexthelpers.CSRFToken(ctx),
		CSPNonce:          contexthelpers.CSPNonce(ctx),
		CurrentPath:       contexthelpers.CurrentPath(ctx),
		IsFacilitator:     contexthelpers.IsFacilitator(ctx),
		Flash:             app.sessionManager.PopString(ctx, flashSessionKey),
	}
}

var templateFuncs = template.FuncMap{
	// repeat draws text-mode bar charts, e.g. the epi curve.
	"repeat": func(s string, n int) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat(s, n)
	},
}

// pageTemplate parses the base layout, the shared partials, and the page
// template for the given name from the embedded filesystem.
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	files := []string{
		"templates/base.gohtml",
		"templates/partials/nav.gohtml",
		"templates/partials/chat-message.gohtml",
		fmt.Sprintf("templates/pages/%s.gohtml", pageName),
	}

	t, err := template.New(pageName).Funcs(templateFuncs).ParseFS(ui.Files, files...)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates", slog.String("page", pageName))
	}
	return t, nil
}

// render executes the page into a buffer and streams it through the
// custom-element expansion so templates can use elements like
// <button-primary> and <stat-pill>.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, err := app.pageTemplate(page)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("page", page)))
		return
	}

	w.WriteHeader(status)
	if err = ssr.ReplaceCustomElements(w, buf); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "render page", errors.SlogError(err))
	}
}

// renderChatMessages renders chat-message partials for htmx swaps into the
// transcript.
func (app *application) renderChatMessages(w http.ResponseWriter, r *http.Request, messages []session.ChatMessage) {
	t, err := template.New("chat-message").ParseFS(ui.Files, "templates/partials/chat-message.gohtml")
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse chat-message partial"))
		return
	}

	buf := new(bytes.Buffer)
	for _, msg := range messages {
		if err = t.ExecuteTemplate(buf, "chat-message", msg); err != nil {
			app.serverError(w, r, errors.Wrap(err, "execute chat-message partial"))
			return
		}
	}

	if err = ssr.ReplaceCustomElements(w, buf); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "render chat messages", errors.SlogError(err))
	}
}
