package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avirtanen/siderovalley/internal/ai"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

type interviewsTemplateData struct {
	Base       BaseTemplateData
	NPCs       []models.NPC
	LockedHint bool
}

func (app *application) interviewIndex(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	available := app.interviews.Available(state)
	data := interviewsTemplateData{
		Base:       app.newBaseTemplateData(r, state),
		NPCs:       available,
		LockedHint: len(available) < len(app.scenario.NPCs),
	}
	app.render(w, r, http.StatusOK, "interviews", data)
}

type interviewTemplateData struct {
	Base       BaseTemplateData
	NPC        models.NPC
	Mood       session.Mood
	Transcript []session.ChatMessage
}

func (app *application) interviewNPC(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	npcID := r.PathValue("npcID")
	npc := app.scenario.NPCByID(npcID)
	// Locked NPCs stay hidden, the trainee has to earn the lead first.
	if npc == nil || !state.GateOpen(npc.RequiresGate) {
		app.notFound(w, r)
		return
	}

	mood := state.Emotions[npcID].Mood
	if mood == "" {
		mood = session.MoodNeutral
	}

	data := interviewTemplateData{
		Base:       app.newBaseTemplateData(r, state),
		NPC:        *npc,
		Mood:       mood,
		Transcript: state.Transcripts[npcID],
	}
	app.render(w, r, http.StatusOK, "interview", data)
}

// askQuestion runs one interview turn. The authored fragment is recorded in
// the transcript right away; the phrased voice streams to the browser
// afterwards and never becomes the record.
func (app *application) askQuestion(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.sessionState(ctx)
	npcID := r.PathValue("npcID")
	question := strings.TrimSpace(r.PostFormValue("question"))

	npc := app.scenario.NPCByID(npcID)
	if npc == nil || !state.GateOpen(npc.RequiresGate) {
		app.notFound(w, r)
		return
	}

	// The first question to an NPC books the meeting against the budget.
	if state.Questions[npcID] == 0 {
		if state.Budget < npc.Cost {
			app.flash(ctx, "Your budget does not cover another interview.")
			app.saveState(ctx, state)
			http.Redirect(w, r, "/interviews", http.StatusSeeOther)
			return
		}
		state.Budget -= npc.Cost
	}

	resolved, phraseRequest, err := app.interviews.Resolve(state, npcID, question)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "resolve question"))
		return
	}
	app.interviews.RecordReply(state, npcID, resolved.Text)
	app.saveState(ctx, state)

	turnID := uuid.NewString()
	go app.phraseAnswer(turnID, phraseRequest)

	h := app.htmx.NewHandler(w, r)
	if !h.IsHxRequest() {
		http.Redirect(w, r, "/interviews/"+npcID, http.StatusSeeOther)
		return
	}

	app.renderChatMessages(w, r, []session.ChatMessage{
		{FromTrainee: true, Text: question},
	})
	// The reply paragraph fills in from the phrasing stream.
	_, _ = fmt.Fprintf(w,
		`<p class="msg-npc" hx-ext="sse" sse-connect="/interviews/%s/stream?turn=%s" sse-swap="chunk" hx-swap="beforeend"></p>`,
		npc.ID, turnID)
}

// phraseTimeout bounds how long a phrasing turn may keep its stream open,
// including waiting for the browser to connect.
const phraseTimeout = 30 * time.Second

// phraseAnswer voices one turn in a background goroutine and hands the chunk
// stream to the SSE handler through the broker.
func (app *application) phraseAnswer(turnID string, request ai.PhraseRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), phraseTimeout)
	defer cancel()

	channel := make(chan string)
	app.answerBroker.Publish(turnID, channel)
	defer app.answerBroker.Unpublish(turnID)
	defer close(channel)

	chunks, err := app.interviews.PhraseStream(ctx, request)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "phrasing stream failed, sending authored fragment",
			errors.SlogError(err))
		select {
		case channel <- request.Fragment:
		case <-ctx.Done():
		}
		return
	}

	for chunk := range chunks {
		select {
		case channel <- chunk:
		case <-ctx.Done():
			return
		}
	}
}

// streamAnswer serves the phrased reply of one turn as Server Sent Events.
// When the producer has already finished (or the browser reconnects), it
// falls back to the transcript text so the client always gets an answer.
func (app *application) streamAnswer(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	turnID := r.URL.Query().Get("turn")
	npcID := r.PathValue("npcID")

	subscription := app.answerBroker.Subscribe(turnID)
	channel, live := <-subscription
	if !live {
		writeServerSentEvent(w, "chunk", app.lastReply(r.Context(), npcID))
		flusher.Flush()
		writeServerSentEvent(w, "done", "")
		flusher.Flush()
		return
	}

	for chunk := range channel {
		writeServerSentEvent(w, "chunk", chunk)
		flusher.Flush()
	}
	writeServerSentEvent(w, "done", "")
	flusher.Flush()
}

// lastReply returns the most recent NPC line of the transcript, which holds
// the authored fragment for the turn.
func (app *application) lastReply(ctx context.Context, npcID string) string {
	state := app.sessionState(ctx)
	transcript := state.Transcripts[npcID]
	for i := len(transcript) - 1; i >= 0; i-- {
		if !transcript[i].FromTrainee {
			return transcript[i].Text
		}
	}
	return ""
}

// writeServerSentEvent writes one SSE event, splitting embedded newlines
// into separate data lines per the protocol.
func writeServerSentEvent(w io.Writer, event, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
}
