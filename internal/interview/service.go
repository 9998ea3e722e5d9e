// Package interview orchestrates one question-and-answer turn: tone and
// emotion, disclosure resolution, and phrasing. Handlers call Ask (or
// Resolve plus a streaming phraser) and persist the mutated session state.
package interview

import (
	"context"
	"log/slog"

	"github.com/avirtanen/siderovalley/internal/ai"
	"github.com/avirtanen/siderovalley/internal/disclosure"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

// ErrNPCLocked is returned when the NPC's gate has not been opened yet.
var ErrNPCLocked = errors.NewSentinel("npc not yet available")

type Service struct {
	scenario *models.Scenario
	engine   *disclosure.Engine
	phraser  ai.Phraser
	logger   *slog.Logger
}

func NewService(scenario *models.Scenario, phraser ai.Phraser, logger *slog.Logger) *Service {
	return &Service{
		scenario: scenario,
		engine:   disclosure.NewEngine(scenario),
		phraser:  phraser,
		logger:   logger,
	}
}

// Available returns the NPCs the trainee can currently interview, in the
// scenario's authored order.
func (s *Service) Available(state *session.State) []models.NPC {
	var available []models.NPC
	for _, npc := range s.scenario.NPCs {
		if state.GateOpen(npc.RequiresGate) {
			available = append(available, npc)
		}
	}
	return available
}

// Reply is the outcome of one interview turn.
type Reply struct {
	Disclosure disclosure.Disclosure
	// Text is the voiced reply shown to the trainee.
	Text string
	Mood session.Mood
}

// Resolve runs the non-generative part of a turn: tone, emotion, and
// disclosure, with their side effects on state. The returned request is
// everything a phrasing backend may see.
func (s *Service) Resolve(state *session.State, npcID, question string) (disclosure.Disclosure, ai.PhraseRequest, error) {
	npc := s.scenario.NPCByID(npcID)
	if npc == nil {
		return disclosure.Disclosure{}, ai.PhraseRequest{}, errors.Wrap(disclosure.ErrUnknownNPC,
			"resolve npc", slog.String("npc_id", npcID))
	}
	if !state.GateOpen(npc.RequiresGate) {
		return disclosure.Disclosure{}, ai.PhraseRequest{}, errors.Wrap(ErrNPCLocked,
			"check gate", slog.String("npc_id", npcID), slog.String("gate", npc.RequiresGate))
	}

	tone := session.AnalyzeTone(question)
	emotion := state.UpdateEmotion(npcID, tone)
	resolved := disclosure.Resolve(npc, question, state)
	state.AppendTranscript(npcID, session.ChatMessage{FromTrainee: true, Text: question})

	request := ai.PhraseRequest{
		NPCName:         npc.Name,
		Role:            npc.Role,
		Persona:         npc.Persona,
		MoodInstruction: emotion.Describe(),
		Question:        question,
		Fragment:        resolved.Text,
	}
	return resolved, request, nil
}

// Ask runs a full turn and records the voiced reply in the transcript. A
// phrasing failure falls back to the authored fragment rather than failing
// the turn.
func (s *Service) Ask(ctx context.Context, state *session.State, npcID, question string) (Reply, error) {
	resolved, request, err := s.Resolve(state, npcID, question)
	if err != nil {
		return Reply{}, err
	}

	text, err := s.phraser.Phrase(ctx, request)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "phrasing failed, using authored fragment",
			slog.String("npc_id", npcID), errors.SlogError(err))
		text = resolved.Text
	}
	s.RecordReply(state, npcID, text)

	return Reply{
		Disclosure: resolved,
		Text:       text,
		Mood:       state.Emotions[npcID].Mood,
	}, nil
}

// PhraseStream exposes the phrasing backend's streaming mode for handlers
// that deliver replies over SSE.
func (s *Service) PhraseStream(ctx context.Context, request ai.PhraseRequest) (<-chan string, error) {
	return s.phraser.PhraseStream(ctx, request)
}

// RecordReply appends the reply of record to the NPC's transcript. Streaming
// handlers pass the authored fragment here and stream the voiced version
// separately; the transcript never depends on the phrasing backend.
func (s *Service) RecordReply(state *session.State, npcID, text string) {
	state.AppendTranscript(npcID, session.ChatMessage{FromTrainee: false, Text: text})
}
