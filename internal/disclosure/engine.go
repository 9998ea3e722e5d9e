// Package disclosure decides which authored knowledge fragment an NPC
// reveals for a trainee question. Resolution order, first match wins:
// gated clue (gate open), deflection (gate closed), red herring, base fact,
// unknown. The engine only ever returns authored text, so a generative
// phrasing backend downstream cannot introduce facts outside the document.
package disclosure

import (
	"log/slog"

	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

// ErrUnknownNPC is returned when the NPC identifier matches no document.
// It is fatal to the request, never to the session.
var ErrUnknownNPC = errors.NewSentinel("unknown npc")

// Kind names the knowledge category a disclosure was resolved from.
type Kind string

const (
	KindClue       Kind = "clue"
	KindDeflection Kind = "deflection"
	KindRedHerring Kind = "red-herring"
	KindBase       Kind = "base"
	KindUnknown    Kind = "unknown"
	KindGreeting   Kind = "greeting"
)

// Disclosure is the resolved answer fragment for one question.
type Disclosure struct {
	Kind  Kind
	Topic string
	// Text is the authored fragment. This is the only outbreak content
	// that may be handed to a phrasing collaborator.
	Text string
	// Unlocked names the gate this disclosure opened, if any.
	Unlocked string
	Scope    Scope
}

const defaultUnknownReply = "I'm sorry, I don't know anything about that."

const defaultDeflectionReply = "You should ask the right person about that first."

// Engine resolves questions against the scenario's NPC documents.
type Engine struct {
	scenario *models.Scenario
}

func NewEngine(scenario *models.Scenario) *Engine {
	return &Engine{scenario: scenario}
}

// Ask resolves a trainee question for the NPC with the given ID, recording
// side effects (asked topics, opened gates) on state. Asking the same topic
// twice yields the same text and never unlocks twice.
func (e *Engine) Ask(npcID, question string, state *session.State) (Disclosure, error) {
	npc := e.scenario.NPCByID(npcID)
	if npc == nil {
		return Disclosure{}, errors.Wrap(ErrUnknownNPC, "resolve npc", slog.String("npc_id", npcID))
	}
	return Resolve(npc, question, state), nil
}

// Resolve applies the resolution order for one NPC document. It is the
// whole disclosure policy; handlers and the phrasing layer build on its
// result without re-matching anything.
func Resolve(npc *models.NPC, question string, state *session.State) Disclosure {
	scope := ClassifyScope(question)
	state.CountQuestion(npc.ID)

	// 1–2. Gated clues, in authored order.
	for _, clue := range npc.Clues {
		if !Matches(question, clue.Topic, clue.Keywords) {
			continue
		}
		if !state.GateOpen(clue.RequiresGate) {
			return Disclosure{
				Kind:  KindDeflection,
				Topic: clue.Topic,
				Text:  deflectionReply(npc),
				Scope: scope,
			}
		}
		disclosure := Disclosure{Kind: KindClue, Topic: clue.Topic, Text: clue.Text, Scope: scope}
		if alreadyAsked := state.MarkAsked(npc.ID, clue.Topic); !alreadyAsked && clue.Unlocks != "" {
			if !state.GateOpen(clue.Unlocks) {
				disclosure.Unlocked = clue.Unlocks
			}
			state.OpenGate(clue.Unlocks)
		}
		return disclosure
	}

	// 3. Red herrings never advance any gate.
	for _, herring := range npc.RedHerrings {
		if Matches(question, herring.Topic, herring.Keywords) {
			return Disclosure{Kind: KindRedHerring, Topic: herring.Topic, Text: herring.Text, Scope: scope}
		}
	}

	// 4. Base facts.
	for _, fact := range npc.BaseFacts {
		if Matches(question, fact.Topic, fact.Keywords) {
			state.MarkAsked(npc.ID, fact.Topic)
			return Disclosure{Kind: KindBase, Topic: fact.Topic, Text: fact.Text, Scope: scope}
		}
	}

	// A plain greeting that matched nothing gets a greeting, not "unknown".
	if scope == ScopeGreeting {
		return Disclosure{Kind: KindGreeting, Text: greetingReply(npc), Scope: scope}
	}

	// 5. Everything else, including an empty question, resolves to the
	// authored "I don't know" so nothing can be fabricated.
	return Disclosure{Kind: KindUnknown, Text: unknownReply(npc), Scope: scope}
}

func unknownReply(npc *models.NPC) string {
	if npc.UnknownReply != "" {
		return npc.UnknownReply
	}
	return defaultUnknownReply
}

func deflectionReply(npc *models.NPC) string {
	if npc.DeflectionReply != "" {
		return npc.DeflectionReply
	}
	return defaultDeflectionReply
}

func greetingReply(npc *models.NPC) string {
	if npc.GreetingReply != "" {
		return npc.GreetingReply
	}
	return "Hello. How can I help your investigation?"
}
