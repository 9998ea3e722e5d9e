// Package ai turns resolved knowledge fragments into in-character NPC
// speech. The phrasing backend only ever sees the single authored fragment
// picked by the disclosure engine plus persona and mood instructions, so it
// cannot leak outbreak facts it was never given.
package ai

import "context"

// PhraseRequest carries everything a backend may use to voice one reply.
type PhraseRequest struct {
	NPCName string
	Role    string
	// Persona is the authored phrasing instruction. It contains style,
	// never outbreak facts.
	Persona string
	// MoodInstruction reflects the NPC's current emotional stance.
	MoodInstruction string
	// Question is the trainee's question being answered.
	Question string
	// Fragment is the only content the reply may convey.
	Fragment string
}

// Phraser voices a fragment as NPC speech. Implementations must treat the
// fragment as the complete set of facts available for the reply.
type Phraser interface {
	// Phrase returns the full reply at once.
	Phrase(ctx context.Context, req PhraseRequest) (string, error)
	// PhraseStream returns the reply as incremental chunks. The channel is
	// closed when the reply is complete or the context is cancelled.
	PhraseStream(ctx context.Context, req PhraseRequest) (<-chan string, error)
}

// StaticPhraser returns fragments verbatim. It is the fallback when no
// generation backend is configured and the backend used in tests.
type StaticPhraser struct{}

func (StaticPhraser) Phrase(_ context.Context, req PhraseRequest) (string, error) {
	return req.Fragment, nil
}

func (StaticPhraser) PhraseStream(_ context.Context, req PhraseRequest) (<-chan string, error) {
	chunks := make(chan string, 1)
	chunks <- req.Fragment
	close(chunks)
	return chunks, nil
}
