package disclosure_test

import (
	"testing"

	"github.com/avirtanen/siderovalley/internal/disclosure"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
	"github.com/stretchr/testify/require"
)

// healthWorker mirrors the village health worker document: a base fact, a
// clue gated on the animal domain, and a heat-stroke red herring.
func healthWorker() *models.NPC {
	return &models.NPC{
		ID:     "village_health_worker",
		Name:   "Village Health Worker",
		Domain: models.DomainHuman,
		BaseFacts: []models.Fact{
			{
				Topic:    "hospitalized",
				Keywords: []string{"hospital", "admitted", "cases"},
				Text:     "3 children hospitalized this week.",
			},
		},
		Clues: []models.Clue{
			{
				Topic:        "vaccination",
				Keywords:     []string{"vaccine", "vaccinated", "immunization"},
				Text:         "Unvaccinated children cluster near the rice paddies.",
				RequiresGate: models.GateAnimal,
			},
		},
		RedHerrings: []models.Fact{
			{
				Topic:    "heat",
				Keywords: []string{"heat stroke", "weather", "sun"},
				Text:     "It's probably just heat stroke.",
			},
		},
		Unknowns: []string{"lab results"},
	}
}

func vetOfficer() *models.NPC {
	return &models.NPC{
		ID:     "vet_amina",
		Name:   "Vet Amina",
		Domain: models.DomainAnimal,
		Clues: []models.Clue{
			{
				Topic:    "pigs",
				Keywords: []string{"pig", "swine", "livestock"},
				Text:     "Several pig herds have seroconverted recently.",
				Unlocks:  models.GateAnimal,
			},
		},
	}
}

func newEngine(npcs ...*models.NPC) *disclosure.Engine {
	scenario := &models.Scenario{}
	for _, npc := range npcs {
		scenario.NPCs = append(scenario.NPCs, *npc)
	}
	return disclosure.NewEngine(scenario)
}

func TestEngine_unknownNPC(t *testing.T) {
	engine := newEngine(healthWorker())
	_, err := engine.Ask("nonexistent", "hello", session.NewState(1))
	require.ErrorIs(t, err, disclosure.ErrUnknownNPC)
}

func TestResolve_resolutionOrder(t *testing.T) {
	tests := []struct {
		name     string
		question string
		prepare  func(state *session.State)
		wantKind disclosure.Kind
		wantText string
	}{
		{
			name:     "red herring before any unlock",
			question: "Could this be the heat?",
			wantKind: disclosure.KindRedHerring,
			wantText: "It's probably just heat stroke.",
		},
		{
			name:     "gated clue deflects before unlock",
			question: "What about vaccination coverage?",
			wantKind: disclosure.KindDeflection,
			wantText: "You should ask the right person about that first.",
		},
		{
			name:     "gated clue reveals after unlock",
			question: "What about vaccination coverage?",
			prepare:  func(state *session.State) { state.OpenGate(models.GateAnimal) },
			wantKind: disclosure.KindClue,
			wantText: "Unvaccinated children cluster near the rice paddies.",
		},
		{
			name:     "base fact",
			question: "How many have been admitted to hospital?",
			wantKind: disclosure.KindBase,
			wantText: "3 children hospitalized this week.",
		},
		{
			name:     "unmatched topic",
			question: "What is the district budget?",
			wantKind: disclosure.KindUnknown,
			wantText: "I'm sorry, I don't know anything about that.",
		},
		{
			name:     "empty question is unknown",
			question: "",
			wantKind: disclosure.KindUnknown,
			wantText: "I'm sorry, I don't know anything about that.",
		},
		{
			name:     "greeting",
			question: "Good morning",
			wantKind: disclosure.KindGreeting,
			wantText: "Hello. How can I help your investigation?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := session.NewState(1)
			if tt.prepare != nil {
				tt.prepare(state)
			}
			got := disclosure.Resolve(healthWorker(), tt.question, state)
			require.Equal(t, tt.wantKind, got.Kind)
			require.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestResolve_gateUnlockFlow(t *testing.T) {
	engine := newEngine(healthWorker(), vetOfficer())
	state := session.NewState(1)

	// The deflection must not reveal the clue nor mark the topic asked.
	got, err := engine.Ask("village_health_worker", "were they vaccinated?", state)
	require.NoError(t, err)
	require.Equal(t, disclosure.KindDeflection, got.Kind)
	require.False(t, state.Asked("village_health_worker", "vaccination"))

	// Asking the vet about pigs opens the animal gate.
	got, err = engine.Ask("vet_amina", "how are the pigs doing?", state)
	require.NoError(t, err)
	require.Equal(t, disclosure.KindClue, got.Kind)
	require.Equal(t, models.GateAnimal, got.Unlocked)
	require.True(t, state.GateOpen(models.GateAnimal))

	// Now the vaccination clue is revealed and recorded.
	got, err = engine.Ask("village_health_worker", "were they vaccinated?", state)
	require.NoError(t, err)
	require.Equal(t, disclosure.KindClue, got.Kind)
	require.Equal(t, "Unvaccinated children cluster near the rice paddies.", got.Text)
	require.True(t, state.Asked("village_health_worker", "vaccination"))
}

func TestResolve_repeatAskIsIdempotent(t *testing.T) {
	engine := newEngine(vetOfficer())
	state := session.NewState(1)

	first, err := engine.Ask("vet_amina", "tell me about the pigs", state)
	require.NoError(t, err)
	require.Equal(t, models.GateAnimal, first.Unlocked)

	second, err := engine.Ask("vet_amina", "tell me about the pigs", state)
	require.NoError(t, err)
	require.Equal(t, first.Text, second.Text, "repeat ask yields identical text")
	require.Empty(t, second.Unlocked, "repeat ask does not double-unlock")
}

// The clue must stay hidden for every ordering of unrelated questions asked
// before the gate opens.
func TestResolve_clueNeverLeaksBeforeGate(t *testing.T) {
	unrelated := []string{
		"How many have been admitted to hospital?",
		"Could this be the heat?",
		"What is the district budget?",
		"hello",
	}
	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
	}
	for _, perm := range permutations {
		state := session.NewState(1)
		npc := healthWorker()
		for _, i := range perm {
			got := disclosure.Resolve(npc, unrelated[i], state)
			require.NotEqual(t, disclosure.KindClue, got.Kind)
		}
		got := disclosure.Resolve(npc, "vaccination", state)
		require.Equal(t, disclosure.KindDeflection, got.Kind,
			"clue leaked after asking %v", perm)
	}
}
