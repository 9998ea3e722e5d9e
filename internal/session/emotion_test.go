package session_test

import (
	"testing"

	"github.com/avirtanen/siderovalley/internal/session"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTone(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     session.Tone
	}{
		{name: "polite", question: "Could you tell me about the first cases, please?", want: session.TonePolite},
		{name: "rude", question: "Do your job and tell me what happened", want: session.ToneRude},
		{name: "rude wins over polite", question: "Please stop being useless", want: session.ToneRude},
		{name: "shouting", question: "TELL ME EVERYTHING", want: session.ToneRude},
		{name: "neutral", question: "When did the first child fall ill?", want: session.ToneNeutral},
		{name: "short caps is not shouting", question: "JE?", want: session.ToneNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, session.AnalyzeTone(tt.question))
		})
	}
}

func TestState_updateEmotion(t *testing.T) {
	state := session.NewState(1)

	emotion := state.UpdateEmotion("dr_chen", session.ToneRude)
	require.Equal(t, session.MoodAnnoyed, emotion.Mood, "rudeness escalates two steps from neutral")

	emotion = state.UpdateEmotion("dr_chen", session.TonePolite)
	require.Equal(t, session.MoodWary, emotion.Mood, "politeness softens one step")

	// Neutral questions heal annoyance only every fourth interaction.
	state.UpdateEmotion("dr_chen", session.ToneRude) // back to offended territory
	emotion = state.UpdateEmotion("dr_chen", session.ToneNeutral)
	require.Equal(t, session.MoodAnnoyed, emotion.Mood, "fourth interaction heals one step")

	// Emotions are tracked per NPC.
	other := state.UpdateEmotion("nurse_joy", session.ToneNeutral)
	require.Equal(t, session.MoodNeutral, other.Mood)
}

func TestEmotion_describe(t *testing.T) {
	emotion := session.Emotion{Mood: session.MoodOffended, RudeCount: 3}
	description := emotion.Describe()
	require.Contains(t, description, "offended")
	require.Contains(t, description, "rude questions")
}
