package session_test

import (
	"testing"
	"time"

	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
	"github.com/stretchr/testify/require"
)

func TestState_gates(t *testing.T) {
	state := session.NewState(1)

	require.True(t, state.GateOpen(models.GateHuman), "human gate should be open from the start")
	require.True(t, state.GateOpen(""), "empty gate is always open")
	require.False(t, state.GateOpen(models.GateAnimal))

	state.OpenGate(models.GateAnimal)
	require.True(t, state.GateOpen(models.GateAnimal))

	// Opening twice is a no-op and gates never re-lock.
	state.OpenGate(models.GateAnimal)
	require.True(t, state.GateOpen(models.GateAnimal))
}

func TestState_markAsked(t *testing.T) {
	state := session.NewState(1)

	require.False(t, state.MarkAsked("vet_amina", "vaccination"))
	require.True(t, state.MarkAsked("vet_amina", "vaccination"), "second ask reports already asked")
	require.True(t, state.Asked("vet_amina", "vaccination"))
	require.False(t, state.Asked("dr_chen", "vaccination"), "asked topics are per NPC")
}

func TestState_recordSampleOrder(t *testing.T) {
	state := session.NewState(1)
	order := session.SampleOrder{
		ID:         "o1",
		SampleType: models.SamplePigSerum,
		VillageID:  "V1",
		Test:       "je_ab_pig",
		Cost:       2,
	}

	require.True(t, state.RecordSampleOrder(order))
	require.Len(t, state.Orders, 1)
	credits := state.LabCredits

	// Duplicate orders are no-ops, not double-counted.
	duplicate := order
	duplicate.ID = "o2"
	require.False(t, state.RecordSampleOrder(duplicate))
	require.Len(t, state.Orders, 1)
	require.Equal(t, credits, state.LabCredits, "duplicate order should not cost credits")

	require.True(t, state.OrderedSampleTypes()[models.SamplePigSerum])
}

func TestState_advanceDay(t *testing.T) {
	state := session.NewState(1)

	missing := state.AdvanceDay()
	require.NotEmpty(t, missing, "day 1 tasks are not done yet")
	require.Equal(t, 1, state.Day, "refused advance leaves the day unchanged")

	state.LineListViewed = true
	state.RecordSubmission(session.SubmissionCaseDefinition, "AES in a child resident of Sidero Valley since 1 July")
	state.RecordSubmission(session.SubmissionHypotheses, "JE virus\nwater contamination")
	state.CountQuestion("dr_chen")
	state.CountQuestion("nurse_joy")

	require.Empty(t, state.AdvanceDay())
	require.Equal(t, 2, state.Day)

	// Day never moves past the final day.
	state.Day = session.FinalDay
	require.Empty(t, state.AdvanceDay())
	require.Equal(t, session.FinalDay, state.Day)
}

func TestState_submissionsAndNotebook(t *testing.T) {
	state := session.NewState(1)

	state.RecordSubmission(session.SubmissionQuestionnaire, "age\n\n  pig ownership \n")
	require.Equal(t, []string{"age", "pig ownership"}, state.Questionnaire)

	state.RecordSubmission(session.SubmissionDiagnosis, "Japanese encephalitis")
	require.Equal(t, "Japanese encephalitis", state.Diagnosis)

	state.AddNote("first cases cluster near rice paddies", time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC))
	state.AddNote("", time.Now())
	require.Len(t, state.Notebook, 1)
	require.Equal(t, 1, state.Notebook[0].Day)
}
