package study_test

import (
	"testing"

	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenario() *models.Scenario {
	scenario := &models.Scenario{
		Villages: []models.Village{
			{ID: "nalu", Name: "Nalu"},
		},
		Households: []models.Household{
			{ID: "hh1", VillageID: "nalu", KeepsPigs: true, NearPaddies: true},
			{ID: "hh2", VillageID: "nalu", UsesBednets: true},
		},
	}
	// Cases cluster in the pig-keeping household, controls in the other.
	for i := 0; i < 10; i++ {
		scenario.Individuals = append(scenario.Individuals, models.Individual{
			ID: caseID(i), HouseholdID: "hh1", Age: 8, Symptomatic: true,
		})
		scenario.Individuals = append(scenario.Individuals, models.Individual{
			ID: controlID(i), HouseholdID: "hh2", Age: 30, Vaccinated: true,
		})
	}
	return scenario
}

func caseID(i int) string    { return string(rune('a'+i)) + "-case" }
func controlID(i int) string { return string(rune('a'+i)) + "-ctrl" }

func TestMapQuestionnaire(t *testing.T) {
	lines := []string{
		"How old is the child?",
		"Does the household keep pigs?",
		"Does anyone sleep under a bed net?",
		"What is the family's favourite colour?",
	}
	mapped := study.MapQuestionnaire(lines)
	assert.Equal(t, []string{"age_group", "keeps_pigs", "uses_bednet"}, mapped)
}

func TestMapQuestionnaire_deduplicates(t *testing.T) {
	lines := []string{"Do you keep pigs?", "How many pigs are kept nearby?"}
	mapped := study.MapQuestionnaire(lines)
	assert.Equal(t, []string{"keeps_pigs"}, mapped)
}

func TestGenerate_deterministicPerSeed(t *testing.T) {
	scenario := testScenario()
	mapped := []string{"age_group", "keeps_pigs", "vaccinated"}

	first := study.Generate(scenario, mapped, 42)
	second := study.Generate(scenario, mapped, 42)
	require.Equal(t, first, second)
	assert.Len(t, first.Records, 20)
	assert.Equal(t, mapped, first.Columns)
}

func TestGenerate_unmappedColumnsStayEmpty(t *testing.T) {
	dataset := study.Generate(testScenario(), []string{"age_group"}, 42)
	for _, record := range dataset.Records {
		assert.Empty(t, record.Village)
		assert.False(t, record.KeepsPigs)
		assert.False(t, record.UsesBednet)
	}
}

func TestGenerate_casesFlagged(t *testing.T) {
	dataset := study.Generate(testScenario(), nil, 42)
	cases := 0
	for _, record := range dataset.Records {
		if record.IsCase {
			cases++
		}
	}
	assert.Equal(t, 10, cases)
}

func TestAnalyze_pigExposureElevated(t *testing.T) {
	// Noise-free table: all 10 cases exposed, all 10 controls unexposed.
	dataset := study.Dataset{
		Columns: []string{"keeps_pigs"},
	}
	for i := 0; i < 10; i++ {
		dataset.Records = append(dataset.Records,
			study.Record{ParticipantID: caseID(i), IsCase: true, KeepsPigs: true},
			study.Record{ParticipantID: controlID(i)},
		)
	}

	results := study.Analyze(dataset)
	require.Len(t, results, 1)
	result := results[0]
	assert.Equal(t, "Household keeps pigs", result.Exposure)
	assert.Equal(t, 10, result.CasesExposed)
	assert.Equal(t, 10, result.ControlsUnexposed)
	// Continuity-corrected: (10.5*10.5)/(0.5*0.5) = 441.
	assert.InDelta(t, 441.0, result.OddsRatio, 0.001)
}

func TestAnalyze_onlyReleasedColumns(t *testing.T) {
	dataset := study.Dataset{
		Columns: []string{"vaccinated"},
		Records: []study.Record{
			{ParticipantID: "a", IsCase: true},
			{ParticipantID: "b", Vaccinated: true},
			{ParticipantID: "c", IsCase: true, Vaccinated: true},
			{ParticipantID: "d"},
		},
	}
	results := study.Analyze(dataset)
	require.Len(t, results, 1)
	assert.Equal(t, "JE vaccinated", results[0].Exposure)
}

func TestAnalyze_balancedExposureNearOne(t *testing.T) {
	dataset := study.Dataset{Columns: []string{"uses_bednet"}}
	for i := 0; i < 4; i++ {
		exposed := i%2 == 0
		dataset.Records = append(dataset.Records,
			study.Record{ParticipantID: caseID(i), IsCase: true, UsesBednet: exposed},
			study.Record{ParticipantID: controlID(i), UsesBednet: exposed},
		)
	}
	results := study.Analyze(dataset)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].OddsRatio, 0.001)
}
