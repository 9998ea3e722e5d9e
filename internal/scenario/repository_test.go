package scenario_test

import (
	"context"
	"io"
	"testing"

	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/scenario"
	"github.com/avirtanen/siderovalley/internal/sqlite"
	"github.com/avirtanen/siderovalley/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtureScenario(t *testing.T) *models.Scenario {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)

	loaded, err := scenario.NewRepository(db, logger).Load(ctx)
	require.NoError(t, err)
	return loaded
}

func TestLoad_fixtures(t *testing.T) {
	t.Parallel()
	loaded := loadFixtureScenario(t)

	assert.Len(t, loaded.Villages, 3)
	assert.NotEmpty(t, loaded.Households)
	assert.NotEmpty(t, loaded.Individuals)
	assert.NotEmpty(t, loaded.LabSamples)
	assert.NotEmpty(t, loaded.EnvironmentSites)
	assert.Len(t, loaded.NPCs, 8)
	assert.Equal(t, "Japanese encephalitis", loaded.Disease)
}

func TestLoad_npcAssembly(t *testing.T) {
	t.Parallel()
	loaded := loadFixtureScenario(t)

	vet := loaded.NPCByID("vet_amina")
	require.NotNil(t, vet)
	assert.Equal(t, models.DomainAnimal, vet.Domain)
	assert.Equal(t, models.GateAnimal, vet.RequiresGate)
	assert.NotEmpty(t, vet.BaseFacts)
	assert.NotEmpty(t, vet.Clues)

	elder := loaded.NPCByID("mama_kofi")
	require.NotNil(t, elder)
	unlocksAnimal := false
	for _, clue := range elder.Clues {
		if clue.Unlocks == models.GateAnimal {
			unlocksAnimal = true
		}
	}
	assert.True(t, unlocksAnimal, "the elder's pig clue opens the animal gate")
}

func TestValidate_duplicateTopic(t *testing.T) {
	t.Parallel()
	bad := &models.Scenario{
		NPCs: []models.NPC{
			{
				ID:        "npc",
				BaseFacts: []models.Fact{{Topic: "pigs"}},
				Clues:     []models.Clue{{Topic: "pigs"}},
			},
		},
	}
	require.ErrorContains(t, scenario.Validate(bad), "duplicate topic key")
}

func TestValidate_unreachableGate(t *testing.T) {
	t.Parallel()
	bad := &models.Scenario{
		NPCs: []models.NPC{
			{ID: "hermit", RequiresGate: "mountain"},
		},
	}
	require.ErrorContains(t, scenario.Validate(bad), "unreachable")
}

func TestValidate_gateChain(t *testing.T) {
	t.Parallel()
	chained := &models.Scenario{
		NPCs: []models.NPC{
			{
				ID:    "first",
				Clues: []models.Clue{{Topic: "a", Unlocks: "second-gate"}},
			},
			{
				ID:           "second",
				RequiresGate: "second-gate",
				Clues:        []models.Clue{{Topic: "b", Unlocks: "third-gate"}},
			},
			{
				ID:           "third",
				RequiresGate: "third-gate",
			},
		},
	}
	require.NoError(t, scenario.Validate(chained))
}

func TestValidate_danglingHousehold(t *testing.T) {
	t.Parallel()
	bad := &models.Scenario{
		Households: []models.Household{{ID: "hh1", VillageID: "nowhere"}},
	}
	require.ErrorContains(t, scenario.Validate(bad), "unknown village")
}
