// Package scenario holds facilitator commands for inspecting the authored
// outbreak content in a scenario database.
package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avirtanen/siderovalley/internal/epi"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/scenario"
	"github.com/avirtanen/siderovalley/internal/sqlite"
)

var Group = &cobra.Group{
	ID:    "scenario",
	Title: "Scenario operations",
}

const loadTimeout = 10 * time.Second

// load opens the database named by SIDERO_SQLITE_URL, runs the migrations,
// and loads the scenario through the same repository the server uses.
func load(ctx context.Context) (*models.Scenario, error) {
	sqliteURL, ok := os.LookupEnv("SIDERO_SQLITE_URL")
	if !ok {
		sqliteURL = "./siderovalley.sqlite"
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := sqlite.NewDatabase(ctx, sqliteURL, logger)
	if err != nil {
		return nil, errors.Wrap(err, "open database", slog.String("url", sqliteURL))
	}
	loaded, err := scenario.NewRepository(db, logger).Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load scenario")
	}
	return loaded, nil
}

var Validate = &cobra.Command{
	Use:     "validate",
	GroupID: "scenario",
	Short:   "Validate the scenario database",
	Long: `Loads the scenario from SIDERO_SQLITE_URL and checks its invariants:
topic keys are unique per informant, references resolve, and every gated
informant is reachable from the starting knowledge.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
		defer cancel()

		loaded, err := load(ctx)
		if err != nil {
			return err
		}
		// Load already validates; report the shape so broken fixtures are
		// obvious at a glance.
		fmt.Printf("OK: %d villages, %d households, %d individuals, %d informants, %d lab samples\n",
			len(loaded.Villages), len(loaded.Households), len(loaded.Individuals),
			len(loaded.NPCs), len(loaded.LabSamples))
		return nil
	},
}

var Truth = &cobra.Command{
	Use:     "truth",
	GroupID: "scenario",
	Short:   "Print the ground truth",
	Long:    `Prints the outbreak ground truth for facilitator preparation. Spoilers, obviously.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
		defer cancel()

		loaded, err := load(ctx)
		if err != nil {
			return err
		}

		summary := epi.Summarize(loaded)
		fmt.Printf("Disease: %s\n", loaded.Disease)
		fmt.Printf("Cases: %d, median age %.0f, attack rate %.1f per 1000, onsets %s to %s\n\n",
			summary.TotalCases, summary.MedianAge, summary.AttackRatePer1000,
			summary.FirstOnset, summary.LastOnset)

		fmt.Println("Villages:")
		byVillage := map[string]int{}
		for _, count := range epi.CasesByVillage(epi.LineList(loaded)) {
			byVillage[count.Label] = count.Cases
		}
		for _, village := range loaded.Villages {
			fmt.Printf("  %-12s pop %4d  pigs %-6s  paddies %-5t  cases %d\n",
				village.Name, village.Population, village.PigDensity,
				village.HasRicePaddies, byVillage[village.Name])
		}

		fmt.Println("\nLab samples:")
		for _, sample := range loaded.LabSamples {
			result := "negative"
			if sample.TruePositive {
				result = "POSITIVE"
			}
			fmt.Printf("  %-14s %-8s %s\n", sample.SampleType, sample.VillageID, result)
		}

		fmt.Println("\nInformants:")
		for _, npc := range loaded.NPCs {
			gate := npc.RequiresGate
			if gate == "" {
				gate = "-"
			}
			fmt.Printf("  %-14s %-28s cost %3d  gate %s\n", npc.ID, npc.Role, npc.Cost, gate)
			for _, clue := range npc.Clues {
				if clue.Unlocks != "" {
					fmt.Printf("      clue %q unlocks %s\n", clue.Topic, clue.Unlocks)
				}
			}
		}
		return nil
	},
}
