// Package scenario loads the outbreak ground truth from the database and
// checks its internal consistency before the server starts serving it.
package scenario

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/sqlite"
)

// disease is the laboratory-confirmed cause of the fixture outbreak.
const disease = "Japanese encephalitis"

// Repository reads scenario content. All queries go through the read-only
// pool; scenario tables are only ever written by fixtures.
type Repository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewRepository(database *sqlite.Database, logger *slog.Logger) *Repository {
	return &Repository{
		db:     sqlx.NewDb(database.ReadOnly, "sqlite3"),
		logger: logger,
	}
}

type npcRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Role            string `db:"role"`
	Domain          string `db:"domain"`
	RequiresGate    string `db:"requires_gate"`
	Persona         string `db:"persona"`
	DataAccess      string `db:"data_access"`
	Cost            int    `db:"cost"`
	UnknownReply    string `db:"unknown_reply"`
	DeflectionReply string `db:"deflection_reply"`
	GreetingReply   string `db:"greeting_reply"`
}

type factRow struct {
	NPCID        string `db:"npc_id"`
	Category     string `db:"category"`
	Topic        string `db:"topic"`
	Keywords     string `db:"keywords"`
	Body         string `db:"body"`
	RequiresGate string `db:"requires_gate"`
	UnlocksGate  string `db:"unlocks_gate"`
}

// Fact categories stored in npc_facts.
const (
	categoryBase       = "base"
	categoryClue       = "clue"
	categoryRedHerring = "red_herring"
	categoryUnknown    = "unknown"
)

// Load reads the whole scenario into memory. The result is immutable and
// safe to share between sessions.
func (r *Repository) Load(ctx context.Context) (*models.Scenario, error) {
	scenario := &models.Scenario{Disease: disease}
	var err error

	if err = r.db.SelectContext(ctx, &scenario.Villages,
		"SELECT * FROM villages ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "select villages")
	}
	if err = r.db.SelectContext(ctx, &scenario.Households,
		"SELECT * FROM households ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "select households")
	}
	if err = r.db.SelectContext(ctx, &scenario.Individuals,
		"SELECT * FROM individuals ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "select individuals")
	}
	if err = r.db.SelectContext(ctx, &scenario.LabSamples,
		"SELECT * FROM lab_samples ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "select lab samples")
	}
	if err = r.db.SelectContext(ctx, &scenario.EnvironmentSites,
		"SELECT * FROM environment_sites ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "select environment sites")
	}

	var npcRows []npcRow
	if err = r.db.SelectContext(ctx, &npcRows,
		"SELECT * FROM npcs ORDER BY cost, id"); err != nil {
		return nil, errors.Wrap(err, "select npcs")
	}
	var factRows []factRow
	if err = r.db.SelectContext(ctx, &factRows,
		"SELECT npc_id, category, topic, keywords, body, requires_gate, unlocks_gate FROM npc_facts ORDER BY npc_id, position"); err != nil {
		return nil, errors.Wrap(err, "select npc facts")
	}

	factsByNPC := map[string][]factRow{}
	for _, row := range factRows {
		factsByNPC[row.NPCID] = append(factsByNPC[row.NPCID], row)
	}
	for _, row := range npcRows {
		npc := models.NPC{
			ID:              row.ID,
			Name:            row.Name,
			Role:            row.Role,
			Domain:          models.Domain(row.Domain),
			RequiresGate:    row.RequiresGate,
			Persona:         row.Persona,
			DataAccess:      row.DataAccess,
			Cost:            row.Cost,
			UnknownReply:    row.UnknownReply,
			DeflectionReply: row.DeflectionReply,
			GreetingReply:   row.GreetingReply,
		}
		for _, fact := range factsByNPC[row.ID] {
			switch fact.Category {
			case categoryBase:
				npc.BaseFacts = append(npc.BaseFacts, models.Fact{
					Topic: fact.Topic, Keywords: splitKeywords(fact.Keywords), Text: fact.Body,
				})
			case categoryClue:
				npc.Clues = append(npc.Clues, models.Clue{
					Topic:        fact.Topic,
					Keywords:     splitKeywords(fact.Keywords),
					Text:         fact.Body,
					RequiresGate: fact.RequiresGate,
					Unlocks:      fact.UnlocksGate,
				})
			case categoryRedHerring:
				npc.RedHerrings = append(npc.RedHerrings, models.Fact{
					Topic: fact.Topic, Keywords: splitKeywords(fact.Keywords), Text: fact.Body,
				})
			case categoryUnknown:
				npc.Unknowns = append(npc.Unknowns, fact.Topic)
			default:
				return nil, errors.New("unknown fact category",
					slog.String("npc_id", row.ID), slog.String("category", fact.Category))
			}
		}
		scenario.NPCs = append(scenario.NPCs, npc)
	}

	if err = Validate(scenario); err != nil {
		return nil, errors.Wrap(err, "validate scenario")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "loaded scenario",
		slog.Int("villages", len(scenario.Villages)),
		slog.Int("individuals", len(scenario.Individuals)),
		slog.Int("npcs", len(scenario.NPCs)))
	return scenario, nil
}

func splitKeywords(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// Validate checks scenario invariants that authored content can break:
// per-NPC topic keys must be disjoint across knowledge categories, foreign
// references must resolve, and every gated NPC must be reachable from the
// starting gate set.
func Validate(scenario *models.Scenario) error {
	for i := range scenario.NPCs {
		if err := validateNPC(&scenario.NPCs[i]); err != nil {
			return err
		}
	}
	for _, hh := range scenario.Households {
		if scenario.VillageByID(hh.VillageID) == nil {
			return errors.New("household references unknown village",
				slog.String("household_id", hh.ID), slog.String("village_id", hh.VillageID))
		}
	}
	for _, ind := range scenario.Individuals {
		if scenario.HouseholdByID(ind.HouseholdID) == nil {
			return errors.New("individual references unknown household",
				slog.String("individual_id", ind.ID), slog.String("household_id", ind.HouseholdID))
		}
	}
	return validateGateReachability(scenario)
}

func validateNPC(npc *models.NPC) error {
	seen := map[string]bool{}
	claim := func(topic string) error {
		if seen[topic] {
			return errors.New("duplicate topic key",
				slog.String("npc_id", npc.ID), slog.String("topic", topic))
		}
		seen[topic] = true
		return nil
	}
	for _, fact := range npc.BaseFacts {
		if err := claim(fact.Topic); err != nil {
			return err
		}
	}
	for _, clue := range npc.Clues {
		if err := claim(clue.Topic); err != nil {
			return err
		}
	}
	for _, herring := range npc.RedHerrings {
		if err := claim(herring.Topic); err != nil {
			return err
		}
	}
	for _, topic := range npc.Unknowns {
		if err := claim(topic); err != nil {
			return err
		}
	}
	return nil
}

// validateGateReachability walks gate unlocks to a fixed point and rejects
// scenarios where an NPC or clue can never become available.
func validateGateReachability(scenario *models.Scenario) error {
	open := map[string]bool{models.GateHuman: true}
	for changed := true; changed; {
		changed = false
		for i := range scenario.NPCs {
			npc := &scenario.NPCs[i]
			if npc.RequiresGate != "" && !open[npc.RequiresGate] {
				continue
			}
			for _, clue := range npc.Clues {
				if clue.RequiresGate != "" && !open[clue.RequiresGate] {
					continue
				}
				if clue.Unlocks != "" && !open[clue.Unlocks] {
					open[clue.Unlocks] = true
					changed = true
				}
			}
		}
	}
	for i := range scenario.NPCs {
		npc := &scenario.NPCs[i]
		if npc.RequiresGate != "" && !open[npc.RequiresGate] {
			return errors.New("npc gate is unreachable",
				slog.String("npc_id", npc.ID), slog.String("gate", npc.RequiresGate))
		}
		for _, clue := range npc.Clues {
			if clue.RequiresGate != "" && !open[clue.RequiresGate] {
				return errors.New("clue gate is unreachable",
					slog.String("npc_id", npc.ID), slog.String("topic", clue.Topic),
					slog.String("gate", clue.RequiresGate))
			}
		}
	}
	return nil
}
