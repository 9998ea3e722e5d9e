// Package lab runs the reference laboratory: a fixed test menu, a credit
// budget, and deterministic results read from the scenario's specimen bank.
// The lab never invents a result; a specimen either exists in the ground
// truth or the order comes back inconclusive.
package lab

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

var (
	ErrUnknownSampleType   = errors.NewSentinel("unknown sample type")
	ErrUnknownVillage      = errors.NewSentinel("unknown village")
	ErrInsufficientCredits = errors.NewSentinel("insufficient lab credits")
	ErrDuplicateOrder      = errors.NewSentinel("sample already ordered")
)

// TestInfo is one entry of the laboratory's order menu.
type TestInfo struct {
	SampleType  string
	Label       string
	Test        string
	Cost        int
	DaysToReply int
}

// The menu mirrors the reference lab's standing offer. Costs are in lab
// credits, turnaround in investigation days.
var menu = []TestInfo{
	{SampleType: models.SampleHumanCSF, Label: "Human CSF", Test: "JE IgM antibody-capture ELISA", Cost: 5, DaysToReply: 2},
	{SampleType: models.SampleHumanSerum, Label: "Human serum", Test: "JE IgM ELISA", Cost: 3, DaysToReply: 1},
	{SampleType: models.SamplePigSerum, Label: "Pig serum", Test: "JE IgG seroconversion panel", Cost: 4, DaysToReply: 1},
	{SampleType: models.SampleMosquitoPool, Label: "Mosquito pool", Test: "JEV RT-PCR", Cost: 6, DaysToReply: 2},
}

// Menu returns the order menu in its fixed display order.
func Menu() []TestInfo {
	out := make([]TestInfo, len(menu))
	copy(out, menu)
	return out
}

// TestFor looks up the menu entry for a sample type.
func TestFor(sampleType string) (TestInfo, bool) {
	for _, info := range menu {
		if info.SampleType == sampleType {
			return info, true
		}
	}
	return TestInfo{}, false
}

// Service accepts sample orders against one scenario's specimen bank.
type Service struct {
	scenario *models.Scenario
}

func NewService(scenario *models.Scenario) *Service {
	return &Service{scenario: scenario}
}

// Order places a sample order and debits the session's lab credits. The
// result is fixed by the ground truth at ordering time but stays sealed
// until the reporting day has passed. Re-ordering an identical sample fails
// without charging credits.
func (s *Service) Order(state *session.State, sampleType, villageID string) (session.SampleOrder, error) {
	info, ok := TestFor(sampleType)
	if !ok {
		return session.SampleOrder{}, errors.Wrap(ErrUnknownSampleType, "look up test",
			slog.String("sample_type", sampleType))
	}
	if s.scenario.VillageByID(villageID) == nil {
		return session.SampleOrder{}, errors.Wrap(ErrUnknownVillage, "look up village",
			slog.String("village_id", villageID))
	}
	if state.LabCredits < info.Cost {
		return session.SampleOrder{}, errors.Wrap(ErrInsufficientCredits, "charge order",
			slog.Int("credits", state.LabCredits), slog.Int("cost", info.Cost))
	}

	order := session.SampleOrder{
		ID:          uuid.NewString(),
		SampleType:  sampleType,
		VillageID:   villageID,
		Test:        info.Test,
		Result:      s.result(sampleType, villageID),
		Day:         state.Day,
		DaysToReply: info.DaysToReply,
		Cost:        info.Cost,
	}
	if !state.RecordSampleOrder(order) {
		return session.SampleOrder{}, errors.Wrap(ErrDuplicateOrder, "record order",
			slog.String("sample_type", sampleType), slog.String("village_id", villageID))
	}
	return order, nil
}

// ResultReady reports whether the order's reporting day has passed.
func ResultReady(order session.SampleOrder, currentDay int) bool {
	return currentDay >= order.Day+order.DaysToReply
}

// result reads the specimen bank. Any true-positive specimen of the right
// type in the village makes the order positive.
func (s *Service) result(sampleType, villageID string) string {
	found := false
	for _, sample := range s.scenario.LabSamples {
		if sample.SampleType != sampleType || sample.VillageID != villageID {
			continue
		}
		found = true
		if sample.TruePositive {
			return fmt.Sprintf("POSITIVE. %s", sample.Description)
		}
	}
	if !found {
		return "Inconclusive. No suitable specimen could be collected at this site."
	}
	return "NEGATIVE. No evidence of JE virus in this specimen."
}
