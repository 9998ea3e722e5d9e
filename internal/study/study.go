// Package study implements the analytic-study leg of the investigation:
// mapping the trainee's questionnaire onto dataset columns, generating a
// case-control dataset from the ground truth, and computing crude odds
// ratios per exposure. Dataset generation is seeded per session so a
// trainee sees the same numbers on every page load.
package study

import (
	"math"
	"math/rand"
	"sort"

	"github.com/avirtanen/siderovalley/internal/disclosure"
	"github.com/avirtanen/siderovalley/internal/epi"
	"github.com/avirtanen/siderovalley/internal/models"
)

// Column is one dataset variable a questionnaire item can collect.
type Column struct {
	Name     string
	Label    string
	Keywords []string
}

// Columns a well-built questionnaire can map onto. Only mapped columns are
// released in the generated dataset; an exposure nobody asked about cannot
// be analysed.
var columns = []Column{
	{Name: "age_group", Label: "Age group", Keywords: []string{"age", "old", "child", "children", "adult"}},
	{Name: "village", Label: "Village", Keywords: []string{"village", "where", "live", "residence"}},
	{Name: "keeps_pigs", Label: "Household keeps pigs", Keywords: []string{"pig", "pigs", "swine", "livestock", "animals"}},
	{Name: "near_paddies", Label: "Lives near rice paddies", Keywords: []string{"rice", "paddy", "paddies", "field", "standing water"}},
	{Name: "uses_bednet", Label: "Sleeps under a bed net", Keywords: []string{"bednet", "bed net", "net", "mosquito"}},
	{Name: "vaccinated", Label: "JE vaccinated", Keywords: []string{"vaccine", "vaccinated", "vaccination", "immunization"}},
}

// Columns returns the mappable columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// MapQuestionnaire resolves each questionnaire line to the dataset columns
// it collects. The result is deduplicated and in canonical column order.
func MapQuestionnaire(lines []string) []string {
	mapped := map[string]bool{}
	for _, line := range lines {
		for _, col := range columns {
			if disclosure.Matches(line, col.Name, col.Keywords) {
				mapped[col.Name] = true
			}
		}
	}
	var names []string
	for _, col := range columns {
		if mapped[col.Name] {
			names = append(names, col.Name)
		}
	}
	return names
}

// Record is one study participant row. Columns the questionnaire did not
// map are zero-valued and flagged absent in the header.
type Record struct {
	ParticipantID string
	IsCase        bool
	AgeGroup      string
	Village       string
	KeepsPigs     bool
	NearPaddies   bool
	UsesBednet    bool
	Vaccinated    bool
}

// Dataset is the released case-control dataset.
type Dataset struct {
	Columns []string
	Records []Record
}

// noiseRate is the fraction of boolean answers flipped to mimic recall
// error in interviews.
const noiseRate = 0.05

// Generate builds the case-control dataset from the ground truth. Cases are
// the symptomatic individuals; controls are the rest. Only mapped columns
// carry data. The same seed always yields byte-identical output.
func Generate(scenario *models.Scenario, mapped []string, seed int64) Dataset {
	has := map[string]bool{}
	for _, name := range mapped {
		has[name] = true
	}
	rng := rand.New(rand.NewSource(seed))

	individuals := make([]models.Individual, len(scenario.Individuals))
	copy(individuals, scenario.Individuals)
	sort.Slice(individuals, func(i, j int) bool { return individuals[i].ID < individuals[j].ID })

	records := make([]Record, 0, len(individuals))
	for _, ind := range individuals {
		record := Record{ParticipantID: ind.ID, IsCase: ind.Symptomatic}
		household := scenario.HouseholdByID(ind.HouseholdID)
		if has["age_group"] {
			record.AgeGroup = epi.AgeGroup(ind.Age)
		}
		if has["village"] && household != nil {
			if v := scenario.VillageByID(household.VillageID); v != nil {
				record.Village = v.Name
			}
		}
		if has["keeps_pigs"] && household != nil {
			record.KeepsPigs = noisy(rng, household.KeepsPigs)
		}
		if has["near_paddies"] && household != nil {
			record.NearPaddies = noisy(rng, household.NearPaddies)
		}
		if has["uses_bednet"] && household != nil {
			record.UsesBednet = noisy(rng, household.UsesBednets)
		}
		if has["vaccinated"] {
			record.Vaccinated = noisy(rng, ind.Vaccinated)
		}
		records = append(records, record)
	}

	released := make([]string, 0, len(columns))
	for _, col := range columns {
		if has[col.Name] {
			released = append(released, col.Name)
		}
	}
	return Dataset{Columns: released, Records: records}
}

func noisy(rng *rand.Rand, truth bool) bool {
	if rng.Float64() < noiseRate {
		return !truth
	}
	return truth
}

// ExposureResult is one row of the analysis table.
type ExposureResult struct {
	Exposure          string
	CasesExposed      int
	CasesUnexposed    int
	ControlsExposed   int
	ControlsUnexposed int
	OddsRatio         float64
}

// Analyze computes a crude odds ratio for every released boolean exposure.
// Zero cells get the standard 0.5 continuity correction so the ratio stays
// finite.
func Analyze(dataset Dataset) []ExposureResult {
	exposures := []struct {
		name    string
		label   string
		exposed func(Record) bool
	}{
		{name: "keeps_pigs", label: "Household keeps pigs", exposed: func(r Record) bool { return r.KeepsPigs }},
		{name: "near_paddies", label: "Lives near rice paddies", exposed: func(r Record) bool { return r.NearPaddies }},
		{name: "uses_bednet", label: "Sleeps under a bed net", exposed: func(r Record) bool { return r.UsesBednet }},
		{name: "vaccinated", label: "JE vaccinated", exposed: func(r Record) bool { return r.Vaccinated }},
	}
	released := map[string]bool{}
	for _, name := range dataset.Columns {
		released[name] = true
	}

	var results []ExposureResult
	for _, exposure := range exposures {
		if !released[exposure.name] {
			continue
		}
		result := ExposureResult{Exposure: exposure.label}
		for _, record := range dataset.Records {
			exposed := exposure.exposed(record)
			switch {
			case record.IsCase && exposed:
				result.CasesExposed++
			case record.IsCase:
				result.CasesUnexposed++
			case exposed:
				result.ControlsExposed++
			default:
				result.ControlsUnexposed++
			}
		}
		result.OddsRatio = oddsRatio(result)
		results = append(results, result)
	}
	return results
}

func oddsRatio(r ExposureResult) float64 {
	a := float64(r.CasesExposed)
	b := float64(r.CasesUnexposed)
	c := float64(r.ControlsExposed)
	d := float64(r.ControlsUnexposed)
	if a == 0 || b == 0 || c == 0 || d == 0 {
		a += 0.5
		b += 0.5
		c += 0.5
		d += 0.5
	}
	ratio := (a * d) / (b * c)
	// Round to two decimals for stable display.
	return math.Round(ratio*100) / 100
}
