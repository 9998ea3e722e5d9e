// Package epi derives the epidemiological views shown to the trainee from
// the scenario ground truth: the line list, the epidemic curve, and the
// person/place/time breakdowns. Everything here is a pure function of the
// scenario so the same outbreak always presents the same picture.
package epi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/avirtanen/siderovalley/internal/models"
)

// CaseRow is one line of the hospital line list.
type CaseRow struct {
	CaseID      string
	Village     string
	Age         int
	Sex         string
	OnsetDate   string
	Vaccinated  bool
	SevereNeuro bool
	Outcome     string
}

// LineList returns the symptomatic individuals as a line list, ordered by
// onset date and then case ID so the table is stable across renders.
func LineList(scenario *models.Scenario) []CaseRow {
	var rows []CaseRow
	for _, ind := range scenario.Individuals {
		if !ind.Symptomatic {
			continue
		}
		village := ""
		if hh := scenario.HouseholdByID(ind.HouseholdID); hh != nil {
			if v := scenario.VillageByID(hh.VillageID); v != nil {
				village = v.Name
			}
		}
		rows = append(rows, CaseRow{
			CaseID:      ind.ID,
			Village:     village,
			Age:         ind.Age,
			Sex:         ind.Sex,
			OnsetDate:   ind.OnsetDate,
			Vaccinated:  ind.Vaccinated,
			SevereNeuro: ind.SevereNeuro,
			Outcome:     ind.Outcome,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OnsetDate != rows[j].OnsetDate {
			return rows[i].OnsetDate < rows[j].OnsetDate
		}
		return rows[i].CaseID < rows[j].CaseID
	})
	return rows
}

// CurvePoint is one bar of the epidemic curve.
type CurvePoint struct {
	Date  string
	Cases int
}

// Curve buckets the line list by onset date, in date order. Rows without an
// onset date are dropped rather than guessed.
func Curve(rows []CaseRow) []CurvePoint {
	byDate := map[string]int{}
	for _, row := range rows {
		if row.OnsetDate == "" {
			continue
		}
		byDate[row.OnsetDate]++
	}
	points := make([]CurvePoint, 0, len(byDate))
	for date, n := range byDate {
		points = append(points, CurvePoint{Date: date, Cases: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// AgeGroups are the standard reporting bands, youngest first.
var AgeGroups = []string{"0-4", "5-14", "15-49", "50+"}

// AgeGroup maps an age in years onto its reporting band.
func AgeGroup(age int) string {
	switch {
	case age <= 4:
		return AgeGroups[0]
	case age <= 14:
		return AgeGroups[1]
	case age <= 49:
		return AgeGroups[2]
	default:
		return AgeGroups[3]
	}
}

// GroupCount is a labelled case count used for both age and village
// breakdowns.
type GroupCount struct {
	Label string
	Cases int
}

// CasesByAgeGroup counts cases per reporting band, in band order. Bands
// without cases are included so the table shape never changes.
func CasesByAgeGroup(rows []CaseRow) []GroupCount {
	byGroup := map[string]int{}
	for _, row := range rows {
		byGroup[AgeGroup(row.Age)]++
	}
	counts := make([]GroupCount, 0, len(AgeGroups))
	for _, group := range AgeGroups {
		counts = append(counts, GroupCount{Label: group, Cases: byGroup[group]})
	}
	return counts
}

// CasesByVillage counts cases per village, most affected first.
func CasesByVillage(rows []CaseRow) []GroupCount {
	byVillage := map[string]int{}
	for _, row := range rows {
		byVillage[row.Village]++
	}
	counts := make([]GroupCount, 0, len(byVillage))
	for village, n := range byVillage {
		counts = append(counts, GroupCount{Label: village, Cases: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Cases != counts[j].Cases {
			return counts[i].Cases > counts[j].Cases
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// VillageSpot is one village marker of the spot map: the case burden next
// to the geographic features that could explain it.
type VillageSpot struct {
	Village       models.Village
	Cases         int
	SevereCases   int
	AttackPer1000 float64
}

// SpotMap summarizes the geographic distribution of cases village by
// village, most affected first. Villages without cases are kept so their
// absence of cases is visible too.
func SpotMap(scenario *models.Scenario) []VillageSpot {
	spots := make([]VillageSpot, 0, len(scenario.Villages))
	for _, village := range scenario.Villages {
		spot := VillageSpot{Village: village}
		for _, ind := range scenario.Individuals {
			if !ind.Symptomatic {
				continue
			}
			hh := scenario.HouseholdByID(ind.HouseholdID)
			if hh == nil || hh.VillageID != village.ID {
				continue
			}
			spot.Cases++
			if ind.SevereNeuro {
				spot.SevereCases++
			}
		}
		if village.Population > 0 {
			spot.AttackPer1000 = 1000 * float64(spot.Cases) / float64(village.Population)
		}
		spots = append(spots, spot)
	}
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Cases != spots[j].Cases {
			return spots[i].Cases > spots[j].Cases
		}
		return spots[i].Village.Name < spots[j].Village.Name
	})
	return spots
}

// Summary condenses the outbreak into the figures quoted in briefings.
type Summary struct {
	TotalCases        int
	MedianAge         float64
	PctUnvaccinated   float64
	PctSevereNeuro    float64
	AttackRatePer1000 float64
	FirstOnset        string
	LastOnset         string
}

// Summarize computes the headline figures for the whole district.
func Summarize(scenario *models.Scenario) Summary {
	rows := LineList(scenario)
	summary := Summary{TotalCases: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	ages := make([]float64, 0, len(rows))
	unvaccinated := 0
	severe := 0
	for _, row := range rows {
		ages = append(ages, float64(row.Age))
		if !row.Vaccinated {
			unvaccinated++
		}
		if row.SevereNeuro {
			severe++
		}
		if row.OnsetDate == "" {
			continue
		}
		if summary.FirstOnset == "" || row.OnsetDate < summary.FirstOnset {
			summary.FirstOnset = row.OnsetDate
		}
		if row.OnsetDate > summary.LastOnset {
			summary.LastOnset = row.OnsetDate
		}
	}

	// Median never fails on a non-empty input.
	summary.MedianAge, _ = stats.Median(ages)
	summary.PctUnvaccinated = 100 * float64(unvaccinated) / float64(len(rows))
	summary.PctSevereNeuro = 100 * float64(severe) / float64(len(rows))

	population := 0
	for _, v := range scenario.Villages {
		population += v.Population
	}
	if population > 0 {
		summary.AttackRatePer1000 = 1000 * float64(len(rows)) / float64(population)
	}
	return summary
}

// Data-access scopes an NPC can hold. Each scope maps to a different slice
// of the ground truth in ContextFor.
const (
	AccessHospitalCases     = "hospital_cases"
	AccessTriageLogs        = "triage_logs"
	AccessPrivateClinic     = "private_clinic"
	AccessSchoolAttendance  = "school_attendance"
	AccessVetSurveillance   = "vet_surveillance"
	AccessEnvironmentalData = "environmental_data"
)

// ContextFor renders the ground-truth summary an NPC with the given data
// access is aware of. The string is background for phrasing only; disclosure
// still decides what is actually said.
func ContextFor(dataAccess string, scenario *models.Scenario) string {
	rows := LineList(scenario)
	switch dataAccess {
	case AccessHospitalCases:
		summary := Summarize(scenario)
		severe := 0
		for _, row := range rows {
			if row.SevereNeuro {
				severe++
			}
		}
		return fmt.Sprintf(
			"%d admitted cases, median age %.0f, %d with severe neurological signs, onsets %s to %s.",
			summary.TotalCases, summary.MedianAge, severe, summary.FirstOnset, summary.LastOnset)
	case AccessTriageLogs:
		var lines []string
		for _, point := range Curve(rows) {
			lines = append(lines, fmt.Sprintf("%s: %d presented with fever", point.Date, point.Cases))
		}
		return strings.Join(lines, "; ")
	case AccessPrivateClinic:
		unvaccinated := 0
		for _, row := range rows {
			if !row.Vaccinated {
				unvaccinated++
			}
		}
		return fmt.Sprintf("%d of %d known cases had no vaccination record at the clinic.",
			unvaccinated, len(rows))
	case AccessSchoolAttendance:
		school := 0
		for _, row := range rows {
			if row.Age >= 5 && row.Age <= 14 {
				school++
			}
		}
		return fmt.Sprintf("%d school-age children are absent sick.", school)
	case AccessVetSurveillance:
		var lines []string
		for _, v := range scenario.Villages {
			lines = append(lines, fmt.Sprintf("%s: pig density %s", v.Name, v.PigDensity))
		}
		return strings.Join(lines, "; ")
	case AccessEnvironmentalData:
		var lines []string
		for _, site := range scenario.EnvironmentSites {
			village := ""
			if v := scenario.VillageByID(site.VillageID); v != nil {
				village = v.Name
			}
			lines = append(lines, fmt.Sprintf("%s %s: breeding index %s",
				village, site.SiteType, site.BreedingIndex))
		}
		return strings.Join(lines, "; ")
	default:
		return ""
	}
}
