// Package consequence maps an accumulated session state to a final outcome
// tier. Evaluate is a pure function: deterministic, side-effect free, and it
// never fails. Missing dimensions simply score their lowest value. The
// weights and thresholds are scenario content carried in scorecard.json,
// not code.
package consequence

import (
	"encoding/json"
	"strings"

	_ "embed"

	"github.com/avirtanen/siderovalley/internal/disclosure"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

//go:embed scorecard.json
var scorecardJSON []byte

// Tier is one of the closed set of scenario resolutions.
type Tier string

const (
	TierExemplary Tier = "exemplary"
	TierGood      Tier = "good"
	TierPartial   Tier = "partial"
	TierPoor      Tier = "poor"
)

// Outcome is the terminal result of an investigation.
type Outcome struct {
	Tier      Tier
	Narrative string
	// Score is the combined weighted score on a 0 to 100 scale.
	Score int
	// Factors lists the per-dimension findings shown in the debrief.
	Factors []Factor
	// ProjectedCases estimates additional cases under this response.
	ProjectedCases int
}

// Factor is one scored dimension of the debrief.
type Factor struct {
	Name    string
	Points  int
	Max     int
	Comment string
}

type keywordGroup struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type tierRule struct {
	Tier              Tier   `json:"tier"`
	MinScore          int    `json:"min_score"`
	RequiresDiagnosis bool   `json:"requires_diagnosis"`
	ProjectedCases    int    `json:"projected_cases"`
	Narrative         string `json:"narrative"`
}

// Scorecard holds the decision table: dimension weights, keyword criteria,
// and tier thresholds. Tiers are ordered best first; the first rule whose
// conditions hold wins, so a boundary score always lands in the lowest tier
// that still admits it.
type Scorecard struct {
	Weights struct {
		Diagnosis       int `json:"diagnosis"`
		OneHealth       int `json:"one_health"`
		Sampling        int `json:"sampling"`
		Questionnaire   int `json:"questionnaire"`
		Recommendations int `json:"recommendations"`
	} `json:"weights"`
	DiagnosisKeywords        []string            `json:"diagnosis_keywords"`
	RequiredSampleCategories map[string][]string `json:"required_sample_categories"`
	QuestionnaireCategories  []keywordGroup      `json:"questionnaire_categories"`
	RecommendationChecklist  []keywordGroup      `json:"recommendation_checklist"`
	Tiers                    []tierRule          `json:"tiers"`
}

// DefaultScorecard parses the embedded decision table.
func DefaultScorecard() (*Scorecard, error) {
	var card Scorecard
	if err := json.Unmarshal(scorecardJSON, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Evaluate computes the outcome for a finished investigation. Calling it
// again with the same inputs yields the same outcome.
func (card *Scorecard) Evaluate(state *session.State, scenario *models.Scenario) Outcome {
	diagnosisOK := card.diagnosisCorrect(state.Diagnosis)
	factors := []Factor{
		card.diagnosisFactor(diagnosisOK),
		card.oneHealthFactor(state, scenario),
		card.samplingFactor(state),
		card.questionnaireFactor(state),
		card.recommendationsFactor(state),
	}

	score := 0
	for _, f := range factors {
		score += f.Points
	}

	rule := card.Tiers[len(card.Tiers)-1]
	for _, candidate := range card.Tiers {
		if score >= candidate.MinScore && (!candidate.RequiresDiagnosis || diagnosisOK) {
			rule = candidate
			break
		}
	}

	return Outcome{
		Tier:           rule.Tier,
		Narrative:      rule.Narrative,
		Score:          score,
		Factors:        factors,
		ProjectedCases: rule.ProjectedCases,
	}
}

func (card *Scorecard) diagnosisCorrect(diagnosis string) bool {
	normalized := disclosure.Normalize(diagnosis)
	if normalized == "" {
		return false
	}
	for _, keyword := range card.DiagnosisKeywords {
		want := disclosure.Normalize(keyword)
		if normalized == want || containsWholePhrase(normalized, want) {
			return true
		}
	}
	return false
}

func (card *Scorecard) diagnosisFactor(correct bool) Factor {
	f := Factor{Name: "Diagnostic correctness", Max: card.Weights.Diagnosis}
	if correct {
		f.Points = card.Weights.Diagnosis
		f.Comment = "Your final diagnosis names the true cause of the outbreak."
	} else {
		f.Comment = "Your final diagnosis does not match the laboratory-confirmed cause."
	}
	return f
}

// oneHealthFactor gives full credit when at least one non-human domain was
// consulted.
func (card *Scorecard) oneHealthFactor(state *session.State, scenario *models.Scenario) Factor {
	f := Factor{Name: "One Health completeness", Max: card.Weights.OneHealth}
	for _, npcID := range state.InterviewedNPCs() {
		npc := scenario.NPCByID(npcID)
		if npc != nil && npc.Domain != models.DomainHuman {
			f.Points = card.Weights.OneHealth
			f.Comment = "You brought animal or environmental expertise into the investigation."
			return f
		}
	}
	f.Comment = "No veterinary or environmental perspective was consulted."
	return f
}

// samplingFactor scores the fraction of required sample categories covered,
// rounded down so a boundary case grades conservatively.
func (card *Scorecard) samplingFactor(state *session.State) Factor {
	f := Factor{Name: "Sampling completeness", Max: card.Weights.Sampling}
	if len(card.RequiredSampleCategories) == 0 {
		return f
	}
	ordered := state.OrderedSampleTypes()
	covered := 0
	for _, sampleTypes := range card.RequiredSampleCategories {
		for _, sampleType := range sampleTypes {
			if ordered[sampleType] {
				covered++
				break
			}
		}
	}
	f.Points = card.Weights.Sampling * covered / len(card.RequiredSampleCategories)
	switch {
	case covered == len(card.RequiredSampleCategories):
		f.Comment = "Human, animal, and vector samples all reached the laboratory."
	case covered > 0:
		f.Comment = "Some required sample categories were never collected."
	default:
		f.Comment = "No laboratory samples were ordered."
	}
	return f
}

func (card *Scorecard) questionnaireFactor(state *session.State) Factor {
	f := Factor{Name: "Questionnaire quality", Max: card.Weights.Questionnaire}
	covered := coveredGroups(card.QuestionnaireCategories, state.Questionnaire)
	if len(card.QuestionnaireCategories) > 0 {
		f.Points = card.Weights.Questionnaire * covered / len(card.QuestionnaireCategories)
	}
	switch {
	case covered == len(card.QuestionnaireCategories):
		f.Comment = "The questionnaire covers every required exposure category."
	case covered > 0:
		f.Comment = "The questionnaire misses some required exposure categories."
	default:
		f.Comment = "No usable questionnaire was submitted."
	}
	return f
}

func (card *Scorecard) recommendationsFactor(state *session.State) Factor {
	f := Factor{Name: "Recommendation quality", Max: card.Weights.Recommendations}
	covered := coveredGroups(card.RecommendationChecklist, state.Recommendations)
	if len(card.RecommendationChecklist) > 0 {
		f.Points = card.Weights.Recommendations * covered / len(card.RecommendationChecklist)
	}
	switch {
	case covered == len(card.RecommendationChecklist):
		f.Comment = "Your recommendations match the evidence-based checklist."
	case covered > 0:
		f.Comment = "Some evidence-based interventions are missing from your recommendations."
	default:
		f.Comment = "No actionable recommendations were recorded."
	}
	return f
}

// coveredGroups counts keyword groups matched by at least one submitted line.
func coveredGroups(groups []keywordGroup, lines []string) int {
	covered := 0
	for _, group := range groups {
		if groupMatched(group, lines) {
			covered++
		}
	}
	return covered
}

func groupMatched(group keywordGroup, lines []string) bool {
	for _, line := range lines {
		normalized := disclosure.Normalize(line)
		for _, keyword := range group.Keywords {
			if containsWholePhrase(normalized, disclosure.Normalize(keyword)) {
				return true
			}
		}
	}
	return false
}

// containsWholePhrase matches phrase in text on word boundaries; both are
// expected to be normalized already.
func containsWholePhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + text + " "
	return strings.Contains(padded, " "+phrase+" ")
}
