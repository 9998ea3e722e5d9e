// Package session holds the per-trainee investigation state and the rules
// for mutating it. A State value is owned by exactly one session and is
// passed explicitly through every call; there is no process-wide state.
package session

import (
	"encoding/gob"
	"time"

	"github.com/avirtanen/siderovalley/internal/models"
)

func init() {
	// State travels through the session store as a gob blob.
	gob.Register(State{})
}

const (
	FirstDay = 1
	FinalDay = 5
)

// Starting resources for a new investigation.
const (
	startingBudget     = 1000
	startingLabCredits = 20
)

// Submission kinds recorded with RecordSubmission.
const (
	SubmissionCaseDefinition  = "case_definition"
	SubmissionHypotheses      = "hypotheses"
	SubmissionStudyDesign     = "study_design"
	SubmissionQuestionnaire   = "questionnaire"
	SubmissionDiagnosis       = "diagnosis"
	SubmissionRecommendations = "recommendations"
)

// SampleOrder identifies one lab or environmental order. Orders form a set:
// re-ordering the same sample is a no-op and is never double-counted.
type SampleOrder struct {
	ID          string
	SampleType  string
	VillageID   string
	Test        string
	Result      string
	Day         int
	DaysToReply int
	Cost        int
}

// NotebookEntry is a free-text note recorded on a given day.
type NotebookEntry struct {
	Day  int
	At   time.Time
	Note string
}

// ChatMessage is one turn of an NPC interview.
type ChatMessage struct {
	FromTrainee bool
	Text        string
}

// State is the mutable record of one trainee session.
type State struct {
	Day               int
	AlertAcknowledged bool
	Budget            int
	LabCredits        int

	// Gates holds the opened gates; domains never re-lock.
	Gates map[string]bool
	// AskedTopics records which topic keys have been asked per NPC.
	AskedTopics map[string]map[string]bool
	// Questions counts meaningful questions asked per NPC.
	Questions map[string]int
	// Transcripts holds the interview history per NPC.
	Transcripts map[string][]ChatMessage
	// Emotions tracks the emotional stance of each NPC toward the trainee.
	Emotions map[string]Emotion

	Orders   []SampleOrder
	Notebook []NotebookEntry

	LineListViewed   bool
	CaseDefinition   string
	Hypotheses       []string
	StudyDesign      string
	Questionnaire    []string
	MappedColumns    []string
	DatasetGenerated bool
	AnalysisDone     bool
	Diagnosis        string
	Recommendations  []string
	// Debriefed marks that the final briefing has been delivered and the
	// investigation is over.
	Debriefed bool

	// Seed makes per-session randomness (study dataset noise) reproducible.
	Seed int64
}

// NewState creates the state for a fresh investigation. The human domain is
// open from the start; everything else is earned.
func NewState(seed int64) *State {
	return &State{
		Day:         FirstDay,
		Budget:      startingBudget,
		LabCredits:  startingLabCredits,
		Gates:       map[string]bool{models.GateHuman: true},
		AskedTopics: map[string]map[string]bool{},
		Questions:   map[string]int{},
		Transcripts: map[string][]ChatMessage{},
		Emotions:    map[string]Emotion{},
		Seed:        seed,
	}
}

// OpenGate opens a gate. Opening an already open gate has no effect;
// gates never re-lock.
func (s *State) OpenGate(gate string) {
	if gate == "" {
		return
	}
	if s.Gates == nil {
		s.Gates = map[string]bool{}
	}
	s.Gates[gate] = true
}

// GateOpen reports whether the gate is open. The empty gate is always open.
func (s *State) GateOpen(gate string) bool {
	return gate == "" || s.Gates[gate]
}

// MarkAsked records that a topic was asked from an NPC and reports whether
// it had been asked before.
func (s *State) MarkAsked(npcID, topic string) (alreadyAsked bool) {
	if s.AskedTopics == nil {
		s.AskedTopics = map[string]map[string]bool{}
	}
	topics := s.AskedTopics[npcID]
	if topics == nil {
		topics = map[string]bool{}
		s.AskedTopics[npcID] = topics
	}
	alreadyAsked = topics[topic]
	topics[topic] = true
	return alreadyAsked
}

// Asked reports whether the topic has been asked from the NPC.
func (s *State) Asked(npcID, topic string) bool {
	return s.AskedTopics[npcID][topic]
}

// CountQuestion increments the per-NPC question counter and returns the new
// count.
func (s *State) CountQuestion(npcID string) int {
	if s.Questions == nil {
		s.Questions = map[string]int{}
	}
	s.Questions[npcID]++
	return s.Questions[npcID]
}

// InterviewedNPCs returns the IDs of NPCs that have been asked at least one
// question.
func (s *State) InterviewedNPCs() []string {
	ids := make([]string, 0, len(s.Questions))
	for id, n := range s.Questions {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// AppendTranscript records one interview turn.
func (s *State) AppendTranscript(npcID string, msg ChatMessage) {
	if s.Transcripts == nil {
		s.Transcripts = map[string][]ChatMessage{}
	}
	s.Transcripts[npcID] = append(s.Transcripts[npcID], msg)
}

// RecordSampleOrder adds a sample order. Orders are a set keyed by sample
// type, village, and test: a duplicate order is a no-op and reports false.
func (s *State) RecordSampleOrder(order SampleOrder) bool {
	for _, existing := range s.Orders {
		if existing.SampleType == order.SampleType &&
			existing.VillageID == order.VillageID &&
			existing.Test == order.Test {
			return false
		}
	}
	s.Orders = append(s.Orders, order)
	s.LabCredits -= order.Cost
	return true
}

// OrderedSampleTypes returns the distinct sample types ordered so far.
func (s *State) OrderedSampleTypes() map[string]bool {
	types := map[string]bool{}
	for _, order := range s.Orders {
		types[order.SampleType] = true
	}
	return types
}

// RecordSubmission stores a free-text submission. Repeated submissions of
// the same kind replace the previous text.
func (s *State) RecordSubmission(kind, text string) {
	switch kind {
	case SubmissionCaseDefinition:
		s.CaseDefinition = text
	case SubmissionStudyDesign:
		s.StudyDesign = text
	case SubmissionDiagnosis:
		s.Diagnosis = text
	case SubmissionHypotheses:
		s.Hypotheses = splitLines(text)
	case SubmissionQuestionnaire:
		s.Questionnaire = splitLines(text)
	case SubmissionRecommendations:
		s.Recommendations = splitLines(text)
	}
}

// AddNote appends a notebook entry for the current day.
func (s *State) AddNote(note string, at time.Time) {
	if note == "" {
		return
	}
	s.Notebook = append(s.Notebook, NotebookEntry{Day: s.Day, At: at, Note: note})
}
