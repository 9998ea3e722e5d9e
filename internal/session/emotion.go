package session

import "strings"

// Mood is a step on the emotion ladder from cooperative to offended.
type Mood string

const (
	MoodCooperative Mood = "cooperative"
	MoodNeutral     Mood = "neutral"
	MoodWary        Mood = "wary"
	MoodAnnoyed     Mood = "annoyed"
	MoodOffended    Mood = "offended"
)

var moodLadder = []Mood{MoodCooperative, MoodNeutral, MoodWary, MoodAnnoyed, MoodOffended}

// Tone is the detected register of a trainee question.
type Tone string

const (
	TonePolite  Tone = "polite"
	ToneRude    Tone = "rude"
	ToneNeutral Tone = "neutral"
)

// Emotion tracks how one NPC feels toward the trainee.
type Emotion struct {
	Mood         Mood
	Interactions int
	RudeCount    int
	PoliteCount  int
}

var politeWords = []string{"please", "thank you", "thanks", "appreciate", "grateful"}

var rudeWords = []string{
	"stupid", "idiot", "useless", "incompetent", "what's wrong with you",
	"you people", "this is your fault", "do your job", "now!", "right now",
}

// AnalyzeTone classifies a trainee question as polite, rude, or neutral.
// Rude phrases win over polite ones; all-caps shouting counts as rude.
func AnalyzeTone(question string) Tone {
	text := strings.ToLower(question)
	for _, w := range rudeWords {
		if strings.Contains(text, w) {
			return ToneRude
		}
	}
	for _, w := range politeWords {
		if strings.Contains(text, w) {
			return TonePolite
		}
	}
	trimmed := strings.TrimSpace(question)
	if len(trimmed) > 5 && trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed) {
		return ToneRude
	}
	return ToneNeutral
}

// healInterval is how often a neutral exchange softens an annoyed NPC.
const healInterval = 4

// UpdateEmotion shifts the NPC's mood for one question and returns the new
// emotion. Rudeness escalates two steps, politeness softens one step, and
// neutral exchanges slowly heal annoyance over time.
func (s *State) UpdateEmotion(npcID string, tone Tone) Emotion {
	if s.Emotions == nil {
		s.Emotions = map[string]Emotion{}
	}
	emotion, ok := s.Emotions[npcID]
	if !ok {
		emotion = Emotion{Mood: MoodNeutral}
	}
	emotion.Interactions++

	switch tone {
	case TonePolite:
		emotion.PoliteCount++
		emotion.Mood = shiftMood(emotion.Mood, -1)
	case ToneRude:
		emotion.RudeCount++
		emotion.Mood = shiftMood(emotion.Mood, 2)
	default:
		if (emotion.Mood == MoodAnnoyed || emotion.Mood == MoodOffended) &&
			emotion.Interactions%healInterval == 0 {
			emotion.Mood = shiftMood(emotion.Mood, -1)
		}
	}

	s.Emotions[npcID] = emotion
	return emotion
}

func shiftMood(mood Mood, steps int) Mood {
	idx := 1 // neutral
	for i, m := range moodLadder {
		if m == mood {
			idx = i
			break
		}
	}
	idx += steps
	if idx < 0 {
		idx = 0
	}
	if idx >= len(moodLadder) {
		idx = len(moodLadder) - 1
	}
	return moodLadder[idx]
}

// Describe renders the emotion as a phrasing instruction for the
// text-generation collaborator. It contains no outbreak facts.
func (e Emotion) Describe() string {
	var b strings.Builder
	switch e.Mood {
	case MoodCooperative:
		b.WriteString("You feel friendly and cooperative toward the investigation team.")
	case MoodWary:
		b.WriteString("You feel cautious and slightly guarded. You answer but watch your words.")
	case MoodAnnoyed:
		b.WriteString("You feel irritated and impatient with the team. You give short answers and do not volunteer extra information.")
	case MoodOffended:
		b.WriteString("You feel offended by how the team has treated you. You answer briefly and share only what public health requires.")
	default:
		b.WriteString("You feel neutral toward the investigation team.")
	}
	if e.RudeCount >= 2 && (e.Mood == MoodAnnoyed || e.Mood == MoodOffended) {
		b.WriteString(" You remember their earlier rude questions.")
	}
	if e.PoliteCount >= 2 && (e.Mood == MoodNeutral || e.Mood == MoodWary) {
		b.WriteString(" Their occasional politeness softens you a little.")
	}
	return b.String()
}
