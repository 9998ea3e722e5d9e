package session

import "strings"

// Task is one item on a day's checklist.
type Task struct {
	Description string
	Done        bool
}

// minInterviewsDayOne is how many NPCs must be consulted before the
// hypothesis-generation day can end.
const minInterviewsDayOne = 2

// DayTasks returns the checklist for the given day against the current
// state.
func (s *State) DayTasks(day int) []Task {
	switch day {
	case 1:
		return []Task{
			{Description: "Review the line list and epi curve", Done: s.LineListViewed},
			{Description: "Write a working case definition", Done: s.CaseDefinition != ""},
			{Description: "Document initial hypotheses", Done: len(s.Hypotheses) > 0},
			{Description: "Complete at least 2 interviews", Done: len(s.InterviewedNPCs()) >= minInterviewsDayOne},
		}
	case 2:
		return []Task{
			{Description: "Choose a study design", Done: s.StudyDesign != ""},
			{Description: "Submit a questionnaire", Done: len(s.Questionnaire) > 0},
			{Description: "Generate the study dataset", Done: s.DatasetGenerated},
		}
	case 3:
		return []Task{
			{Description: "Complete the descriptive analysis", Done: s.AnalysisDone},
		}
	case 4:
		return []Task{
			{Description: "Order at least one lab sample", Done: len(s.Orders) > 0},
		}
	case 5:
		return []Task{
			{Description: "Enter a final diagnosis", Done: s.Diagnosis != ""},
			{Description: "Record your main recommendations", Done: len(s.Recommendations) > 0},
		}
	default:
		return nil
	}
}

// AdvanceDay moves the investigation to the next day if the current day's
// tasks are done. It returns the missing task descriptions otherwise; the
// day never moves backwards and never past the final day, and a refused
// advance leaves the state unchanged.
func (s *State) AdvanceDay() (missing []string) {
	if s.Day >= FinalDay {
		return nil
	}
	for _, task := range s.DayTasks(s.Day) {
		if !task.Done {
			missing = append(missing, task.Description)
		}
	}
	if len(missing) > 0 {
		return missing
	}
	s.Day++
	return nil
}

// splitLines turns a textarea submission into non-empty trimmed lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
