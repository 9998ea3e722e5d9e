package main

import (
	"net/http"

	"github.com/avirtanen/siderovalley/internal/session"
	"github.com/avirtanen/siderovalley/internal/study"
)

type studyTemplateData struct {
	Base          BaseTemplateData
	StudyDesign   string
	Questionnaire []string
	MappedColumns []string
	DatasetHeader []string
	DatasetRows   [][]string
	Results       []study.ExposureResult
}

func (app *application) study(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	data := studyTemplateData{
		Base:          app.newBaseTemplateData(r, state),
		StudyDesign:   state.StudyDesign,
		Questionnaire: state.Questionnaire,
		MappedColumns: state.MappedColumns,
	}
	if state.DatasetGenerated {
		dataset := study.Generate(app.scenario, state.MappedColumns, state.Seed)
		data.DatasetHeader, data.DatasetRows = datasetTable(dataset)
		if state.AnalysisDone {
			data.Results = study.Analyze(dataset)
		}
	}
	app.render(w, r, http.StatusOK, "study", data)
}

func (app *application) submitStudyDesign(w http.ResponseWriter, r *http.Request) {
	app.recordSubmission(w, r, session.SubmissionStudyDesign, "study_design", "/study")
}

// submitQuestionnaire stores the questionnaire and maps its free-text lines
// onto the dataset columns the field team can actually collect.
func (app *application) submitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.sessionState(ctx)
	state.RecordSubmission(session.SubmissionQuestionnaire, r.PostFormValue("questionnaire"))
	state.MappedColumns = study.MapQuestionnaire(state.Questionnaire)
	// A new questionnaire means the old dataset no longer matches it.
	state.DatasetGenerated = false
	state.AnalysisDone = false
	app.saveState(ctx, state)

	http.Redirect(w, r, "/study", http.StatusSeeOther)
}

func (app *application) generateDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)

	if len(state.Questionnaire) == 0 {
		app.flash(ctx, "Submit a questionnaire before sending the field team out.")
	} else {
		state.DatasetGenerated = true
	}
	app.saveState(ctx, state)

	http.Redirect(w, r, "/study", http.StatusSeeOther)
}

func (app *application) analyzeDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)

	if !state.DatasetGenerated {
		app.flash(ctx, "Generate the study dataset before analyzing it.")
	} else {
		state.AnalysisDone = true
	}
	app.saveState(ctx, state)

	http.Redirect(w, r, "/study", http.StatusSeeOther)
}

// datasetTable flattens the dataset into the header and cell strings the
// template prints. Only columns the questionnaire mapped appear.
func datasetTable(dataset study.Dataset) ([]string, [][]string) {
	released := map[string]bool{}
	for _, name := range dataset.Columns {
		released[name] = true
	}

	header := []string{"Participant", "Case"}
	var columns []study.Column
	for _, column := range study.Columns() {
		if released[column.Name] {
			columns = append(columns, column)
			header = append(header, column.Label)
		}
	}

	rows := make([][]string, 0, len(dataset.Records))
	for _, record := range dataset.Records {
		row := []string{record.ParticipantID, yesNo(record.IsCase)}
		for _, column := range columns {
			row = append(row, columnValue(record, column.Name))
		}
		rows = append(rows, row)
	}
	return header, rows
}

func columnValue(record study.Record, column string) string {
	switch column {
	case "age_group":
		return record.AgeGroup
	case "village":
		return record.Village
	case "keeps_pigs":
		return yesNo(record.KeepsPigs)
	case "near_paddies":
		return yesNo(record.NearPaddies)
	case "uses_bednet":
		return yesNo(record.UsesBednet)
	case "vaccinated":
		return yesNo(record.Vaccinated)
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
