package main

import (
	"net/http"
	"sort"

	"github.com/avirtanen/siderovalley/internal/epi"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/session"
)

type facilitatorVillage struct {
	models.Village
	Cases int
}

type facilitatorNPC struct {
	Name       string
	Role       string
	DataAccess string
	Context    string
	Gate       string
}

type facilitatorTemplateData struct {
	Base        BaseTemplateData
	Disease     string
	Villages    []facilitatorVillage
	NPCs        []facilitatorNPC
	Gates       []string
	Interviewed int
	OrdersCount int
	Tasks       []session.Task
}

// facilitator is the truth dashboard for the person running the exercise:
// the real cause, what each informant can know, and how far the trainee is.
func (app *application) facilitator(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	app.saveState(r.Context(), state)

	rows := epi.LineList(app.scenario)
	caseCounts := map[string]int{}
	for _, count := range epi.CasesByVillage(rows) {
		caseCounts[count.Label] = count.Cases
	}

	villages := make([]facilitatorVillage, 0, len(app.scenario.Villages))
	for _, village := range app.scenario.Villages {
		villages = append(villages, facilitatorVillage{Village: village, Cases: caseCounts[village.Name]})
	}

	npcs := make([]facilitatorNPC, 0, len(app.scenario.NPCs))
	for _, npc := range app.scenario.NPCs {
		npcs = append(npcs, facilitatorNPC{
			Name:       npc.Name,
			Role:       npc.Role,
			DataAccess: npc.DataAccess,
			Context:    epi.ContextFor(npc.DataAccess, app.scenario),
			Gate:       npc.RequiresGate,
		})
	}

	var gates []string
	for gate, open := range state.Gates {
		if open {
			gates = append(gates, gate)
		}
	}
	sort.Strings(gates)

	data := facilitatorTemplateData{
		Base:        app.newBaseTemplateData(r, state),
		Disease:     app.scenario.Disease,
		Villages:    villages,
		NPCs:        npcs,
		Gates:       gates,
		Interviewed: len(state.InterviewedNPCs()),
		OrdersCount: len(state.Orders),
		Tasks:       state.DayTasks(state.Day),
	}
	app.render(w, r, http.StatusOK, "facilitator", data)
}
