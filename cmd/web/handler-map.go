package main

import (
	"net/http"

	"github.com/avirtanen/siderovalley/internal/epi"
)

type mapTemplateData struct {
	Base  BaseTemplateData
	Spots []epi.VillageSpot
}

// spotMap shows the geographic distribution of cases per village alongside
// each village's pig density and rice paddies.
func (app *application) spotMap(w http.ResponseWriter, r *http.Request) {
	state := app.sessionState(r.Context())
	data := mapTemplateData{
		Base:  app.newBaseTemplateData(r, state),
		Spots: epi.SpotMap(app.scenario),
	}
	app.render(w, r, http.StatusOK, "map", data)
}
