package main

import (
	"net/http"

	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/lab"
	"github.com/avirtanen/siderovalley/internal/models"
)

type labOrderView struct {
	SampleType string
	Village    string
	Test       string
	Day        int
	Ready      bool
	ReadyDay   int
	Result     string
}

type labTemplateData struct {
	Base       BaseTemplateData
	Menu       []lab.TestInfo
	Villages   []models.Village
	Orders     []labOrderView
	OrderError string
}

func (app *application) labPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.sessionState(ctx)
	orderError := app.sessionManager.PopString(ctx, labErrorSessionKey)
	app.saveState(ctx, state)

	orders := make([]labOrderView, 0, len(state.Orders))
	for _, order := range state.Orders {
		view := labOrderView{
			SampleType: order.SampleType,
			Test:       order.Test,
			Day:        order.Day,
			ReadyDay:   order.Day + order.DaysToReply,
		}
		if info, ok := lab.TestFor(order.SampleType); ok {
			view.SampleType = info.Label
		}
		if village := app.scenario.VillageByID(order.VillageID); village != nil {
			view.Village = village.Name
		}
		// Results stay sealed until the reporting day.
		if lab.ResultReady(order, state.Day) {
			view.Ready = true
			view.Result = order.Result
		}
		orders = append(orders, view)
	}

	data := labTemplateData{
		Base:       app.newBaseTemplateData(r, state),
		Menu:       lab.Menu(),
		Villages:   app.scenario.Villages,
		Orders:     orders,
		OrderError: orderError,
	}
	app.render(w, r, http.StatusOK, "lab", data)
}

const labErrorSessionKey = "labOrderError"

func (app *application) orderSample(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.sessionState(ctx)

	_, err := app.lab.Order(state, r.PostFormValue("sample_type"), r.PostFormValue("village_id"))
	switch {
	case err == nil:
	case errors.Is(err, lab.ErrInsufficientCredits):
		app.sessionManager.Put(ctx, labErrorSessionKey, "Not enough lab credits for that test.")
	case errors.Is(err, lab.ErrDuplicateOrder):
		app.sessionManager.Put(ctx, labErrorSessionKey, "That sample has already been ordered.")
	case errors.Is(err, lab.ErrUnknownSampleType), errors.Is(err, lab.ErrUnknownVillage):
		app.clientError(w, r, http.StatusBadRequest)
		return
	default:
		app.serverError(w, r, err)
		return
	}
	app.saveState(ctx, state)

	http.Redirect(w, r, "/lab", http.StatusSeeOther)
}
