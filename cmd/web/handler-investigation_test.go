package main

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_alert(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("form[action='/alert/acknowledge']").Length())
	// Nothing else is reachable before the assignment is taken.
	assert.Equal(t, 0, doc.Find("nav a[href='/overview']").Length())

	doc, err = client.AcknowledgeAlert(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("h2:contains('Hospital line list')").Length())
	assert.Equal(t, 1, doc.Find("nav a[href='/interviews']").Length())
	assert.Equal(t, 10, doc.Find("table.line-list tbody tr").Length())
}

func Test_application_interviewGates(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	// Only the human-domain informants are available at first.
	doc, err := client.GetDoc(ctx, "/interviews")
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Find("ul.npc-list li").Length())
	assert.Equal(t, 0, doc.Find("a[href='/interviews/vet_amina']").Length())

	// Locked NPCs are hidden, not just unlisted.
	resp, err := client.Get(ctx, "/interviews/vet_amina")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, 404, resp.StatusCode)

	// The pig clue from the village elder unlocks the animal domain.
	doc, err = client.Ask(ctx, "mama_kofi", "Have the pigs been acting strange?")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#transcript").Text(), "The pigs have been strange this season")

	doc, err = client.GetDoc(ctx, "/interviews")
	require.NoError(t, err)
	assert.Equal(t, 6, doc.Find("ul.npc-list li").Length())
	assert.Equal(t, 1, doc.Find("a[href='/interviews/vet_amina']").Length())

	// Asking the same topic again repeats the same authored text.
	doc, err = client.Ask(ctx, "mama_kofi", "Tell me about the pigs again, please.")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("#transcript p:contains('The pigs have been strange this season')").Length())
}

func Test_application_fullPageKeepsHead(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	// The head must reach the browser intact or the stylesheet and the
	// htmx/SSE scripts never load.
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("head title").Text(), "Sidero Valley")
	assert.Equal(t, 1, doc.Find("head link[href='/static/main.css']").Length())
	assert.Equal(t, 2, doc.Find("head script[src*='htmx.org']").Length())

	// The CSP nonce on the script tags matches a served nonce, not a stub.
	nonce, ok := doc.Find("head script[src*='htmx.org']").First().Attr("nonce")
	require.True(t, ok)
	assert.NotEmpty(t, nonce)
}

func Test_application_spotMap(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/map")
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("table.spot-map tbody tr").Length())

	// Most affected village first, with the features that could explain it.
	first := doc.Find("table.spot-map tbody tr").First()
	assert.Contains(t, first.Text(), "Nalu")
	assert.Contains(t, first.Text(), "high")
	text := doc.Find("table.spot-map").Text()
	assert.Contains(t, text, "Kabwe")
	assert.Contains(t, text, "Tamu")
}

func Test_application_deflectionAndUnknown(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	// The vaccination clue needs the animal gate, so Dr. Chen deflects.
	doc, err := client.Ask(ctx, "dr_chen", "Were the children vaccinated?")
	require.NoError(t, err)
	deflection := doc.Find("#transcript p.msg-npc").Last().Text()
	assert.NotContains(t, deflection, "JE vaccination card")

	// A topic outside the document yields the authored unknown reply.
	doc, err = client.Ask(ctx, "dr_chen", "What is the price of copper this year?")
	require.NoError(t, err)
	unknown := doc.Find("#transcript p.msg-npc").Last().Text()
	assert.NotContains(t, unknown, "copper")
}

func Test_application_facilitatorGate(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	resp, err := client.Get(ctx, "/facilitator")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, 403, resp.StatusCode)

	doc, err := client.GetDoc(ctx, "/facilitator?token=test-facilitator-token")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("main").Text(), "Japanese encephalitis")
	assert.Equal(t, 1, doc.Find("h2:contains('What each informant knows')").Length())
}

func Test_application_labOrders(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	order := url.Values{"sample_type": {"human_serum"}, "village_id": {"nalu"}}
	doc, err := client.SubmitForm(ctx, "/lab", "/lab/order", order)
	require.NoError(t, err)
	// Ordered on day 1 with a 1-day turnaround, the result is sealed.
	assert.Contains(t, doc.Find("table.orders").Text(), "pending until day 2")
	assert.NotContains(t, doc.Find("table.orders").Text(), "POSITIVE")

	// Credits are debited once; the duplicate order is refused.
	assert.Equal(t, 1, doc.Find("nav :contains('Lab credits: 17')").Length())
	doc, err = client.SubmitForm(ctx, "/lab", "/lab/order", order)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("p.error").Text(), "already been ordered")
	assert.Equal(t, 1, doc.Find("nav :contains('Lab credits: 17')").Length())
}

// Test_application_fullInvestigation walks the whole five-day exercise from
// the alert to the debrief.
func Test_application_fullInvestigation(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	// Day 1: descriptive epi, hypotheses, first interviews.
	_, err = client.SubmitForm(ctx, "/overview", "/overview/case-definition",
		url.Values{"case_definition": {"Resident of Sidero Valley with fever and neurological signs since 1 June."}})
	require.NoError(t, err)
	_, err = client.SubmitForm(ctx, "/overview", "/overview/hypotheses",
		url.Values{"hypotheses": {"Mosquito-borne viral encephalitis\nWaterborne infection"}})
	require.NoError(t, err)
	_, err = client.Ask(ctx, "nurse_joy", "Which families are affected?")
	require.NoError(t, err)
	_, err = client.Ask(ctx, "mama_kofi", "How are the pigs this season?")
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/overview", "/day/advance", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("span.stat-pill:contains('Day 2 of 5')").Length())

	// Day 2: design the study and send the field team out.
	_, err = client.SubmitForm(ctx, "/study", "/study/design",
		url.Values{"study_design": {"Case-control study comparing exposures of cases and healthy village controls."}})
	require.NoError(t, err)
	questionnaire := "Does the household keep pigs?\n" +
		"Does the family live near rice paddies?\n" +
		"Does the child sleep under a bed net?\n" +
		"Has the child been vaccinated against JE?"
	_, err = client.SubmitForm(ctx, "/study", "/study/questionnaire",
		url.Values{"questionnaire": {questionnaire}})
	require.NoError(t, err)
	doc, err = client.SubmitForm(ctx, "/study", "/study/dataset", nil)
	require.NoError(t, err)
	assert.Equal(t, 22, doc.Find("table.dataset tbody tr").Length())

	doc, err = client.SubmitForm(ctx, "/study", "/day/advance", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("span.stat-pill:contains('Day 3 of 5')").Length())

	// Day 3: analysis.
	doc, err = client.SubmitForm(ctx, "/study", "/study/analyze", nil)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table.analysis").Text(), "Household keeps pigs")

	doc, err = client.SubmitForm(ctx, "/study", "/day/advance", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("span.stat-pill:contains('Day 4 of 5')").Length())

	// Day 4: sampling.
	_, err = client.SubmitForm(ctx, "/lab", "/lab/order",
		url.Values{"sample_type": {"pig_serum"}, "village_id": {"nalu"}})
	require.NoError(t, err)
	doc, err = client.SubmitForm(ctx, "/lab", "/day/advance", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("span.stat-pill:contains('Day 5 of 5')").Length())

	// The pig serum panel reports overnight and is open on day 5.
	doc, err = client.GetDoc(ctx, "/lab")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table.orders").Text(), "POSITIVE")

	// Day 5: the final briefing.
	_, err = client.SubmitForm(ctx, "/outcome", "/outcome/diagnosis",
		url.Values{"diagnosis": {"Japanese encephalitis spread by Culex mosquitoes from infected pigs"}})
	require.NoError(t, err)
	_, err = client.SubmitForm(ctx, "/outcome", "/outcome/recommendations",
		url.Values{"recommendations": {"Launch a JE vaccination campaign in the river villages\n" +
			"Distribute bed nets and larvicide the flooded paddies"}})
	require.NoError(t, err)
	doc, err = client.SubmitForm(ctx, "/outcome", "/outcome/submit", nil)
	require.NoError(t, err)

	debrief := doc.Find("section.debrief")
	require.Equal(t, 1, debrief.Length())
	assert.Contains(t, debrief.Text(), "/100")
	assert.Contains(t, debrief.Text(), "Projected additional cases")
}

func Test_application_dayAdvanceRedirectStaysLocal(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	// A well-formed return target is honored.
	doc, err := client.SubmitForm(ctx, "/overview", "/day/advance",
		url.Values{"return": {"/lab"}})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("form[action='/lab/order']").Length())

	// Off-site and protocol-relative targets fall back to the overview.
	for _, target := range []string{"https://evil.example/phish", "//evil.example/phish"} {
		doc, err = client.SubmitForm(ctx, "/overview", "/day/advance",
			url.Values{"return": {target}})
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Find("h2:contains('Hospital line list')").Length(), "return target %q", target)
	}
}

func Test_application_dayRefusesWithMissingTasks(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.AcknowledgeAlert(ctx)
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/overview", "/day/advance", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("span.stat-pill:contains('Day 1 of 5')").Length())
	assert.Contains(t, doc.Find("p.flash").Text(), "Before the day can end")
}
