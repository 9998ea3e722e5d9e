package models

// Scenario bundles the immutable ground truth for one outbreak scenario.
// It is loaded once at startup and shared read-only between sessions.
type Scenario struct {
	Villages         []Village
	Households       []Household
	Individuals      []Individual
	LabSamples       []LabSample
	EnvironmentSites []EnvironmentSite
	NPCs             []NPC

	// Disease is the true cause of the outbreak that the trainee's final
	// diagnosis is checked against.
	Disease string
}

// Village is one settlement in the district.
type Village struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Population     int    `db:"population"`
	PigDensity     string `db:"pig_density"`
	HasRicePaddies bool   `db:"has_rice_paddies"`
}

// Household groups individuals living under one roof.
type Household struct {
	ID          string `db:"id"`
	VillageID   string `db:"village_id"`
	KeepsPigs   bool   `db:"keeps_pigs"`
	NearPaddies bool   `db:"near_paddies"`
	UsesBednets bool   `db:"uses_bednets"`
	WaterSource string `db:"water_source"`
}

// Individual is one district resident in the ground truth.
type Individual struct {
	ID          string `db:"id"`
	HouseholdID string `db:"household_id"`
	Age         int    `db:"age"`
	Sex         string `db:"sex"`
	Vaccinated  bool   `db:"vaccinated"`
	Symptomatic bool   `db:"symptomatic"`
	// OnsetDate is an ISO date (YYYY-MM-DD), empty for non-cases.
	OnsetDate   string `db:"onset_date"`
	SevereNeuro bool   `db:"severe_neuro"`
	Outcome     string `db:"outcome"`
}

// LabSample is a collectable specimen and its true test result.
type LabSample struct {
	ID           string `db:"id"`
	SampleType   string `db:"sample_type"`
	VillageID    string `db:"village_id"`
	TruePositive bool   `db:"true_positive"`
	Description  string `db:"description"`
}

// Sample types known to the lab.
const (
	SampleHumanCSF     = "human_csf"
	SampleHumanSerum   = "human_serum"
	SamplePigSerum     = "pig_serum"
	SampleMosquitoPool = "mosquito_pool"
)

// EnvironmentSite is a surveyed mosquito-breeding site.
type EnvironmentSite struct {
	ID            string `db:"id"`
	VillageID     string `db:"village_id"`
	SiteType      string `db:"site_type"`
	BreedingIndex string `db:"breeding_index"`
}

// VillageByID returns the village with the given ID, or nil.
func (s *Scenario) VillageByID(id string) *Village {
	for i := range s.Villages {
		if s.Villages[i].ID == id {
			return &s.Villages[i]
		}
	}
	return nil
}

// HouseholdByID returns the household with the given ID, or nil.
func (s *Scenario) HouseholdByID(id string) *Household {
	for i := range s.Households {
		if s.Households[i].ID == id {
			return &s.Households[i]
		}
	}
	return nil
}

// NPCByID returns the NPC document with the given ID, or nil.
func (s *Scenario) NPCByID(id string) *NPC {
	for i := range s.NPCs {
		if s.NPCs[i].ID == id {
			return &s.NPCs[i]
		}
	}
	return nil
}
