package models

// Domain tags an NPC with the One Health perspective they represent.
type Domain string

const (
	DomainHuman       Domain = "human"
	DomainAnimal      Domain = "animal"
	DomainEnvironment Domain = "environment"
)

// Gates that can be opened during an investigation. The human gate is open
// from the start; the others open when a clue tagged with the gate is
// revealed.
const (
	GateHuman          = "human"
	GateAnimal         = "animal"
	GateEnvironment    = "environment"
	GatePrivateClinics = "private-clinics"
)

// NPC is the authored knowledge document for one non-player character.
// The four knowledge categories have pairwise disjoint topic keys, which
// Scenario.Validate enforces.
type NPC struct {
	ID   string
	Name string
	Role string
	// Domain is the One Health perspective this NPC covers.
	Domain Domain
	// RequiresGate must be open before the NPC can be interviewed.
	// Empty means available from the start of the investigation.
	RequiresGate string
	// Persona is the phrasing instruction for the text-generation
	// collaborator. It never contains outbreak facts.
	Persona string
	// DataAccess scopes which ground-truth summary the NPC is aware of,
	// e.g. "hospital_cases" or "vet_surveillance".
	DataAccess string
	Cost       int

	// BaseFacts are always shareable when their topic is asked.
	BaseFacts []Fact
	// Clues are hidden behind their gate until it is open.
	Clues []Clue
	// RedHerrings are plausible-but-wrong statements.
	RedHerrings []Fact
	// Unknowns are topics the NPC truthfully knows nothing about.
	Unknowns []string

	// UnknownReply is returned verbatim for unmatched or unknown topics so
	// that no answer can be fabricated outside the authored set.
	UnknownReply string
	// DeflectionReply is returned when a clue's gate is still closed.
	DeflectionReply string
	// GreetingReply is returned for plain greetings.
	GreetingReply string
}

// Fact is an authored statement triggered by a topic key and its keyword set.
type Fact struct {
	Topic    string
	Keywords []string
	Text     string
}

// Clue is a gated statement. RequiresGate must be open before the clue is
// revealed; revealing a clue with a non-empty Unlocks opens that gate.
type Clue struct {
	Topic        string
	Keywords     []string
	Text         string
	RequiresGate string
	Unlocks      string
}
