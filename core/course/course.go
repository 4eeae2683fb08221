package course

// Progress constants for the reference deployment.
const (
	// CompletionThreshold is the percent at/above which a video counts as
	// completed for aggregate & certificate purposes.
	CompletionThreshold = 98.0

	// InitialProgress is the floor clients report for a passive/partial
	// view event. The server is pass-through and never applies it.
	InitialProgress = 30.0

	// DefaultUnlockDays is the account age (in rolling 24h days) gating
	// advanced videos.
	DefaultUnlockDays = 7
)

type Tier string

const (
	TierBasic    Tier = "basic"    // available immediately
	TierAdvanced Tier = "advanced" // time-gated
)

type Video struct {
	ID   string `json:"id"`
	Tier Tier   `json:"tier"`
}

// Catalog is the fixed ordered set of videos the course comprises.
// It is referenced, never mutated.
type Catalog []Video

func (c Catalog) Contains(id string) bool {
	for _, v := range c {
		if v.ID == id {
			return true
		}
	}
	return false
}

func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, v := range c {
		ids = append(ids, v.ID)
	}
	return ids
}

// DefaultCatalog is the production course: 5 basic videos + 7 advanced ones.
var DefaultCatalog = Catalog{
	{ID: "boasvindas", Tier: TierBasic},
	{ID: "expectativas", Tier: TierBasic},
	{ID: "cuidado", Tier: TierBasic},
	{ID: "rendaextra", Tier: TierBasic},
	{ID: "comolucrar", Tier: TierBasic},
	{ID: "estrategia1", Tier: TierAdvanced},
	{ID: "estrategia2", Tier: TierAdvanced},
	{ID: "estrategia3", Tier: TierAdvanced},
	{ID: "estrategia4", Tier: TierAdvanced},
	{ID: "estrategia5", Tier: TierAdvanced},
	{ID: "ultimaaula", Tier: TierAdvanced},
	{ID: "bonus", Tier: TierAdvanced},
}
