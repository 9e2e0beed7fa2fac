package domain

// MachineTier identifies a frozen-drink-machine model by tank count.
type MachineTier string

const (
	MachineTierSingle MachineTier = "single"
	MachineTierDouble MachineTier = "double"
	MachineTierTriple MachineTier = "triple"
)

// MachineSpec is catalog data for a tier. PerDayPrice is zero in the
// reference entries; callers price tiers from the live rate table.
type MachineSpec struct {
	Tier           MachineTier `json:"tier"`
	CapacityLiters int32       `json:"capacity_liters"`
	MaxMixerSlots  int         `json:"max_mixer_slots"`
	PerDayPrice    float64     `json:"per_day_price"`
}

var machineSpecs = map[MachineTier]MachineSpec{
	MachineTierSingle: {Tier: MachineTierSingle, CapacityLiters: 15, MaxMixerSlots: 1},
	MachineTierDouble: {Tier: MachineTierDouble, CapacityLiters: 30, MaxMixerSlots: 2},
	MachineTierTriple: {Tier: MachineTierTriple, CapacityLiters: 45, MaxMixerSlots: 3},
}

// SpecForTier returns the reference data for a tier. The second return is
// false for tiers not in the catalog.
func SpecForTier(tier MachineTier) (MachineSpec, bool) {
	spec, ok := machineSpecs[tier]
	return spec, ok
}

// AllMachineSpecs lists the catalog in tier order.
func AllMachineSpecs() []MachineSpec {
	return []MachineSpec{
		machineSpecs[MachineTierSingle],
		machineSpecs[MachineTierDouble],
		machineSpecs[MachineTierTriple],
	}
}

// Mixer is a catalog entry for a per-tank flavor mix.
type Mixer struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Description     string  `json:"description"`
	PerDaySurcharge float64 `json:"per_day_surcharge"`
}

// Extra is a catalog entry for an add-on billed per rental day.
type Extra struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PerDayPrice float64 `json:"per_day_price"`
}

// MixerCatalog lists the flavor mixes offered on the order form. Surcharges
// are zero here; callers price entries from the live rate table by ID.
func MixerCatalog() []Mixer {
	return []Mixer{
		{ID: "margarita", Label: "Margarita", Description: "Classic lime margarita mix"},
		{ID: "pina_colada", Label: "Piña Colada", Description: "Pineapple and coconut cream"},
		{ID: "daiquiri", Label: "Strawberry Daiquiri", Description: "Strawberry daiquiri mix"},
		{ID: "wine_slush", Label: "Wine Slush", Description: "Frozen sangria-style wine slush"},
	}
}

// ExtraCatalog lists the rentable add-ons. Prices are zero here; callers
// price entries from the live rate table by ID.
func ExtraCatalog() []Extra {
	return []Extra{
		{ID: "table", Name: "Serving table"},
		{ID: "cups_100", Name: "Cups (pack of 100)"},
		{ID: "salt_rimmer", Name: "Salt rimmer"},
		{ID: "canopy", Name: "Pop-up canopy"},
	}
}
