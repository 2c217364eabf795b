package services

// DeliveryZone is one distance-fee tier. Zones are sorted ascending by
// MaxKm; the last tier also covers anything beyond it.
type DeliveryZone struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	MaxKm float64 `json:"max_km"`
	Fee   float64 `json:"fee"`
}

type FeeResult struct {
	FeePhp   float64 `json:"fee_php"`
	ZoneID   int     `json:"zone_id"`
	ZoneName string  `json:"zone_name"`
}

// FeeCalculator maps a pre-computed road distance to a flat delivery fee.
// Distance is supplied by the routing collaborator; this is a pure lookup.
type FeeCalculator struct {
	zones []DeliveryZone
	// Beyond this the caller is expected to refuse service entirely.
	ServiceCeilingKm float64
}

func NewFeeCalculator(zones []DeliveryZone, serviceCeilingKm float64) *FeeCalculator {
	return &FeeCalculator{zones: zones, ServiceCeilingKm: serviceCeilingKm}
}

// DefaultZones is the standard tier table for the service area.
func DefaultZones() []DeliveryZone {
	return []DeliveryZone{
		{ID: 1, Name: "Zone 1 (0-2 km)", MaxKm: 2, Fee: 29},
		{ID: 2, Name: "Zone 2 (2-5 km)", MaxKm: 5, Fee: 50},
		{ID: 3, Name: "Zone 3 (5-8 km)", MaxKm: 8, Fee: 80},
		{ID: 4, Name: "Zone 4 (8-12 km)", MaxKm: 12, Fee: 110},
	}
}

const DefaultServiceCeilingKm = 25

// Compute returns the fee tier for a distance. Distances past the last
// breakpoint are charged at the last tier, never rejected here.
func (f *FeeCalculator) Compute(distanceKm float64) FeeResult {
	if distanceKm < 0 {
		distanceKm = 0
	}
	for _, z := range f.zones {
		if distanceKm <= z.MaxKm {
			return FeeResult{FeePhp: z.Fee, ZoneID: z.ID, ZoneName: z.Name}
		}
	}
	last := f.zones[len(f.zones)-1]
	return FeeResult{FeePhp: last.Fee, ZoneID: last.ID, ZoneName: last.Name}
}

// WithinServiceArea tells the caller whether delivery should be offered at
// all. The fee table itself never refuses a distance.
func (f *FeeCalculator) WithinServiceArea(distanceKm float64) bool {
	return distanceKm <= f.ServiceCeilingKm
}
