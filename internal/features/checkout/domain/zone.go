package domain

// Zone is one of two shipping regions: the primary metro ("inside") and
// everywhere else ("outside"). Exactly these two zones exist.
type Zone string

const (
	// ZoneUnset means no zone has been chosen yet. Initial state for guests;
	// authenticated users are seeded from their selected address.
	ZoneUnset Zone = ""
	// ZoneInside is the primary metro zone.
	ZoneInside Zone = "inside"
	// ZoneOutside covers every delivery destination outside the metro.
	ZoneOutside Zone = "outside"
)

// Valid reports whether the zone is one of the two concrete regions.
func (z Zone) Valid() bool {
	return z == ZoneInside || z == ZoneOutside
}

// LocationData is the reference table driving zone resolution: area lists per
// region, the secondary city names, and the flat shipping rates.
type LocationData struct {
	// MetroCity is the canonical name of the primary metro city.
	MetroCity string `json:"metro_city"`
	// MetroAreas are the areas available inside the metro zone.
	MetroAreas []string `json:"metro_areas"`
	// SuburbanAreas are the metro-suburban areas, delivered at the outside rate.
	SuburbanAreas []string `json:"suburban_areas"`
	// OtherCities are the selectable secondary city names.
	OtherCities []string `json:"other_cities"`
	// OtherCityAreas are the areas belonging to the secondary cities.
	OtherCityAreas []string `json:"other_city_areas"`
	// Rates holds the flat shipping rates and the free-shipping threshold.
	Rates RateTable `json:"rates"`
}

// Cities returns every selectable city, metro first.
func (l LocationData) Cities() []string {
	cities := make([]string, 0, len(l.OtherCities)+1)
	cities = append(cities, l.MetroCity)
	cities = append(cities, l.OtherCities...)
	return cities
}

// AreasFor returns the area options for a zone. Inside restricts to the metro
// list; outside is the union of suburban and other-city areas. No per-city
// partitioning is enforced outside the metro.
func (l LocationData) AreasFor(zone Zone) []string {
	if zone == ZoneInside {
		return append([]string(nil), l.MetroAreas...)
	}
	areas := make([]string, 0, len(l.SuburbanAreas)+len(l.OtherCityAreas))
	areas = append(areas, l.SuburbanAreas...)
	areas = append(areas, l.OtherCityAreas...)
	return areas
}

// ZoneState is the tuple zone resolution converges on.
type ZoneState struct {
	// Zone is the resolved shipping zone.
	Zone Zone `json:"zone"`
	// City is the selected city. Inside the metro it is always the metro's
	// canonical name.
	City string `json:"city"`
	// AreaOptions are the area choices valid for the current zone.
	AreaOptions []string `json:"area_options"`
}

// ZoneEvent is a discrete input to the zone reducer. The two event kinds are
// the only ways zone state changes for a guest.
type ZoneEvent interface {
	isZoneEvent()
}

// ManualToggle is an explicit zone choice made by the user.
type ManualToggle struct {
	// Zone is the chosen zone.
	Zone Zone
}

func (ManualToggle) isZoneEvent() {}

// CityChanged is a city selection, from which the zone is derived.
type CityChanged struct {
	// City is the newly selected city name.
	City string
}

func (CityChanged) isZoneEvent() {}

// Apply computes the next zone state for an event. It is a pure function:
// both the manual toggle and the city-derivation path converge on identical
// state for the same target zone, and reapplying an event is idempotent.
func Apply(state ZoneState, event ZoneEvent, loc LocationData) ZoneState {
	switch e := event.(type) {
	case ManualToggle:
		if e.Zone == ZoneInside {
			return enterInside(loc)
		}
		if e.Zone == ZoneOutside {
			return enterOutside(state.City, loc)
		}
		return state
	case CityChanged:
		if e.City == loc.MetroCity {
			return enterInside(loc)
		}
		return enterOutside(e.City, loc)
	default:
		return state
	}
}

// SeedFromAddress derives zone state once from a saved address. There is no
// manual toggle path for authenticated users.
func SeedFromAddress(insideMetro bool, city string, loc LocationData) ZoneState {
	if insideMetro {
		return enterInside(loc)
	}
	return enterOutside(city, loc)
}

// enterInside forces the city to the metro canonical name, overwriting any
// previously chosen city.
func enterInside(loc LocationData) ZoneState {
	return ZoneState{
		Zone:        ZoneInside,
		City:        loc.MetroCity,
		AreaOptions: loc.AreasFor(ZoneInside),
	}
}

func enterOutside(city string, loc LocationData) ZoneState {
	return ZoneState{
		Zone:        ZoneOutside,
		City:        city,
		AreaOptions: loc.AreasFor(ZoneOutside),
	}
}
