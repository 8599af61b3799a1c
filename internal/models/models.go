package models

import "time"

// Payloads consumed from the GaiaEyes backend and the media CDN. These are
// read-only and externally versioned; the service never writes them back.

// Dashboard is the day-level dashboard payload behind /v1/dashboard
type Dashboard struct {
	OK          bool          `json:"ok"`
	Day         string        `json:"day"`
	KPIs        DashboardKPIs `json:"kpis"`
	Alerts      []Alert       `json:"alerts"`
	Drivers     []Driver      `json:"drivers"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// DashboardKPIs holds the headline numbers for the dashboard card
type DashboardKPIs struct {
	KpNow         float64 `json:"kp_now"`
	KpMax24h      float64 `json:"kp_max_24h"`
	BzNT          float64 `json:"bz_nt"`
	SolarWindKms  float64 `json:"solar_wind_kms"`
	ProtonFluxPFU float64 `json:"proton_flux_pfu"`
	XrayClass     string  `json:"xray_class"`
}

// Alert is an active NOAA-scale alert carried in the dashboard payload
type Alert struct {
	Scale    string    `json:"scale"` // G, S or R
	Level    int       `json:"level"`
	Headline string    `json:"headline"`
	IssuedAt time.Time `json:"issued_at"`
}

// Driver describes a contributing condition (CME arrival, coronal hole, ...)
type Driver struct {
	Name   string  `json:"name"`
	Detail string  `json:"detail"`
	Weight float64 `json:"weight"`
}

// SpaceVisuals is the /v1/space/visuals payload: imagery URLs plus the
// recent GOES proton and X-ray flux series.
type SpaceVisuals struct {
	Images    SpaceImages `json:"images"`
	Protons   []Sample    `json:"protons"`
	Xray      []Sample    `json:"xray"`
	Kp        []Sample    `json:"kp"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SpaceImages holds CDN-relative paths for the solar imagery set
type SpaceImages struct {
	SunAIA304   string `json:"sun_aia_304"`
	LascoC3     string `json:"lasco_c3"`
	AuroraNorth string `json:"aurora_north"`
	AuroraSouth string `json:"aurora_south"`
}

// Sample is a single timestamped measurement in a flux or index series
type Sample struct {
	TimeTag string  `json:"time_tag"`
	Value   float64 `json:"value"`
}

// Time parses the sample timestamp. NOAA-style time tags come without a
// zone suffix and are UTC; RFC3339 is accepted as well.
func (s Sample) Time() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s.TimeTag); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s.TimeTag)
}

// KpSchumannBadges is the /v1/badges/kp_schumann payload
type KpSchumannBadges struct {
	Kp        Badge     `json:"kp"`
	Schumann  Badge     `json:"schumann"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Badge is a single pre-computed badge value with its display tone
type Badge struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Tone  string  `json:"tone"`
}

// Magnetosphere is the /v1/space/magnetosphere payload
type Magnetosphere struct {
	StandoffRe   float64   `json:"r0_re"`         // magnetopause standoff distance, Earth radii
	Kp           float64   `json:"kp"`
	PlasmapauseL float64   `json:"plasmapause_l"` // plasmapause L-shell
	Trend        string    `json:"trend"`         // compressing, expanding or steady
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuroraNowcast is the per-hemisphere OVATION nowcast summary
type AuroraNowcast struct {
	Hemisphere  string    `json:"hemisphere"` // north or south
	Kp          float64   `json:"kp"`
	ViewlineLat float64   `json:"viewline_lat"`
	OvationURL  string    `json:"ovation_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Viewline is the equatorward aurora visibility line for one night
type Viewline struct {
	Night     string          `json:"night"` // tonight or tomorrow
	Points    []ViewlinePoint `json:"points"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ViewlinePoint is one lon/lat sample along the viewline, degrees
type ViewlinePoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}
