package trip

// Theme is the per-operator widget styling delivered with the trip config.
type Theme struct {
	FontFamily   string
	PrimaryColor string
	DangerColor  string
	BgColor      string
	TextColor    string
	RadiusPx     int
}

// Config holds the immutable speed bounds and theme for one trip.
type Config struct {
	ExternalTripID  string
	SpeedMinKn      float64
	SpeedMaxKn      float64
	SpeedDefaultKn  float64
	MaxReductionPct float64
	Theme           Theme
}

// Catalog is a read-only lookup of trip configurations.
type Catalog interface {
	Get(externalTripID string) (Config, bool)
}

type staticCatalog struct {
	trips map[string]Config
}

// NewStaticCatalog returns the fixed trip catalog used while the catalog
// service does not exist yet. Entries are copied on lookup; callers can
// never mutate the catalog.
func NewStaticCatalog() Catalog {
	trips := map[string]Config{
		"HEL-TLL-2025-12-12": {
			ExternalTripID:  "HEL-TLL-2025-12-12",
			SpeedMinKn:      18.0,
			SpeedMaxKn:      22.0,
			SpeedDefaultKn:  21.0,
			MaxReductionPct: 20,
			Theme: Theme{
				FontFamily:   "Inter, system-ui",
				PrimaryColor: "#10b981",
				DangerColor:  "#ef4444",
				BgColor:      "#ffffff",
				TextColor:    "#0f172a",
				RadiusPx:     18,
			},
		},
		"VAA-UME-2025-12-15": {
			ExternalTripID:  "VAA-UME-2025-12-15",
			SpeedMinKn:      16.0,
			SpeedMaxKn:      21.0,
			SpeedDefaultKn:  19.5,
			MaxReductionPct: 18,
			Theme: Theme{
				FontFamily:   "'Trebuchet MS', 'Segoe UI', system-ui",
				PrimaryColor: "#2563eb",
				DangerColor:  "#e11d48",
				BgColor:      "#b8dcff",
				TextColor:    "#420003",
				RadiusPx:     0,
			},
		},
	}
	return &staticCatalog{trips: trips}
}

func (c *staticCatalog) Get(externalTripID string) (Config, bool) {
	cfg, ok := c.trips[externalTripID]
	return cfg, ok
}
