package response

import (
	"pacectrl/internal/domain/trip"
)

type ThemeResponse struct {
	FontFamily   string `json:"font_family"`
	PrimaryColor string `json:"primary_color"`
	DangerColor  string `json:"danger_color"`
	BgColor      string `json:"bg_color"`
	TextColor    string `json:"text_color"`
	RadiusPx     int    `json:"radius_px"`
}

type WidgetConfigResponse struct {
	ExternalTripID  string        `json:"external_trip_id"`
	SpeedMinKn      float64       `json:"speed_min_kn"`
	SpeedMaxKn      float64       `json:"speed_max_kn"`
	SpeedDefaultKn  float64       `json:"speed_default_kn"`
	MaxReductionPct float64       `json:"max_reduction_pct"`
	Theme           ThemeResponse `json:"theme"`
}

func FromTripConfig(cfg *trip.Config) *WidgetConfigResponse {
	return &WidgetConfigResponse{
		ExternalTripID:  cfg.ExternalTripID,
		SpeedMinKn:      cfg.SpeedMinKn,
		SpeedMaxKn:      cfg.SpeedMaxKn,
		SpeedDefaultKn:  cfg.SpeedDefaultKn,
		MaxReductionPct: cfg.MaxReductionPct,
		Theme: ThemeResponse{
			FontFamily:   cfg.Theme.FontFamily,
			PrimaryColor: cfg.Theme.PrimaryColor,
			DangerColor:  cfg.Theme.DangerColor,
			BgColor:      cfg.Theme.BgColor,
			TextColor:    cfg.Theme.TextColor,
			RadiusPx:     cfg.Theme.RadiusPx,
		},
	}
}
