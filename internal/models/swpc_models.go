package models

// GOESXrayPoint is one entry of the SWPC GOES X-ray flux feed.
// The feed mixes two energy channels; consumers filter on Energy.
type GOESXrayPoint struct {
	TimeTag   string  `json:"time_tag"`
	Satellite int     `json:"satellite"`
	Flux      float64 `json:"flux"`
	Energy    string  `json:"energy"` // "0.05-0.4nm" or "0.1-0.8nm"
}

// GOESProtonPoint is one entry of the SWPC GOES integral proton flux feed
type GOESProtonPoint struct {
	TimeTag   string  `json:"time_tag"`
	Satellite int     `json:"satellite"`
	Flux      float64 `json:"flux"`
	Energy    string  `json:"energy"` // ">=10 MeV", ">=50 MeV", ">=100 MeV"
}
