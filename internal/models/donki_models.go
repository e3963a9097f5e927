package models

// DONKILinkedEvent is a cross-reference between DONKI catalog entries
type DONKILinkedEvent struct {
	ActivityID string `json:"activityID"`
}

// DONKIFlare is a raw solar flare record from the NASA DONKI FLR catalog
type DONKIFlare struct {
	FlrID           string             `json:"flrID"`
	BeginTime       string             `json:"beginTime"`
	PeakTime        string             `json:"peakTime"`
	EndTime         string             `json:"endTime"`
	ClassType       string             `json:"classType"`
	SourceLocation  string             `json:"sourceLocation"`
	ActiveRegionNum int                `json:"activeRegionNum"`
	LinkedEvents    []DONKILinkedEvent `json:"linkedEvents"`
}

// DONKICMEAnalysis is one analysis pass attached to a DONKI CME record.
// Numeric fields are nullable in the catalog.
type DONKICMEAnalysis struct {
	Time215        string   `json:"time21_5"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	HalfAngle      *float64 `json:"halfAngle"`
	Speed          *float64 `json:"speed"`
	IsMostAccurate bool     `json:"isMostAccurate"`
	Note           string   `json:"note"`
}

// DONKICME is a raw CME record from the NASA DONKI CME catalog
type DONKICME struct {
	ActivityID     string             `json:"activityID"`
	StartTime      string             `json:"startTime"`
	SourceLocation string             `json:"sourceLocation"`
	Note           string             `json:"note"`
	CMEAnalyses    []DONKICMEAnalysis `json:"cmeAnalyses"`
	LinkedEvents   []DONKILinkedEvent `json:"linkedEvents"`
}

// BestAnalysis returns the preferred analysis for a CME record: the one
// flagged most accurate, else the last one submitted.
func (c *DONKICME) BestAnalysis() (DONKICMEAnalysis, bool) {
	if len(c.CMEAnalyses) == 0 {
		return DONKICMEAnalysis{}, false
	}
	for _, a := range c.CMEAnalyses {
		if a.IsMostAccurate {
			return a, true
		}
	}
	return c.CMEAnalyses[len(c.CMEAnalyses)-1], true
}
