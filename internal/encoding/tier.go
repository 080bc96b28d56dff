package encoding

import "strings"

// Tier is a user-facing quality level.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
	TierUltra  Tier = "ultra"
)

// Quality is the rate control pair behind a tier. CRF drives the software
// encoder and Bitrate the hardware encoder.
type Quality struct {
	CRF     int
	Bitrate string
}

var qualityTable = map[Tier]Quality{
	TierLow:    {CRF: 28, Bitrate: "2M"},
	TierMedium: {CRF: 23, Bitrate: "5M"},
	TierHigh:   {CRF: 18, Bitrate: "10M"},
	TierUltra:  {CRF: 15, Bitrate: "20M"},
}

// Tiers returns every tier from smallest to largest output.
func Tiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh, TierUltra}
}

// ParseTier resolves a tier name case-insensitively. Unknown names resolve
// to TierHigh with ok=false.
func ParseTier(value string) (Tier, bool) {
	tier := Tier(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := qualityTable[tier]; ok {
		return tier, true
	}
	return TierHigh, false
}

// Quality returns the rate control pair for t, falling back to high.
func (t Tier) Quality() Quality {
	if q, ok := qualityTable[t]; ok {
		return q
	}
	return qualityTable[TierHigh]
}

func (t Tier) String() string { return string(t) }
