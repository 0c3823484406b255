package gamification

import "math"

// Tier is one bracket of the fixed level ladder. MaxPoints == 0 marks the
// open-ended top tier.
type Tier struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
	MaxPoints int    `json:"maxPoints,omitempty"`
	Color     string `json:"color"`
}

// LevelInfo is a tier resolved against a concrete point total.
type LevelInfo struct {
	Tier
	Progress      int `json:"progress"`      // percent within the tier, capped at 100
	PointsInLevel int `json:"pointsInLevel"`
	PointsToNext  int `json:"pointsToNext"` // 0 for the top tier
}

var tiers = []Tier{
	{Level: 1, Name: "Beginner", MinPoints: 0, MaxPoints: 199, Color: "#94a3b8"},
	{Level: 2, Name: "Student", MinPoints: 200, MaxPoints: 499, Color: "#3b82f6"},
	{Level: 3, Name: "Scholar", MinPoints: 500, MaxPoints: 999, Color: "#8b5cf6"},
	{Level: 4, Name: "Expert", MinPoints: 1000, MaxPoints: 1999, Color: "#f59e0b"},
	{Level: 5, Name: "Master", MinPoints: 2000, MaxPoints: 3999, Color: "#ef4444"},
	{Level: 6, Name: "Grandmaster", MinPoints: 4000, MaxPoints: 7999, Color: "#10b981"},
	{Level: 7, Name: "Legend", MinPoints: 8000, MaxPoints: 15999, Color: "#6366f1"},
	{Level: 8, Name: "Mythical", MinPoints: 16000, MaxPoints: 0, Color: "#ec4899"},
}

// Tiers returns the full ladder, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// LevelFor resolves a point total to its tier. It scans from the highest
// tier down and returns the first tier whose minimum is at or below the
// total. Negative totals resolve to the bottom tier.
func LevelFor(points int) LevelInfo {
	for i := len(tiers) - 1; i >= 0; i-- {
		tier := tiers[i]
		if points < tier.MinPoints {
			continue
		}
		info := LevelInfo{Tier: tier, PointsInLevel: points - tier.MinPoints}
		if tier.MaxPoints == 0 {
			// Open-ended top tier: progress is pinned at 100.
			info.Progress = 100
			return info
		}
		span := tier.MaxPoints - tier.MinPoints
		progress := int(math.Round(float64(points-tier.MinPoints) * 100 / float64(span)))
		if points > tier.MaxPoints {
			progress = 100
		}
		info.Progress = progress
		info.PointsToNext = tier.MaxPoints - points + 1
		return info
	}
	return LevelInfo{Tier: tiers[0]}
}
