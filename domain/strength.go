package domain

import "math"

// RecentWindowDays is the lookback for the consistency boost, boundary
// inclusive. It is a fixed constant of the system.
const RecentWindowDays = 90

// Strength is the relationship freshness record rendered per contact.
type Strength struct {
	Label             string `json:"label"`
	Score             int    `json:"score"`
	State             string `json:"state"`
	DaysSince         *int   `json:"daysSince"`
	NextDueIn         int    `json:"nextDueIn"`
	OverdueBy         *int   `json:"overdueBy,omitempty"`
	LastTouchpoint    *Date  `json:"lastTouchpoint"`
	TouchpointsRecent int    `json:"touchpointsRecent"`
}

// ComputeStrength scores how fresh a relationship is. It is a pure function
// of the cadence, the most recent contact date, the count of touchpoints in
// the recent window and today's date.
//
// A non-positive cadence is defended here by clamping to one day; boundary
// validators still reject it upstream. A future-dated last contact yields a
// negative daysSince and simply propagates.
func ComputeStrength(cadenceDays int, lastContact *Date, recentCount int, today Date) Strength {
	target := cadenceDays
	if target < 1 {
		target = 1
	}

	if lastContact == nil || lastContact.IsZero() {
		return Strength{
			Label:             "Cold start",
			Score:             25,
			State:             "danger",
			NextDueIn:         target,
			TouchpointsRecent: recentCount,
		}
	}

	daysSince := today.DaysSince(*lastContact)
	freshnessPenalty := int(math.Floor(float64(daysSince) / float64(target) * 60))
	consistencyBoost := recentCount * 2
	if consistencyBoost > 10 {
		consistencyBoost = 10
	}
	score := 100 - freshnessPenalty + consistencyBoost
	if score < 5 {
		score = 5
	}
	if score > 100 {
		score = 100
	}

	var label, state string
	switch {
	case float64(daysSince) <= 0.5*float64(target):
		label, state = "Strong", "success"
	case daysSince <= target:
		label, state = "Steady", "primary"
	case float64(daysSince) <= 1.5*float64(target):
		label, state = "Needs touch", "warning"
	default:
		label, state = "At risk", "danger"
	}

	nextDueIn := target - daysSince
	var overdueBy *int
	if nextDueIn < 0 {
		v := -nextDueIn
		overdueBy = &v
	}

	return Strength{
		Label:             label,
		Score:             score,
		State:             state,
		DaysSince:         &daysSince,
		NextDueIn:         nextDueIn,
		OverdueBy:         overdueBy,
		LastTouchpoint:    lastContact,
		TouchpointsRecent: recentCount,
	}
}
