package gamification

import (
	"time"

	"edquiz-service/internal/domain"
)

// Truncate drops the time-of-day component in the given location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextStreak advances streak data for activity on the given day. It is a
// pure function of (lastActiveDate, today):
//
//	no prior date       -> streak = 1
//	prior == yesterday  -> streak + 1, longest = max(longest, streak)
//	prior == today      -> unchanged
//	prior <  yesterday  -> streak resets to 1
func NextStreak(data domain.StreakData, today time.Time) domain.StreakData {
	day := Truncate(today)

	if data.LastActiveDate == nil {
		return domain.StreakData{CurrentStreak: 1, LongestStreak: max(data.LongestStreak, 1), LastActiveDate: &day}
	}

	last := Truncate(*data.LastActiveDate)
	yesterday := day.AddDate(0, 0, -1)

	next := data
	switch {
	case last.Equal(day):
		// Already counted today.
	case last.Equal(yesterday):
		next.CurrentStreak++
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
	default:
		next.CurrentStreak = 1
		if next.LongestStreak < 1 {
			next.LongestStreak = 1
		}
	}
	next.LastActiveDate = &day
	return next
}
