package progress

import "time"

// DaysBetween counts calendar days from a to b in loc, ignoring the time of
// day. It is negative when b falls on an earlier day than a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return int(civilDay(b, loc).Sub(civilDay(a, loc)).Hours() / 24)
}

func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UpdateStreak applies a study session at now to the profile's streak.
func UpdateStreak(p *UserProfile, now time.Time, loc *time.Location) {
	if p.LastStudyDate == nil {
		p.CurrentStreak = 1
	} else {
		switch days := DaysBetween(*p.LastStudyDate, now, loc); {
		case days == 0:
		case days == 1:
			p.CurrentStreak++
		case days > 1:
			p.CurrentStreak = 1
		default:
			// Clock moved backwards: keep the streak and the later date.
			if p.LongestStreak < p.CurrentStreak {
				p.LongestStreak = p.CurrentStreak
			}
			return
		}
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	t := now
	p.LastStudyDate = &t
}
