package course

import "time"

const day = 24 * time.Hour

// EvaluateUnlock decides advanced-content availability from account age.
// The window is a rolling unlockDays×24h period after createdAt, not a
// calendar-day one: two accounts created a minute apart unlock a minute
// apart. No remaining breakdown is produced once available.
func EvaluateUnlock(createdAt, now time.Time, unlockDays int) Availability {
	daysElapsed := int(now.Sub(createdAt) / day)
	if daysElapsed >= unlockDays {
		return Availability{Available: true, CreatedAt: createdAt}
	}

	unlockDate := createdAt.Add(time.Duration(unlockDays) * day)
	left := unlockDate.Sub(now)
	return Availability{
		CreatedAt: createdAt,
		Remaining: &RemainingTime{
			Days:       int(left / day),
			Hours:      int((left % day) / time.Hour),
			UnlockDate: unlockDate,
		},
	}
}
