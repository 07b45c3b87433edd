package attendance

import (
	"time"

	attendanceerrors "hr-admin/internal/attendance/errors"
)

// ClassifyStatus derives the attendance status for a day from the clock
// events and the rule in force. The order of checks is part of the business
// rule: a missing check-in is absent, lateness is judged before early leave,
// and an employee who is both late and leaves early counts as late only.
func ClassifyStatus(checkIn, checkOut *time.Time, rule *AttendanceRule) (string, error) {
	if checkIn == nil {
		return StatusAbsent, nil
	}

	workStart, err := clockMinutes(rule.WorkStartTime)
	if err != nil {
		return "", err
	}
	workEnd, err := clockMinutes(rule.WorkEndTime)
	if err != nil {
		return "", err
	}

	// Clock events keep their seconds: checking in at 09:15:59 against a
	// 09:15:00 bound is late.
	if secondsOfDay(*checkIn) > (workStart+rule.LateThresholdMinutes)*60 {
		return StatusLate, nil
	}

	if checkOut != nil && secondsOfDay(*checkOut) < (workEnd-rule.EarlyLeaveThresholdMinutes)*60 {
		return StatusEarly, nil
	}

	return StatusNormal, nil
}

// clockMinutes parses an HH:MM clock string into minutes since midnight.
func clockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, attendanceerrors.ErrInvalidClockFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
