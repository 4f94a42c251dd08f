package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// CountWeekdays counts the Monday-Friday dates in the inclusive range
// [startDate, endDate]. Clock components are ignored.
func CountWeekdays(startDate, endDate time.Time) (int, error) {
	start := validator.TruncateToDate(startDate)
	end := validator.TruncateToDate(endDate)
	if start.After(end) {
		return 0, leave.ErrInvalidRange
	}

	workingDays := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if isWeekend(current) {
			continue
		}
		workingDays++
	}

	return workingDays, nil
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
