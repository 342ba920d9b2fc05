package assignment

import (
	"time"

	"github.com/staffgrid/backend/internal/availability"
	"github.com/staffgrid/backend/internal/timeoff"
	"github.com/staffgrid/backend/internal/timeutil"
)

// TimeOffReader is the slice of the time-off store the evaluator reads.
type TimeOffReader interface {
	Find(filter timeoff.Filter) ([]*timeoff.TimeOff, error)
}

// AvailabilityReader is the slice of the availability store the evaluator reads.
type AvailabilityReader interface {
	Find(filter availability.Filter) ([]*availability.Availability, error)
}

// ConflictEvaluator hosts the three scheduling predicates. Each one takes a
// read-only snapshot from the store and decides in memory; none of them
// writes. A store failure propagates as-is, never as a verdict.
type ConflictEvaluator struct {
	assignments  RepositoryAPI
	timeOff      TimeOffReader
	availability AvailabilityReader
}

func NewConflictEvaluator(assignments RepositoryAPI, timeOff TimeOffReader, avail AvailabilityReader) *ConflictEvaluator {
	return &ConflictEvaluator{
		assignments:  assignments,
		timeOff:      timeOff,
		availability: avail,
	}
}

// HasTimeOffConflict reports whether an APPROVED time-off row covers the
// date. Coverage is inclusive on both ends, so a single-day leave still
// blocks that day. PENDING and DECLINED rows never block.
func (e *ConflictEvaluator) HasTimeOffConflict(employeeID string, date time.Time) (bool, error) {
	rows, err := e.timeOff.Find(timeoff.Filter{
		EmployeeID: employeeID,
		Status:     timeoff.StatusApproved,
	})
	if err != nil {
		return false, err
	}

	for _, t := range rows {
		if timeutil.WithinDates(date, t.StartDate, t.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

// HasShiftOverlap reports whether the employee already holds an assignment on
// the same calendar date whose shift window intersects [startTime, endTime).
// excludeID skips the assignment being updated in place.
func (e *ConflictEvaluator) HasShiftOverlap(employeeID string, date time.Time, startTime, endTime string, excludeID string) (bool, error) {
	start, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return false, err
	}

	others, err := e.assignments.FindForEmployeeOnDate(employeeID, date, excludeID)
	if err != nil {
		return false, err
	}

	for _, other := range others {
		if other.Shift == nil {
			continue
		}
		otherStart, err := timeutil.ToMinutes(other.Shift.StartTime)
		if err != nil {
			return false, err
		}
		otherEnd, err := timeutil.ToMinutes(other.Shift.EndTime)
		if err != nil {
			return false, err
		}
		if timeutil.RangesOverlap(start, end, otherStart, otherEnd) {
			return true, nil
		}
	}
	return false, nil
}

// ViolatesAvailability checks the proposed window against the employee's
// declared windows for that weekday. No declared windows means open by
// default: the check never blocks. With windows declared, the proposed
// [start, end) must sit fully inside at least one of them.
func (e *ConflictEvaluator) ViolatesAvailability(employeeID string, date time.Time, startTime, endTime string) (bool, error) {
	start, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return false, err
	}

	weekday := timeutil.Weekday(date)
	windows, err := e.availability.Find(availability.Filter{
		EmployeeID: employeeID,
		Weekday:    &weekday,
	})
	if err != nil {
		return false, err
	}
	if len(windows) == 0 {
		return false, nil
	}

	for _, w := range windows {
		wStart, err := timeutil.ToMinutes(w.StartTime)
		if err != nil {
			return false, err
		}
		wEnd, err := timeutil.ToMinutes(w.EndTime)
		if err != nil {
			return false, err
		}
		if wStart <= start && end <= wEnd {
			return false, nil
		}
	}
	return true, nil
}
