package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssignmentCreated    = "assignment.created"
	AssignmentRemoved    = "assignment.removed"
	TimeOffStatusChanged = "timeoff.status_changed"
)

func NewAssignmentCreatedEvent(assignmentID, shiftID, employeeID, assignedByID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      AssignmentCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"assignment_id":  assignmentID,
			"shift_id":       shiftID,
			"employee_id":    employeeID,
			"assigned_by_id": assignedByID,
		},
	}
}

func NewAssignmentRemovedEvent(assignmentID, shiftID, employeeID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      AssignmentRemoved,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"assignment_id": assignmentID,
			"shift_id":      shiftID,
			"employee_id":   employeeID,
		},
	}
}

func NewTimeOffStatusChangedEvent(timeOffID, employeeID, status, changedByID string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TimeOffStatusChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"timeoff_id":    timeOffID,
			"employee_id":   employeeID,
			"status":        status,
			"changed_by_id": changedByID,
		},
	}
}
