package model

import (
	"slices"

	"homestay/shared/constant"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// BlockingStatuses are the states that hold a property's dates.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) Blocking() bool {
	return slices.Contains(BlockingStatuses, s)
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}

	return false
}

type Action string

const (
	ActionCancel   Action = "cancel"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
)

type transition struct {
	from  []Status
	to    Status
	roles []string
	owner bool
}

var transitions = map[Action]transition{
	ActionCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled, owner: true},
	ActionApprove:  {from: []Status{StatusPending}, to: StatusConfirmed, roles: []string{constant.RoleAdmin, constant.RoleStaff}},
	ActionReject:   {from: []Status{StatusPending}, to: StatusRejected, roles: []string{constant.RoleAdmin, constant.RoleStaff}},
	ActionComplete: {from: []Status{StatusConfirmed}, to: StatusCompleted, roles: []string{constant.RoleAdmin, constant.RoleStaff, constant.RoleSystem}},
}

// Actor is whoever asks for a transition.
type Actor struct {
	UserID string
	Role   string
}

// Sources lists the states the action may be applied from.
func (a Action) Sources() []Status {
	return transitions[a].from
}

func (a Action) Target() Status {
	return transitions[a].to
}

// Allows reports whether actor may apply the action to a booking owned by ownerID. Owner
// actions are open to the owner only; the rest need one of the listed roles.
func (a Action) Allows(actor Actor, ownerID string) bool {
	t, ok := transitions[a]
	if !ok || actor.UserID == "" {
		return false
	}

	if t.owner {
		return actor.UserID == ownerID
	}

	return slices.Contains(t.roles, actor.Role)
}

// CanApply reports whether the action is legal from the given state.
func (a Action) CanApply(from Status) bool {
	return slices.Contains(transitions[a].from, from)
}
