package types

import (
	"time"
)

// AgreementStatus is derived from the expiry date on every save
type AgreementStatus string

const (
	AgreementStatusOngoing AgreementStatus = "Ongoing"
	AgreementStatusExpired AgreementStatus = "Expired"
)

// ReminderKind identifies which reminder window matched for an agreement
type ReminderKind string

const (
	ReminderKindNone   ReminderKind = ""
	ReminderKindBefore ReminderKind = "before"
	ReminderKindOn     ReminderKind = "on"
	ReminderKindAfter  ReminderKind = "after"
)

// AgreementSearchStatus values accepted by agreement search on top of the literal statuses
const (
	AgreementSearchStatusExpired  = "expired"
	AgreementSearchStatusActive   = "active"
	AgreementSearchStatusUpcoming = "upcoming"
)

// DefaultReminderLeadDays is used when an agreement is saved without a reminder time
const DefaultReminderLeadDays = 180

// AgreementFilter filters agreements for listing, search and the sweep
type AgreementFilter struct {
	*QueryFilter
	// Query matches title, agreement reference, remarks, party name and agreement id
	Query string `json:"search,omitempty" form:"search"`
	// PartyName and AgreementTypeName are case insensitive substring matches
	PartyName         string          `json:"party_name,omitempty" form:"party_name"`
	AgreementTypeName string          `json:"agreement_type,omitempty" form:"agreement_type"`
	DepartmentID      string          `json:"department_id,omitempty" form:"department_id"`
	AgreementStatus   AgreementStatus `json:"agreement_status,omitempty" form:"agreement_status"`
	// SearchStatus is one of expired, active, upcoming or a literal status
	SearchStatus string `json:"status,omitempty" form:"status"`
	// Today anchors the expired, active and upcoming search statuses
	Today time.Time `json:"-" form:"-"`
}

func NewAgreementFilter() *AgreementFilter {
	return &AgreementFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitAgreementFilter() *AgreementFilter {
	return &AgreementFilter{QueryFilter: NewNoLimitQueryFilter()}
}
