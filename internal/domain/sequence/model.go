package sequence

import (
	"fmt"
	"time"
)

// Namespace separates independent counters that share a year
type Namespace string

const (
	NamespaceLetter    Namespace = "letter"
	NamespaceAgreement Namespace = "agreement"
)

// ScopeKey identifies one independently maintained counter
type ScopeKey struct {
	Namespace      Namespace
	Year           int
	OrganizationID string
}

// NewYearScope returns a counter scope keyed by year only
func NewYearScope(ns Namespace, year int) ScopeKey {
	return ScopeKey{Namespace: ns, Year: year}
}

// NewOrganizationScope returns a counter scope keyed by year and organization
func NewOrganizationScope(ns Namespace, year int, organizationID string) ScopeKey {
	return ScopeKey{Namespace: ns, Year: year, OrganizationID: organizationID}
}

// String renders the key as stored in sequence_counters.scope_key
func (k ScopeKey) String() string {
	if k.OrganizationID == "" {
		return fmt.Sprintf("%s:%d", k.Namespace, k.Year)
	}
	return fmt.Sprintf("%s:%d:%s", k.Namespace, k.Year, k.OrganizationID)
}

// Counter is the persisted state of a single scope
type Counter struct {
	ScopeKey   string    `db:"scope_key" json:"scope_key"`
	LastNumber int64     `db:"last_number" json:"last_number"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
