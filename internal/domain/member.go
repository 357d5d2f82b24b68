// Package domain defines the core types and interfaces shared across the
// congresswatch service: legislators, disclosed trades, sync reports, and the
// store/cache/blob contracts their implementations satisfy.
package domain

import "fmt"

// Party is a legislator's party affiliation. The roster source reports many
// values; anything that is not literally Democrat or Republican collapses to
// Independent.
type Party string

const (
	PartyDemocrat    Party = "Democrat"
	PartyRepublican  Party = "Republican"
	PartyIndependent Party = "Independent"
)

// Chamber is the congressional chamber a member serves in.
type Chamber string

const (
	ChamberHouse  Chamber = "House"
	ChamberSenate Chamber = "Senate"
)

// Member represents one serving legislator. ID is assigned by the store on
// insert; members are append-only and never updated or deleted by the sync.
type Member struct {
	ID       int64
	FullName string
	State    string // 2-letter code
	Party    Party
	Chamber  Chamber
}

// Key returns the member's identity key. Two members are the same record iff
// their keys are equal.
func (m Member) Key() string {
	return MemberKey(m.FullName, m.State)
}

// MemberKey builds the (full name, state) identity key used to deduplicate
// incoming roster records against stored ones.
func MemberKey(fullName, state string) string {
	return fmt.Sprintf("%s|%s", fullName, state)
}
