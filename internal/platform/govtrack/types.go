package govtrack

import "github.com/mholloway/congresswatch/internal/domain"

// rolesResponse is the envelope returned by the GovTrack role endpoint.
type rolesResponse struct {
	Objects []APIRole `json:"objects"`
}

// APIRole is one current congressional role as reported by GovTrack. Fields
// the sync does not use are omitted.
type APIRole struct {
	Person   APIPerson `json:"person"`
	State    string    `json:"state"`
	Party    string    `json:"party"`
	RoleType string    `json:"role_type"`
}

// APIPerson holds the person block nested inside a role.
type APIPerson struct {
	Name string `json:"name"`
}

// ToMember maps a GovTrack role onto the domain Member shape. Party collapses
// to exactly one of Democrat/Republican/Independent; role_type "senator" maps
// to the Senate, everything else to the House.
func (r APIRole) ToMember() domain.Member {
	party := domain.PartyIndependent
	switch r.Party {
	case "Democrat":
		party = domain.PartyDemocrat
	case "Republican":
		party = domain.PartyRepublican
	}

	chamber := domain.ChamberHouse
	if r.RoleType == "senator" {
		chamber = domain.ChamberSenate
	}

	return domain.Member{
		FullName: r.Person.Name,
		State:    r.State,
		Party:    party,
		Chamber:  chamber,
	}
}
