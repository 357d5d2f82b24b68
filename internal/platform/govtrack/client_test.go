package govtrack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/fetch"
)

const rosterJSON = `{
	"objects": [
		{"person": {"name": "Jane Doe"}, "state": "CA", "party": "Democrat", "role_type": "representative"},
		{"person": {"name": "John Roe"}, "state": "VT", "party": "Republican", "role_type": "senator"},
		{"person": {"name": "Pat Gray"}, "state": "ME", "party": "Libertarian", "role_type": "representative"}
	]
}`

func TestCurrentRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/role" {
			t.Errorf("path = %q, want /role", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("current") != "true" || q.Get("limit") != "600" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(rosterJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 600, 2*time.Second, fetch.NewClient())
	members, raw, err := c.CurrentRoster(context.Background())
	if err != nil {
		t.Fatalf("CurrentRoster: %v", err)
	}
	if len(raw) == 0 {
		t.Error("raw payload should be returned for archiving")
	}
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}

	want := []domain.Member{
		{FullName: "Jane Doe", State: "CA", Party: domain.PartyDemocrat, Chamber: domain.ChamberHouse},
		{FullName: "John Roe", State: "VT", Party: domain.PartyRepublican, Chamber: domain.ChamberSenate},
		{FullName: "Pat Gray", State: "ME", Party: domain.PartyIndependent, Chamber: domain.ChamberHouse},
	}
	for i, m := range members {
		if m != want[i] {
			t.Errorf("member[%d] = %+v, want %+v", i, m, want[i])
		}
	}
}

func TestCurrentRosterUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 600, 2*time.Second, fetch.NewClient())
	_, _, err := c.CurrentRoster(context.Background())
	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *fetch.StatusError", err)
	}
}

func TestToMemberPartyCollapse(t *testing.T) {
	tests := []struct {
		party string
		want  domain.Party
	}{
		{"Democrat", domain.PartyDemocrat},
		{"Republican", domain.PartyRepublican},
		{"Independent", domain.PartyIndependent},
		{"Green", domain.PartyIndependent},
		{"", domain.PartyIndependent},
	}
	for _, tt := range tests {
		role := APIRole{Person: APIPerson{Name: "X"}, State: "NY", Party: tt.party, RoleType: "representative"}
		if got := role.ToMember().Party; got != tt.want {
			t.Errorf("party %q -> %q, want %q", tt.party, got, tt.want)
		}
	}
}
