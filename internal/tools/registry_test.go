package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkobayashi/tabiplan/internal/engine"
	"github.com/mkobayashi/tabiplan/internal/store"
)

func registryWithData(t *testing.T) engine.ToolRegistry {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "attractions.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	seed := []store.Attraction{
		{
			Name: "Sensoji Temple", City: "Tokyo", Ward: "Taito",
			Description:    "Tokyo's oldest temple",
			Address:        "2-3-1 Asakusa",
			TicketPrice:    "Free",
			Categories:     []string{"temple", "culture"},
			Transportation: map[string]string{"metro": "Asakusa Station, Ginza line"},
		},
		{
			Name: "Tokyo Tower", City: "Tokyo", Ward: "Minato",
			Description: "Landmark lattice tower",
			Categories:  []string{"landmark"},
		},
	}
	for _, a := range seed {
		if err := s.Add(context.Background(), a); err != nil {
			t.Fatalf("Add(%s) error = %v", a.Name, err)
		}
	}
	return NewRegistry(s)
}

func TestRegistryNamesMatchPromptOrder(t *testing.T) {
	reg := registryWithData(t)
	want := []string{
		"get_all_attractions",
		"get_attraction_by_name",
		"get_attractions_by_category",
		"get_attractions_by_ward",
		"get_basic_info",
		"get_transportation_info",
		"search_attractions",
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestToolDispatchEndToEnd(t *testing.T) {
	reg := registryWithData(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		action  engine.ParsedAction
		wantSub string
	}{
		{"all", engine.ParsedAction{Name: "get_all_attractions"}, "Tokyo Tower"},
		{"by name", engine.ParsedAction{Name: "get_attraction_by_name", Input: `"Sensoji Temple"`}, "oldest temple"},
		{"by name missing", engine.ParsedAction{Name: "get_attraction_by_name", Input: `"Atlantis"`}, "null"},
		{"search keyword json", engine.ParsedAction{Name: "search_attractions", Input: `{"keyword": "lattice"}`}, "Tokyo Tower"},
		{"search bare keyword", engine.ParsedAction{Name: "search_attractions", Input: `"oldest"`}, "Sensoji Temple"},
		{"by category", engine.ParsedAction{Name: "get_attractions_by_category", Input: `"landmark"`}, "Tokyo Tower"},
		{"by ward", engine.ParsedAction{Name: "get_attractions_by_ward", Input: `"Taito"`}, "Sensoji Temple"},
		{"transportation", engine.ParsedAction{Name: "get_transportation_info", Input: `"Sensoji Temple"`}, "Ginza line"},
		{"basic info", engine.ParsedAction{Name: "get_basic_info", Input: `"Sensoji Temple"`}, `"ticket_price": "Free"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := engine.Dispatch(ctx, reg, tt.action)
			if !strings.Contains(obs, tt.wantSub) {
				t.Errorf("observation missing %q:\n%s", tt.wantSub, obs)
			}
		})
	}
}

func TestBasicInfoOmitsFullRecordFields(t *testing.T) {
	reg := registryWithData(t)
	obs := engine.Dispatch(context.Background(), reg, engine.ParsedAction{
		Name: "get_basic_info", Input: `"Sensoji Temple"`,
	})
	if strings.Contains(obs, "categories") || strings.Contains(obs, "latitude") {
		t.Errorf("basic info leaked full record fields:\n%s", obs)
	}
}

func TestBasicInfoMissingIsEmptyObject(t *testing.T) {
	reg := registryWithData(t)
	obs := engine.Dispatch(context.Background(), reg, engine.ParsedAction{
		Name: "get_basic_info", Input: `"Atlantis"`,
	})
	if obs != "{}" {
		t.Errorf("observation = %q, want {}", obs)
	}
}
