package core

import (
	"testing"

	"landscapecore/pkg/domain"
)

func addThreat(t *testing.T, svc *Service, name string, magnitude, frequency, trend int, climatic bool) domain.ThreatRecord {
	t.Helper()
	rec, err := svc.AddThreat(domain.ThreatRecord{
		Name:      name,
		Magnitude: magnitude,
		Frequency: frequency,
		Trend:     trend,
		Climatic:  climatic,
	})
	if err != nil {
		t.Fatalf("add threat %q: %v", name, err)
	}
	return rec
}

func TestAddThreatScoreDerived(t *testing.T) {
	svc := newTestService(t)
	rec := addThreat(t, svc, "Sequía", 5, 3, 2, true)
	if rec.Score != 10 {
		t.Fatalf("score = %d, want 10", rec.Score)
	}
	if rec.ID == "" {
		t.Fatalf("missing id")
	}
}

func TestAddThreatValidation(t *testing.T) {
	svc := newTestService(t)
	cases := []domain.ThreatRecord{
		{Name: "  ", Magnitude: 1, Frequency: 1},
		{Name: "x", Magnitude: 0, Frequency: 1},
		{Name: "x", Magnitude: 6, Frequency: 1},
		{Name: "x", Magnitude: 1, Frequency: 4},
		{Name: "x", Magnitude: 1, Frequency: 1, Trend: -3},
		{Name: "x", Magnitude: 1, Frequency: 1, Trend: 4},
	}
	for i, tc := range cases {
		if _, err := svc.AddThreat(tc); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestThreatsSortedDescendingStable(t *testing.T) {
	svc := newTestService(t)
	addThreat(t, svc, "Incendios", 3, 2, 2, true) // score 7
	addThreat(t, svc, "Sequía", 5, 3, 2, true)    // score 10
	addThreat(t, svc, "Heladas", 4, 2, 1, true)   // score 7, after Incendios

	list := svc.Threats(true)
	if list[0].Name != "Sequía" {
		t.Fatalf("first = %q", list[0].Name)
	}
	if list[1].Name != "Incendios" || list[2].Name != "Heladas" {
		t.Fatalf("tie order not stable: %q, %q", list[1].Name, list[2].Name)
	}
}

func TestThreatListsIndependent(t *testing.T) {
	svc := newTestService(t)
	addThreat(t, svc, "Sequía", 5, 3, 2, true)
	other := addThreat(t, svc, "Minería ilegal", 4, 3, 3, false)
	if len(svc.Threats(true)) != 1 || len(svc.Threats(false)) != 1 {
		t.Fatalf("lists crossed: climatic=%d other=%d", len(svc.Threats(true)), len(svc.Threats(false)))
	}
	if all := svc.AllThreats(); len(all) != 2 {
		t.Fatalf("all threats = %d", len(all))
	}
	if err := svc.DeleteThreat(false, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(svc.Threats(false)) != 0 {
		t.Fatalf("delete left entries behind")
	}
}
