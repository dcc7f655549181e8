package core

import (
	"testing"

	"landscapecore/pkg/domain"
)

func TestPrioritiesSeedAndTotal(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura", "Pesca")
	list, err := svc.Priorities()
	if err != nil {
		t.Fatalf("priorities: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("seeded %d rows, want 2", len(list))
	}

	id := list[0].ID
	for dim, v := range map[PriorityScore]int{
		ScoreFoodSecurity:     3,
		ScoreArea:             2,
		ScoreLocalDevelopment: 1,
		ScoreEnvironment:      2,
		ScoreInclusion:        1,
	} {
		if err := svc.SetPriorityScore(id, dim, v); err != nil {
			t.Fatalf("set %s: %v", dim, err)
		}
	}
	list, _ = svc.Priorities()
	for _, p := range list {
		if p.ID != id {
			continue
		}
		if want := domain.PriorityTotal(p); p.Total != want || p.Total != 9 {
			t.Fatalf("total = %d, recomputed = %d", p.Total, want)
		}
	}
}

func TestSetPriorityScoreRejectsOutOfRange(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	list, _ := svc.Priorities()
	if err := svc.SetPriorityScore(list[0].ID, ScoreArea, 4); err == nil {
		t.Fatalf("expected out-of-range score to fail")
	}
	if err := svc.SetPriorityScore(list[0].ID, ScoreArea, -1); err == nil {
		t.Fatalf("expected negative score to fail")
	}
}

func TestPrioritiesPruneAndExtend(t *testing.T) {
	svc := newTestService(t)
	items := seedLivelihoods(t, svc, "Agricultura", "Pesca")
	list, _ := svc.Priorities()
	if err := svc.SetPriorityScore(list[0].ID, ScoreArea, 3); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Narrow the refined list to the first item only.
	sel := NewSelection(domain.KindLivelihood)
	sel.Toggle(items[0].ID)
	if err := svc.ConfirmSelection(sel); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	list, err := svc.Priorities()
	if err != nil {
		t.Fatalf("priorities: %v", err)
	}
	if len(list) != 1 || list[0].ID != items[0].ID {
		t.Fatalf("list after narrowing = %+v", list)
	}
	if list[0].Area != 3 {
		t.Fatalf("existing score lost on re-entry: %+v", list[0])
	}
}
