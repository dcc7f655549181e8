package core

import (
	"testing"

	"landscapecore/pkg/domain"
)

func TestServiceSessionFlow(t *testing.T) {
	svc := newTestService(t)
	items := seedEcosystems(t, svc, "Bosque")
	characterize(t, svc, items[0].ID, "P1", "R5", "A1", "C2")

	w, err := svc.StartServiceCharacterization()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if w.State() != ServiceSelectEcosystem {
		t.Fatalf("state = %s", w.State())
	}
	if err := w.ChooseEcosystem(items[0].ID); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := w.RequiredSelections(); got != 3 {
		t.Fatalf("required = %d, want cap of 3 over 4 related", got)
	}
	if err := w.SelectServices([]string{"P1", "R5"}); err == nil {
		t.Fatalf("expected under-count selection to fail")
	}
	if err := w.SelectServices([]string{"P1", "R5", "C4"}); err == nil {
		t.Fatalf("expected unrelated service to fail")
	}
	if err := w.SelectServices([]string{"P1", "R5", "A1"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	for i := 0; i < 3; i++ {
		ecoCode, svcCode, composite, ok := w.Current()
		if !ok {
			t.Fatalf("no current pair at step %d", i)
		}
		if want := ecoCode + "_" + svcCode; composite != want {
			t.Fatalf("composite = %q, want %q", composite, want)
		}
		if err := w.SaveCurrent(domain.ServiceCharacterization{Provision: "alta"}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if w.State() != ServiceComplete {
		t.Fatalf("state after all saves = %s", w.State())
	}
	saved := svc.ServiceCharacterizations()
	if len(saved) != 3 {
		t.Fatalf("characterizations = %d", len(saved))
	}
	if saved[0].CompositeCode != "Bo_P1" || saved[0].EcosystemID != items[0].ID {
		t.Fatalf("first characterization = %+v", saved[0])
	}
}

func TestServiceSessionFewerThanThreeRelated(t *testing.T) {
	svc := newTestService(t)
	items := seedEcosystems(t, svc, "Bosque")
	characterize(t, svc, items[0].ID, "P1")

	w, err := svc.StartServiceCharacterization()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.ChooseEcosystem(items[0].ID); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := w.RequiredSelections(); got != 1 {
		t.Fatalf("required = %d, want 1", got)
	}
	if err := w.SelectServices([]string{"P1"}); err != nil {
		t.Fatalf("select: %v", err)
	}
}

func TestServiceSessionZeroRelatedCompletes(t *testing.T) {
	svc := newTestService(t)
	items := seedEcosystems(t, svc, "Bosque")
	characterize(t, svc, items[0].ID)

	w, err := svc.StartServiceCharacterization()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.ChooseEcosystem(items[0].ID); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if w.State() != ServiceComplete {
		t.Fatalf("ecosystem without related services should complete immediately, state = %s", w.State())
	}
	if got := svc.ServiceCharacterizations(); len(got) != 0 {
		t.Fatalf("characterizations = %d, want 0", len(got))
	}
}

func TestServiceSessionRequiresUpstream(t *testing.T) {
	svc := newTestService(t)
	var missing MissingUpstreamError
	if _, err := svc.StartServiceCharacterization(); err == nil {
		t.Fatalf("expected missing-upstream error")
	} else if e, ok := err.(MissingUpstreamError); ok {
		missing = e
	} else {
		t.Fatalf("error type = %T (%v)", err, err)
	}
	if missing.Requires == "" {
		t.Fatalf("missing-upstream error lacks prerequisite: %+v", missing)
	}
}
