package core

import (
	"testing"

	"landscapecore/pkg/domain"
)

func buildLivelihoodConflict(t *testing.T, svc *Service, fill domain.ConflictRecord) domain.ConflictRecord {
	t.Helper()
	threats := svc.AllThreats()
	if len(threats) == 0 {
		t.Fatalf("no threats seeded")
	}
	details := svc.LivelihoodDetails()
	w, err := svc.StartConflictWizard(domain.TargetLivelihood)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.PickThreat(threats[0].ID); err != nil {
		t.Fatalf("pick threat: %v", err)
	}
	if err := w.PickTarget(details[0].Code); err != nil {
		t.Fatalf("pick target: %v", err)
	}
	rec, err := w.Save(fill)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return rec
}

func TestConflictWizardLivelihoodVariant(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	addThreat(t, svc, "Sequía", 5, 3, 2, true)

	rec := buildLivelihoodConflict(t, svc, domain.ConflictRecord{
		Level:       domain.ConflictGrave,
		TypeCodes:   []string{"C1", "C3"},
		Description: "disputa por agua",
		Impacts:     domain.ImpactScores{Economic: 3, Food: 2},
		Families:    "30-50",
	})
	if rec.Kind != domain.TargetLivelihood {
		t.Fatalf("kind = %s", rec.Kind)
	}
	if rec.ThreatName != "Sequía" || rec.TargetCode != "Ag" {
		t.Fatalf("identity fields = %q, %q", rec.ThreatName, rec.TargetCode)
	}
	if got := domain.ConflictDisplayCode(rec); got != "Ag_G_C1C3" {
		t.Fatalf("display code = %q", got)
	}
	if found, ok := svc.FindConflict(rec.ID); !ok || found.Description != "disputa por agua" {
		t.Fatalf("lookup = %+v, %v", found, ok)
	}
}

func TestConflictWizardServiceVariantUsesTargetedPool(t *testing.T) {
	svc := newTestService(t)
	items := seedEcosystems(t, svc, "Bosque")
	characterize(t, svc, items[0].ID, "P1")
	addThreat(t, svc, "Incendios", 4, 2, 1, false)

	w, err := svc.StartConflictWizard(domain.TargetService)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.PickThreat(svc.AllThreats()[0].ID); err != nil {
		t.Fatalf("pick threat: %v", err)
	}
	if err := w.PickTarget("R5"); err == nil {
		t.Fatalf("expected non-targeted service to be rejected")
	}
	if err := w.PickTarget("P1"); err != nil {
		t.Fatalf("pick target: %v", err)
	}
	rec, err := w.Save(domain.ConflictRecord{Level: domain.ConflictLight})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.Kind != domain.TargetService || rec.TargetName != "ALIMENTOS" {
		t.Fatalf("record = %+v", rec)
	}
	if len(svc.Conflicts(domain.TargetLivelihood)) != 0 {
		t.Fatalf("service conflict leaked into livelihood list")
	}
}

func TestConflictLevelNoneClearsFields(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	addThreat(t, svc, "Sequía", 5, 3, 2, true)

	rec := buildLivelihoodConflict(t, svc, domain.ConflictRecord{
		Level:       domain.ConflictNone,
		TypeCodes:   []string{"C1"},
		Description: "texto previo",
	})
	if len(rec.TypeCodes) != 0 || rec.Description != "" {
		t.Fatalf("level None did not clear fields at save: %+v", rec)
	}
}

func TestUpdateConflictLevelClearing(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	addThreat(t, svc, "Sequía", 5, 3, 2, true)
	rec := buildLivelihoodConflict(t, svc, domain.ConflictRecord{
		Level:       domain.ConflictModerate,
		TypeCodes:   []string{"C2"},
		Description: "d",
	})

	if err := svc.UpdateConflictLevel(rec.ID, domain.ConflictNone, []string{"C2", "C5"}, "still here"); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, ok := svc.FindConflict(rec.ID)
	if !ok {
		t.Fatalf("conflict lost after update")
	}
	if updated.Level != domain.ConflictNone || len(updated.TypeCodes) != 0 || updated.Description != "" {
		t.Fatalf("clearing invariant violated: %+v", updated)
	}
}

func TestConflictWizardMissingUpstream(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.StartConflictWizard(domain.TargetLivelihood); err == nil {
		t.Fatalf("expected missing threats to fail")
	}
	addThreat(t, svc, "Sequía", 5, 3, 2, true)
	if _, err := svc.StartConflictWizard(domain.TargetService); err == nil {
		t.Fatalf("expected empty targeted-service pool to fail")
	}
}

func TestConflictImpactValidation(t *testing.T) {
	svc := newTestService(t)
	seedLivelihoods(t, svc, "Agricultura")
	addThreat(t, svc, "Sequía", 5, 3, 2, true)

	w, err := svc.StartConflictWizard(domain.TargetLivelihood)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.PickThreat(svc.AllThreats()[0].ID); err != nil {
		t.Fatalf("pick threat: %v", err)
	}
	if err := w.PickTarget(svc.LivelihoodDetails()[0].Code); err != nil {
		t.Fatalf("pick target: %v", err)
	}
	if _, err := w.Save(domain.ConflictRecord{Impacts: domain.ImpactScores{Political: 4}}); err == nil {
		t.Fatalf("expected out-of-range impact to fail")
	}
}
