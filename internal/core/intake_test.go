package core

import (
	"errors"
	"testing"

	"landscapecore/internal/session"
	"landscapecore/pkg/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(session.NewMemoryStore())
}

func TestImportTableCollisionSuffix(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ImportTable(IntakeTable{
		Headers: []string{"Medios de Vida"},
		Rows:    [][]string{{"Agricultura"}, {"Agroforestería"}},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(res.Livelihoods) != 2 {
		t.Fatalf("expected 2 livelihoods, got %d", len(res.Livelihoods))
	}
	if res.Livelihoods[0].Code != "Ag" || res.Livelihoods[1].Code != "Ag1" {
		t.Fatalf("codes = %q, %q; want Ag, Ag1", res.Livelihoods[0].Code, res.Livelihoods[1].Code)
	}
}

func TestImportTableBothColumns(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ImportTable(IntakeTable{
		Headers: []string{"medios de vida", "ECOSISTEMAS"},
		Rows: [][]string{
			{"Agricultura", "Bosque"},
			{"Pesca", "Río"},
			{"  ", "Bosque"},
		},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(res.Livelihoods) != 2 {
		t.Fatalf("livelihoods = %d, want 2", len(res.Livelihoods))
	}
	if len(res.Ecosystems) != 2 {
		t.Fatalf("duplicate ecosystem name not skipped: %d entries", len(res.Ecosystems))
	}
	if got := svc.Catalog(domain.KindEcosystem); len(got) != 2 {
		t.Fatalf("stored ecosystem catalog = %d entries", len(got))
	}
}

func TestImportTableErrors(t *testing.T) {
	svc := newTestService(t)
	var vErr ValidationError
	_, err := svc.ImportTable(IntakeTable{Headers: []string{"medios de vida"}})
	if !errors.As(err, &vErr) {
		t.Fatalf("empty dataset error = %v", err)
	}
	_, err = svc.ImportTable(IntakeTable{
		Headers: []string{"unrelated"},
		Rows:    [][]string{{"x"}},
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("unrecognized column error = %v", err)
	}
	if len(svc.Store().Keys()) != 0 {
		t.Fatalf("failed intake mutated state: %v", svc.Store().Keys())
	}
}

func TestImportTableRejectedBatchLeavesCatalogsIntact(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Pesca"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := svc.ImportTable(IntakeTable{
		Headers: []string{"medios de vida", "ecosistemas"},
		Rows: [][]string{
			{"Agricultura", ""},
			{"Turismo", "  "},
		},
	})
	if err == nil {
		t.Fatalf("expected blank ecosystem column to fail")
	}
	got := svc.Catalog(domain.KindLivelihood)
	if len(got) != 1 || got[0].Name != "Pesca" {
		t.Fatalf("rejected batch replaced livelihood catalog: %+v", got)
	}
}

func TestCodeUniquenessWithinBatch(t *testing.T) {
	svc := newTestService(t)
	items, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{
		"Agricultura", "Agroforestería", "Agua Potable", "Agricultura Urbana",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.Code] {
			t.Fatalf("duplicate code %q in batch", item.Code)
		}
		seen[item.Code] = true
	}
}

func TestReplaceCatalogCascadesDownstream(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura", "Pesca"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := svc.Priorities(); err != nil {
		t.Fatalf("priorities: %v", err)
	}
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Turismo"}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if _, ok := svc.Store().Get("prioritized_livelihoods"); ok {
		t.Fatalf("prioritized list survived catalog replacement")
	}
	details := svc.LivelihoodDetails()
	if len(details) != 1 || details[0].Name != "Turismo" {
		t.Fatalf("details after replacement = %+v", details)
	}
}

func TestSeedDefaultCatalogs(t *testing.T) {
	svc := newTestService(t)
	if err := svc.SeedDefaultCatalogs(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	livelihoods := svc.Catalog(domain.KindLivelihood)
	if len(livelihoods) != len(domain.DefaultLivelihoods) {
		t.Fatalf("livelihood catalog = %d entries", len(livelihoods))
	}
	codes := make(map[string]string)
	for _, item := range livelihoods {
		codes[item.Name] = item.Code
	}
	// The built-in sets carry curated codes, not name-derived ones.
	if codes["Ganadería"] != "Gn" || codes["Pesca"] != "Ps" || codes["Artesanía"] != "Art" {
		t.Fatalf("curated codes lost: %v", codes)
	}
	ecosystems := svc.Catalog(domain.KindEcosystem)
	if len(ecosystems) != len(domain.DefaultEcosystems) {
		t.Fatalf("ecosystem catalog = %d entries", len(ecosystems))
	}
	if ecosystems[0].Name != "Bosque" || ecosystems[0].Code != "Bq" {
		t.Fatalf("ecosystem defaults = %+v", ecosystems[0])
	}
}
