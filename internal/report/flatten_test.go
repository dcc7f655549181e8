package report

import (
	"context"
	"testing"

	"landscapecore/internal/core"
	"landscapecore/internal/session"
	"landscapecore/pkg/domain"
)

func findSheet(t *testing.T, sheets []Sheet, name string) Sheet {
	t.Helper()
	for _, s := range sheets {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("sheet %q not found", name)
	return Sheet{}
}

func TestBuildEmptySessionPlaceholders(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	sheets := Build(svc)
	if len(sheets) == 0 {
		t.Fatalf("no sheets")
	}
	threats := findSheet(t, sheets, "Amenazas Climáticas")
	if len(threats.Rows) != 1 {
		t.Fatalf("placeholder rows = %d, want 1", len(threats.Rows))
	}
	if threats.Rows[0][3] != "sin datos" {
		t.Fatalf("placeholder row = %v", threats.Rows[0])
	}
}

func TestContextStampedOnEveryRow(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	if err := svc.SetContext(domain.WorkshopContext{
		Date: "2026-09-01", Country: "Ecuador", GroupName: "Grupo 1",
	}); err != nil {
		t.Fatalf("context: %v", err)
	}
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura", "Pesca"}); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	sheets := Build(svc)
	for _, sheet := range sheets {
		for i, row := range sheet.Rows {
			if row[0] != "2026-09-01" || row[1] != "Ecuador" || row[2] != "Grupo 1" {
				t.Fatalf("sheet %s row %d missing context: %v", sheet.Name, i, row)
			}
		}
	}
}

func TestGroupSheetExpandsImportance(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura", "Pesca"}); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	g, err := svc.StartGrouping()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	var ids []string
	for _, p := range svc.AvailableMembers() {
		ids = append(ids, p.ID)
	}
	if err := g.ConfirmMembers(ids); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := g.SetSizeRange(1, 10, "ha"); err != nil {
		t.Fatalf("size: %v", err)
	}
	if _, err := g.SaveGroup(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	sheet := findSheet(t, Build(svc), "Sistemas Productivos")
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows = %d, want one per member importance entry", len(sheet.Rows))
	}
	for _, row := range sheet.Rows {
		if row[3] != "Ag_Pe" {
			t.Fatalf("composite code column = %q", row[3])
		}
	}
}

func TestEvolutionSheetEmptyEventsOneRow(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura"}); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := svc.AddThreat(domain.ThreatRecord{Name: "Sequía", Magnitude: 5, Frequency: 3, Trend: 2, Climatic: true}); err != nil {
		t.Fatalf("threat: %v", err)
	}
	w, err := svc.StartConflictWizard(domain.TargetLivelihood)
	if err != nil {
		t.Fatalf("wizard: %v", err)
	}
	if err := w.PickThreat(svc.AllThreats()[0].ID); err != nil {
		t.Fatalf("pick threat: %v", err)
	}
	if err := w.PickTarget("Ag"); err != nil {
		t.Fatalf("pick target: %v", err)
	}
	rec, err := w.Save(domain.ConflictRecord{Level: domain.ConflictLight})
	if err != nil {
		t.Fatalf("save conflict: %v", err)
	}
	// An evolution record with zero events must still yield exactly one row.
	if err := svc.AppendEvent(rec.ID, domain.ConflictEvent{Year: "2020"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := svc.DeleteEvent(rec.ID, 0); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sheet := findSheet(t, Build(svc), "Evolución de Conflictos")
	if len(sheet.Rows) != 1 {
		t.Fatalf("rows = %d, want exactly 1 for parent with empty events", len(sheet.Rows))
	}
	if sheet.Rows[0][4] != Absent {
		t.Fatalf("event columns should be marked absent: %v", sheet.Rows[0])
	}
}

func TestStrategySheetSingleRow(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	sheet := findSheet(t, Build(svc), "Estrategia de Participación")
	if len(sheet.Rows) != 1 || sheet.Rows[0][3] != "sin datos" {
		t.Fatalf("placeholder = %v", sheet.Rows)
	}
	err := svc.SaveParticipationStrategy(domain.ParticipationStrategy{
		WorkshopMakeup:    "talleres diferenciados por cuenca",
		InclusionMeasures: "convocatoria dirigida a mujeres y jóvenes",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	sheet = findSheet(t, Build(svc), "Estrategia de Participación")
	if len(sheet.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(sheet.Rows))
	}
	if sheet.Rows[0][3] != "talleres diferenciados por cuenca" || sheet.Rows[0][4] != "convocatoria dirigida a mujeres y jóvenes" {
		t.Fatalf("strategy row = %v", sheet.Rows[0])
	}
}

func TestMarketFlagsJoined(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura"}); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	g, err := svc.StartGrouping()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.ConfirmMembers([]string{svc.AvailableMembers()[0].ID}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := g.SetSizeRange(2, 2, "ha"); err != nil {
		t.Fatalf("size: %v", err)
	}
	g.SetMarkets(domain.MarketFlags{Local: true, Export: true})
	if _, err := g.SaveGroup(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	sheet := findSheet(t, Build(svc), "Sistemas Productivos")
	if got := sheet.Rows[0][11]; got != "local, export" {
		t.Fatalf("markets column = %q", got)
	}
}
