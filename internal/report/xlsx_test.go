package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"landscapecore/internal/core"
	"landscapecore/internal/session"
	"landscapecore/pkg/domain"
)

func TestSheetNameTruncationAndDedup(t *testing.T) {
	used := make(map[string]bool)
	long := "Caracterización de Servicios Ecosistémicos del Paisaje"
	first := sheetName(long, used)
	if got := len([]rune(first)); got > maxSheetName {
		t.Fatalf("name length = %d", got)
	}
	second := sheetName(long, used)
	if second == first {
		t.Fatalf("duplicate sheet name %q not de-duplicated", second)
	}
	if got := len([]rune(second)); got > maxSheetName {
		t.Fatalf("deduped name length = %d", got)
	}
}

func TestExportAndReadBack(t *testing.T) {
	svc := core.NewService(session.NewMemoryStore())
	if err := svc.SetContext(domain.WorkshopContext{Date: "2026-09-01", Country: "Perú", GroupName: "G1"}); err != nil {
		t.Fatalf("context: %v", err)
	}
	if _, err := svc.ReplaceCatalog(domain.KindLivelihood, []string{"Agricultura"}); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := Export(svc, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	sheets := f.GetSheetList()
	if len(sheets) != len(Build(svc)) {
		t.Fatalf("sheet count = %d, want %d", len(sheets), len(Build(svc)))
	}
	rows, err := f.GetRows("Medios de Vida")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one detail", len(rows))
	}
	if rows[1][1] != "Perú" || rows[1][4] != "Agricultura" {
		t.Fatalf("detail row = %v", rows[1])
	}
}

func TestReadIntakeTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.xlsx")
	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]any{"Medios de Vida", "Ecosistemas"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]any{"Agricultura", "Bosque"})
	_ = f.SetSheetRow("Sheet1", "A3", &[]any{"Agroforestería", ""})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	_ = f.Close()

	table, err := ReadIntakeTable(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Headers) != 2 || len(table.Rows) != 2 {
		t.Fatalf("table = %+v", table)
	}

	svc := core.NewService(session.NewMemoryStore())
	res, err := svc.ImportTable(table)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(res.Livelihoods) != 2 || res.Livelihoods[1].Code != "Ag1" {
		t.Fatalf("livelihoods = %+v", res.Livelihoods)
	}
	if len(res.Ecosystems) != 1 {
		t.Fatalf("ecosystems = %+v", res.Ecosystems)
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if got := DefaultFilename(now); got != "diagnostico_paisaje_2026-09-01.xlsx" {
		t.Fatalf("filename = %q", got)
	}
}
