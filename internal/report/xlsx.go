package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"landscapecore/internal/core"
)

// maxSheetName is the workbook format's sheet-name length limit.
const maxSheetName = 31

func sheetName(name string, used map[string]bool) string {
	runes := []rune(name)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	candidate := string(runes)
	for i := 2; used[candidate]; i++ {
		suffix := []rune(fmt.Sprintf(" %d", i))
		base := runes
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + string(suffix)
	}
	used[candidate] = true
	return candidate
}

// Workbook renders the sheets as an xlsx file in memory.
func Workbook(sheets []Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	used := make(map[string]bool)
	for i, sheet := range sheets {
		name := sheetName(sheet.Name, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", name, err)
			}
		}
		rows := append([][]string{sheet.Header}, sheet.Rows...)
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := make([]any, len(row))
			for c, v := range row {
				values[c] = v
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("write row %d of %s: %w", r+1, name, err)
			}
		}
	}
	return f, nil
}

// WorkbookBytes renders the sheets and returns the serialized file.
func WorkbookBytes(sheets []Sheet) ([]byte, error) {
	f, err := Workbook(sheets)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultFilename names the export with the current date.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("diagnostico_paisaje_%s.xlsx", now.Format("2006-01-02"))
}

// Export flattens every store of the service and writes the workbook to path.
func Export(svc *core.Service, path string) error {
	f, err := Workbook(Build(svc))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ReadIntakeTable parses the first sheet of an uploaded workbook into the
// intake's tabular form: first row as headers, remaining rows as data.
func ReadIntakeTable(path string) (core.IntakeTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return core.IntakeTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return core.IntakeTable{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return core.IntakeTable{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return core.IntakeTable{}, nil
	}
	return core.IntakeTable{Headers: rows[0], Rows: rows[1:]}, nil
}
