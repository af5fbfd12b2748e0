package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// Sheet names in the workbook WriteXLSX produces.
const (
	SheetPreVeto  = "Pre-Veto"
	SheetPostVeto = "Post-Veto"
)

var xlsxHeader = []string{
	"Department Code", "Department Name", "Category", "Program Number",
	"Program Code", "Program Name", "Section", "Fund Type", "Fiscal Year",
	"Amount", "Positions (Perm)", "Positions (Temp)", "Duplicate", "Source Line",
}

// WriteXLSX writes pre- and post-veto tables to a two-sheet workbook
// at path.
func WriteXLSX(path string, pre, post []budget.AllocationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPreVeto); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetPostVeto); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeSheet(f, SheetPreVeto, pre); err != nil {
		return err
	}
	if err := writeSheet(f, SheetPostVeto, post); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, records []budget.AllocationRecord) error {
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header on %s: %w", sheet, err)
	}
	for i, rec := range records {
		row := []interface{}{
			rec.DepartmentCode, rec.DepartmentName, rec.Category, rec.ProgramNumber,
			rec.ProgramCode, rec.ProgramName, string(rec.Section), string(rec.FundType),
			rec.FiscalYear, rec.Amount.InexactFloat64(),
			rec.PositionsPermanent, rec.PositionsTemporary,
			rec.IsDuplicate, rec.SourceLine,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
