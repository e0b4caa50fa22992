package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"office-occupancy-backend/internal/model"
	"office-occupancy-backend/internal/occupancy"
	"office-occupancy-backend/internal/store"
)

var occupancyColumns = []string{"Building", "Office", "Floor", "Occupants", "Max Capacity", "Remaining", "Percentage", "Status"}

// BuildWorkbook assembles a workbook with the three partition sheets plus the
// derived Occupancy sheet. The caller owns closing the returned file.
func BuildWorkbook(snap store.Snapshot, rows []occupancy.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Current"); err != nil {
		return nil, err
	}

	sheets := []struct {
		name      string
		occupants []model.Occupant
	}{
		{"Current", snap.Current},
		{"Upcoming", snap.Upcoming},
		{"Past", snap.Past},
	}
	for _, sheet := range sheets {
		if sheet.name != "Current" {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, err
			}
		}
		if err := writeRow(f, sheet.name, 1, toAny(columns)); err != nil {
			return nil, err
		}
		for i, o := range sheet.occupants {
			cells := []any{o.Name, string(o.Status), o.Email, o.Position, o.Office, o.Building}
			if err := writeRow(f, sheet.name, i+2, cells); err != nil {
				return nil, err
			}
		}
	}

	if _, err := f.NewSheet("Occupancy"); err != nil {
		return nil, err
	}
	if err := writeRow(f, "Occupancy", 1, toAny(occupancyColumns)); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cells := []any{r.Building, r.Office, r.Floor, r.Occupants, r.MaxCapacity, r.Remaining, r.Percentage, r.Status}
		if err := writeRow(f, "Occupancy", i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteWorkbook saves the workbook artifact to path.
func WriteWorkbook(path string, snap store.Snapshot, rows []occupancy.Row) error {
	f, err := BuildWorkbook(snap, rows)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteWorkbookTo streams the workbook artifact, for download endpoints.
func WriteWorkbookTo(w io.Writer, snap store.Snapshot, rows []occupancy.Row) error {
	f, err := BuildWorkbook(snap, rows)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteCSV streams one partition as a flat CSV file.
func WriteCSV(w io.Writer, occupants []model.Occupant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, o := range occupants {
		record := []string{o.Name, string(o.Status), o.Email, o.Position, o.Office, o.Building}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Backup copies the workbook into dir under a timestamped name before a save
// overwrites it. A missing source file is not an error; there is simply
// nothing to back up.
func Backup(path, dir string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s for backup: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir %s: %w", dir, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", base[:len(base)-len(ext)], stamp, ext))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, ref, &cells)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
