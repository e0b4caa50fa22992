// Package tabular converts workspaces to and from their external tabular
// forms: the multi-sheet allocation workbook, per-partition CSV files, and
// the keyed capacity document.
package tabular

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"office-occupancy-backend/internal/model"
	"office-occupancy-backend/internal/store"
)

// Canonical workbook columns. Imports normalize synonyms onto these and
// null-fill whatever is missing rather than rejecting the sheet.
var columns = []string{"Name", "Status", "Email address", "Position", "Office", "Building"}

var columnSynonyms = map[string]string{
	"Room":        "Office",
	"Room Number": "Office",
	"Location":    "Building",
	"Email":       "Email address",
}

// ReadWorkbook loads the three occupant partitions from an xlsx workbook.
// Sheets are discovered by case-insensitive name substring; when no sheet
// mentions "current" the first sheet is taken as the current partition.
// Missing sheets yield empty partitions.
func ReadWorkbook(path string) (snap store.Snapshot, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	currentSheet := findSheet(sheets, "current")
	if currentSheet == "" && len(sheets) > 0 {
		currentSheet = sheets[0]
	}

	if snap.Current, err = readSheet(f, currentSheet, model.StatusCurrent); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Upcoming, err = readSheet(f, findSheet(sheets, "upcoming"), model.StatusUpcoming); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Past, err = readSheet(f, findSheet(sheets, "past"), model.StatusPast); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

func findSheet(sheets []string, substr string) string {
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(s), substr) {
			return s
		}
	}
	return ""
}

// readSheet parses one partition sheet. The first row is the header; headers
// are trimmed and mapped through the synonym table. Rows with every cell
// blank are skipped. A blank or unrecognized status cell falls back to the
// sheet's implied default.
func readSheet(f *excelize.File, sheet string, def model.Status) ([]model.Occupant, error) {
	if sheet == "" {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	for i, header := range rows[0] {
		name := strings.TrimSpace(header)
		if canonical, ok := columnSynonyms[name]; ok {
			name = canonical
		}
		if _, taken := index[name]; !taken {
			index[name] = i
		}
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var occupants []model.Occupant
	for _, row := range rows[1:] {
		o := model.Occupant{
			Name:     cell(row, "Name"),
			Email:    cell(row, "Email address"),
			Position: cell(row, "Position"),
			Office:   cell(row, "Office"),
			Building: cell(row, "Building"),
		}
		if o.Name == "" && o.Office == "" && o.Building == "" {
			continue
		}
		o.Status = model.Status(cell(row, "Status"))
		if !o.Status.Valid() {
			o.Status = def
		}
		occupants = append(occupants, o)
	}
	return occupants, nil
}

// ReadCapacities loads the "building:office" keyed capacity document. An
// absent file is not an error; it yields an empty table, which triggers
// capacity auto-initialization upstream.
func ReadCapacities(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read capacity document %s: %w", path, err)
	}
	capacities := make(map[string]int)
	if err := json.Unmarshal(data, &capacities); err != nil {
		return nil, fmt.Errorf("failed to parse capacity document %s: %w", path, err)
	}
	return capacities, nil
}

// WriteCapacities saves the capacity table as a keyed JSON document.
func WriteCapacities(path string, capacities map[string]int) error {
	data, err := json.Marshal(capacities)
	if err != nil {
		return fmt.Errorf("failed to encode capacity document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write capacity document %s: %w", path, err)
	}
	return nil
}
