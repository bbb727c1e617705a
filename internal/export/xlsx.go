package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements SheetWriter by writing one .xlsx file per company
// and appending to a shared monitoring.xlsx.
type XLSXWriter struct {
	dir string
	mu  sync.Mutex
}

// NewXLSXWriter creates an XLSXWriter that writes into dir, creating it if needed.
func NewXLSXWriter(dir string) (*XLSXWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &XLSXWriter{dir: dir}, nil
}

// Path returns the workbook path for a company.
func (w *XLSXWriter) Path(company string) string {
	return filepath.Join(w.dir, safeFileName(company)+".xlsx")
}

func (w *XLSXWriter) Write(ctx context.Context, wb Workbook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteWorkbookFile(w.Path(wb.Company), wb); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return appendMonitoringFile(filepath.Join(w.dir, "monitoring.xlsx"), wb)
}

// WriteWorkbookFile saves every sheet of wb into a new .xlsx file at path.
func WriteWorkbookFile(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, sh := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return fmt.Errorf("renaming sheet %s: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sh.Name, err)
		}

		if err := writeRows(f, sh.Name, 1, sh.Rows); err != nil {
			return err
		}
		if len(sh.Rows) > 0 {
			if err := f.SetRowStyle(sh.Name, 1, 1, headerStyle); err != nil {
				return fmt.Errorf("styling sheet %s: %w", sh.Name, err)
			}
			if err := f.SetPanes(sh.Name, &excelize.Panes{
				Freeze:      true,
				XSplit:      1,
				YSplit:      1,
				TopLeftCell: "B2",
				ActivePane:  "bottomRight",
			}); err != nil {
				return fmt.Errorf("freezing sheet %s: %w", sh.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// appendMonitoringFile adds the workbook's monitoring row to the file at path,
// creating the file with a header row when it does not exist.
func appendMonitoringFile(path string, wb Workbook) error {
	if len(wb.Monitoring) == 0 {
		return nil
	}

	f, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), MonitoringSheet); err != nil {
			f.Close()
			return fmt.Errorf("creating %s sheet: %w", MonitoringSheet, err)
		}
	} else if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	existing, err := f.GetRows(MonitoringSheet)
	if err != nil {
		return fmt.Errorf("reading %s rows: %w", MonitoringSheet, err)
	}

	var rows [][]any
	if len(existing) == 0 {
		rows = append(rows, wb.MonitoringHeader)
	}
	rows = append(rows, wb.Monitoring)

	if err := writeRows(f, MonitoringSheet, len(existing)+1, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", startRow+i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, startRow+i, err)
		}
	}
	return nil
}

// safeFileName replaces path separators and other unsafe characters in a company slug.
func safeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "report"
	}
	return name
}
