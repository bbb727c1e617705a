package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farabin/finratio/internal/report"
)

// Sheet is one named grid of cell values. The first row is the header.
type Sheet struct {
	Name string
	Rows [][]any
}

// Workbook is the spreadsheet layout of one company report.
type Workbook struct {
	Company          string
	Sheets           []Sheet
	MonitoringHeader []any
	Monitoring       []any
}

// SheetWriter writes a workbook to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, wb Workbook) error
}

// MultiWriter writes to every writer and joins their errors.
type MultiWriter []SheetWriter

func (m MultiWriter) Write(ctx context.Context, wb Workbook) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(ctx, wb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Service lays out reports and delegates writing to a SheetWriter.
type Service struct {
	writer SheetWriter
	now    func() time.Time
}

// NewService creates a new export Service.
func NewService(writer SheetWriter) *Service {
	return &Service{writer: writer, now: time.Now}
}

// Export writes one company report. Failed results are not exported.
// Implements worker.AfterRecomputeHook.
func (s *Service) Export(ctx context.Context, r report.Report) error {
	if !r.Result.Succeeded() {
		return fmt.Errorf("exporting %s: result status is %q", r.Company, r.Result.Status)
	}
	if err := s.writer.Write(ctx, BuildWorkbook(r, s.now())); err != nil {
		return fmt.Errorf("exporting %s: %w", r.Company, err)
	}
	return nil
}
