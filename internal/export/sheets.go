package export

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// SheetsWriter implements SheetWriter using the Google Sheets API.
// Each company gets its own tabs, titled "<company> <sheet>".
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Write ensures the company's tabs exist, clears and rewrites them, then
// appends the monitoring row.
func (w *SheetsWriter) Write(ctx context.Context, wb Workbook) error {
	titles := make([]string, len(wb.Sheets))
	for i, sh := range wb.Sheets {
		titles[i] = tabTitle(wb.Company, sh.Name)
	}

	meta, err := w.ensureSheets(ctx, titles...)
	if err != nil {
		return err
	}

	ranges := make([]string, len(titles))
	data := make([]*sheets.ValueRange, len(titles))
	for i, title := range titles {
		ranges[i] = quoteTitle(title)
		data[i] = &sheets.ValueRange{Range: quoteTitle(title) + "!A1", Values: wb.Sheets[i].Rows}
	}

	_, err = w.svc.Spreadsheets.Values.BatchClear(
		w.spreadsheetID,
		&sheets.BatchClearValuesRequest{Ranges: ranges},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing sheets: %w", err)
	}

	_, err = w.svc.Spreadsheets.Values.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             data,
		},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing sheets: %w", err)
	}

	var formatting []*sheets.Request
	for _, title := range titles {
		formatting = append(formatting, headerFormatRequests(meta[title])...)
	}
	if err := w.batchUpdate(ctx, formatting); err != nil {
		return fmt.Errorf("formatting sheets: %w", err)
	}

	return w.appendMonitoring(ctx, wb)
}

// appendMonitoring ensures the MONITORING sheet exists, writes the header row if the
// sheet is new or empty, then appends one data row.
func (w *SheetsWriter) appendMonitoring(ctx context.Context, wb Workbook) error {
	if len(wb.Monitoring) == 0 {
		return nil
	}

	meta, err := w.ensureSheets(ctx, MonitoringSheet)
	if err != nil {
		return fmt.Errorf("ensuring %s sheet: %w", MonitoringSheet, err)
	}

	existing, err := w.svc.Spreadsheets.Values.Get(
		w.spreadsheetID, MonitoringSheet+"!A1:A1",
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading %s header: %w", MonitoringSheet, err)
	}

	if len(existing.Values) == 0 {
		_, err = w.svc.Spreadsheets.Values.Update(
			w.spreadsheetID,
			MonitoringSheet+"!A1",
			&sheets.ValueRange{Values: [][]any{wb.MonitoringHeader}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("writing %s header: %w", MonitoringSheet, err)
		}
		if err := w.batchUpdate(ctx, headerFormatRequests(meta[MonitoringSheet])); err != nil {
			return fmt.Errorf("formatting %s sheet: %w", MonitoringSheet, err)
		}
	}

	_, err = w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		MonitoringSheet+"!A:A",
		&sheets.ValueRange{Values: [][]any{wb.Monitoring}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending %s row: %w", MonitoringSheet, err)
	}

	return nil
}

// ensureSheets creates any of the named sheets that do not already exist and
// returns the sheet id of every requested title.
func (w *SheetsWriter) ensureSheets(ctx context.Context, names ...string) (map[string]int64, error) {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	ids := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		ids[s.Properties.Title] = s.Properties.SheetId
	}

	var requests []*sheets.Request
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			})
		}
	}

	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating sheets: %w", err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}

	return ids, nil
}

func (w *SheetsWriter) batchUpdate(ctx context.Context, requests []*sheets.Request) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	return err
}

// headerFormatRequests bolds the first row on a light-green background and freezes it.
func headerFormatRequests(sheetID int64) []*sheets.Request {
	lightGreen := &sheets.Color{Red: 0.851, Green: 0.918, Blue: 0.827}

	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor:     lightGreen,
						TextFormat:          &sheets.TextFormat{Bold: true},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}

// maxTitleRunes is the Sheets limit on tab title length.
const maxTitleRunes = 100

// tabTitle names a company's tab. Only the company part is shortened, so
// every sheet of one company keeps a distinct title.
func tabTitle(company, sheet string) string {
	suffix := " " + sheet
	room := maxTitleRunes - utf8.RuneCountInString(suffix)
	if room < 0 {
		room = 0
	}
	if utf8.RuneCountInString(company) > room {
		company = string([]rune(company)[:room])
	}
	return company + suffix
}

// quoteTitle quotes a sheet title for use in A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
