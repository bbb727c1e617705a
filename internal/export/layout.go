package export

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/ratio"
	"github.com/farabin/finratio/internal/report"
)

// AllSheet holds every metric of a report.
const AllSheet = "ALL"

// MonitoringSheet collects one summary row per export.
const MonitoringSheet = "MONITORING"

// monitoringColumns are the latest-period metrics appended to the MONITORING sheet.
// Date, Company and Period are prepended in buildMonitoringRow.
var monitoringColumns = []string{
	ratio.NetSale,
	ratio.NetProfit,
	ratio.TotalAsset,
	ratio.TotalDebt,
	ratio.TotalEquity,
	ratio.CurrentRatio,
	ratio.InstantRatio,
	ratio.DebtRatio,
	ratio.ROA,
	ratio.ROE,
	ratio.GrossProfitMargin,
	ratio.StockTurnover,
	ratio.SaleGrowthRatio,
	ratio.AltmanBankruptcyRatio,
}

// BuildWorkbook lays out a report as an ALL sheet plus one sheet per chart group.
func BuildWorkbook(r report.Report, at time.Time) Workbook {
	wb := Workbook{Company: r.Company}
	wb.Sheets = append(wb.Sheets, buildMetricSheet(AllSheet, r, r.Metrics()))

	for _, chart := range ratio.Charts() {
		metrics := lo.Filter(chart.Metrics, func(name string, _ int) bool {
			_, ok := r.Result.Data[name]
			return ok
		})
		if len(metrics) == 0 {
			continue
		}
		wb.Sheets = append(wb.Sheets, buildMetricSheet(chart.Name, r, metrics))
	}

	wb.MonitoringHeader, wb.Monitoring = buildMonitoringRow(r, at)
	return wb
}

// buildMetricSheet builds a metric x period grid.
// Columns: Metric | Title | Unit | <period labels...>
func buildMetricSheet(name string, r report.Report, metrics []string) Sheet {
	header := []any{"Metric", "Title", "Unit"}
	for _, label := range r.Labels {
		header = append(header, label)
	}

	rows := make([][]any, 0, len(metrics)+1)
	rows = append(rows, header)
	for _, metric := range metrics {
		meta := ratio.Lookup(metric)
		row := []any{metric, meta.Title, meta.Unit}
		for i := range r.Labels {
			row = append(row, toFloat(r.Value(metric, i)))
		}
		rows = append(rows, row)
	}

	return Sheet{Name: name, Rows: rows}
}

// buildMonitoringRow builds the header and one data row for the latest period.
func buildMonitoringRow(r report.Report, at time.Time) (header, data []any) {
	header = []any{"Date", "Company", "Period"}
	for _, metric := range monitoringColumns {
		header = append(header, ratio.Lookup(metric).Title)
	}

	latest := r.Latest()
	period := ""
	if latest >= 0 {
		period = r.Labels[latest]
	}

	data = []any{at.UTC().Format("2006-01-02"), r.Company, period}
	for _, metric := range monitoringColumns {
		data = append(data, toFloat(r.Value(metric, latest)))
	}
	return header, data
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
