package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
	"github.com/farabin/finratio/internal/ratio"
)

func TestFieldListsMatchColumns(t *testing.T) {
	tests := []struct {
		table  recordTable
		fields int
	}{
		{balanceTable, len(balanceFields(&domain.BalanceReport{}))},
		{profitLossTable, len(profitLossFields(&domain.ProfitLossStatement{}))},
		{soldProductTable, len(soldProductFields(&domain.SoldProductFee{}))},
		{turnoverTable, len(turnoverFields(&domain.AccountTurnOver{}))},
	}

	for _, tt := range tests {
		if len(tt.table.columns) != tt.fields {
			t.Errorf("%s: %d columns, %d fields", tt.table.table, len(tt.table.columns), tt.fields)
		}
	}
}

func TestFillParsesTextAndNulls(t *testing.T) {
	str := func(s string) *string { return &s }
	values := []*string{str("1000.50"), nil, str("300"), str("not-a-number"), str("-25")}
	values = append(values, make([]*string, len(balanceTable.columns)-len(values))...)

	var br domain.BalanceReport
	fill(balanceFields(&br), values)

	if !br.TotalCurrentAsset.Equal(decimal.RequireFromString("1000.5")) {
		t.Errorf("TotalCurrentAsset = %s, want 1000.5", br.TotalCurrentAsset)
	}
	if !br.TotalNonCurrentAsset.IsZero() {
		t.Errorf("TotalNonCurrentAsset = %s, want 0 for NULL", br.TotalNonCurrentAsset)
	}
	if !br.TotalCurrentDebt.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalCurrentDebt = %s, want 300", br.TotalCurrentDebt)
	}
	if !br.TotalNonCurrentDebt.IsZero() {
		t.Errorf("TotalNonCurrentDebt = %s, want 0 for invalid text", br.TotalNonCurrentDebt)
	}
	if !br.OwnershipRightTotal.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("OwnershipRightTotal = %s, want -25", br.OwnershipRightTotal)
	}
}

func TestLoadPeriodsQuery(t *testing.T) {
	q := loadPeriodsQuery()

	for _, want := range []string{
		"FROM financial_assets fa",
		"LEFT JOIN LATERAL (SELECT * FROM balance_reports x WHERE x.financial_asset_id = fa.id ORDER BY x.id LIMIT 1) br ON TRUE",
		"LEFT JOIN LATERAL (SELECT * FROM account_turnovers x WHERE x.financial_asset_id = fa.id ORDER BY x.id LIMIT 1) at ON TRUE",
		"spf.direct_wage::text",
		"ORDER BY fa.year, fa.month, fa.id",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q", want)
		}
	}

	// 4 asset columns plus an id and every amount per record table.
	wantCols := 4
	for _, tbl := range recordTables {
		wantCols += 1 + len(tbl.columns)
	}
	selectList := q[:strings.Index(q, "\n FROM")]
	if got := strings.Count(selectList, ",") + 1; got != wantCols {
		t.Errorf("select list has %d columns, want %d", got, wantCols)
	}
}

func TestInsertRecordQuery(t *testing.T) {
	got := insertRecordQuery(soldProductTable)
	want := "INSERT INTO sold_product_fees (financial_asset_id, consuming_material, construction_overhead, production_total_price, direct_wage, sold_product_total_price) VALUES ($1, $2::numeric, $3::numeric, $4::numeric, $5::numeric, $6::numeric)"
	if got != want {
		t.Errorf("query =\n%s\nwant\n%s", got, want)
	}

	spf := domain.SoldProductFee{DirectWage: decimal.RequireFromString("12.5")}
	args := recordArgs(7, soldProductFields(&spf))
	if len(args) != 6 {
		t.Fatalf("len(args) = %d, want 6", len(args))
	}
	if args[0] != int64(7) || args[4] != "12.5" || args[1] != "0" {
		t.Errorf("args = %v", args)
	}
}

func TestMetricsJSONRoundsToStoragePrecision(t *testing.T) {
	result := ratio.Result{
		Status: ratio.StatusSuccess,
		Data: map[string][]decimal.Decimal{
			ratio.InstantRatio:          {decimal.RequireFromString("1.6666666666666667"), decimal.Zero},
			ratio.AltmanBankruptcyRatio: {decimal.RequireFromString("7.499"), decimal.NewFromInt(3)},
		},
	}

	raw, err := MetricsJSON(result, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]json.Number
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON %s: %v", raw, err)
	}
	if got[ratio.InstantRatio] != "1.67" {
		t.Errorf("instant_ratio = %s, want 1.67", got[ratio.InstantRatio])
	}
	if got[ratio.AltmanBankruptcyRatio] != "7.5" {
		t.Errorf("altman = %s, want 7.5", got[ratio.AltmanBankruptcyRatio])
	}
}

func TestPeriodRows(t *testing.T) {
	periods := []domain.Period{{AssetID: 10, Year: 1401}, {AssetID: 11, Year: 1402}}
	result := ratio.Result{
		Status: ratio.StatusSuccess,
		Data:   map[string][]decimal.Decimal{ratio.ROA: {decimal.NewFromInt(1), decimal.NewFromInt(2)}},
	}

	rows, err := periodRows(periods, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].assetID != 10 || rows[1].assetID != 11 {
		t.Fatalf("rows = %+v", rows)
	}
	if string(rows[1].metrics) != `{"roa":2}` {
		t.Errorf("metrics = %s, want {\"roa\":2}", rows[1].metrics)
	}
}

func TestPeriodRowsFailedResult(t *testing.T) {
	rows, err := periodRows([]domain.Period{{AssetID: 1}}, ratio.Result{Status: ratio.StatusFailed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("failed result produced %d rows", len(rows))
	}
}

func TestPeriodRowsErrors(t *testing.T) {
	success := ratio.Result{
		Status: ratio.StatusSuccess,
		Data:   map[string][]decimal.Decimal{ratio.ROA: {decimal.NewFromInt(1)}},
	}

	if _, err := periodRows([]domain.Period{{Year: 1402}}, success); err == nil {
		t.Error("expected error for missing asset id")
	}
	if _, err := periodRows([]domain.Period{{AssetID: 1}, {AssetID: 2}}, success); err == nil {
		t.Error("expected error for length mismatch")
	}
}
