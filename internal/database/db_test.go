package database

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_ratio_runs.up.sql":  {Data: []byte("CREATE TABLE b ();")},
		"001_init.up.sql":        {Data: []byte("CREATE TABLE a ();")},
		"001_init.down.sql":      {Data: []byte("DROP TABLE a;")},
		"003_financial.up.sql":   {Data: []byte("CREATE TABLE c ();")},
		"README.md":              {Data: []byte("notes")},
		"nested/004_skip.up.sql": {Data: []byte("CREATE TABLE d ();")},
	}

	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{"fresh database", nil, []string{"001_init.up.sql", "002_ratio_runs.up.sql", "003_financial.up.sql"}},
		{"partially applied", map[string]bool{"001_init.up.sql": true}, []string{"002_ratio_runs.up.sql", "003_financial.up.sql"}},
		{"up to date", map[string]bool{"001_init.up.sql": true, "002_ratio_runs.up.sql": true, "003_financial.up.sql": true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PendingMigrations(fsys, tt.applied)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pending[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty database URL")
	}
}
