package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM tips \t WHERE user_name = $1 ")
	want := "SELECT * FROM tips WHERE user_name = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	got := formatDBQueryForTrace("SELECT " + strings.Repeat("encrypted_data, ", 100) + "id FROM tips")
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}
}
