package disease

import (
	"strings"
	"testing"
)

func TestTableOrder(t *testing.T) {
	// The first-match policy depends on this exact order; a reorder is an
	// observable behavior change.
	want := []string{"cold", "fever", "covid", "malaria", "diabetes", "hypertension", "headache"}
	if len(Table) != len(want) {
		t.Fatalf("table has %d records, want %d", len(Table), len(want))
	}
	for i, r := range Table {
		if r.Keyword != want[i] {
			t.Errorf("Table[%d].Keyword = %q, want %q", i, r.Keyword, want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	got, ok := Lookup("I think I have a FEVER")
	if !ok {
		t.Fatal("expected match")
	}
	for _, part := range []string{"🩺 *Fever*", "**Symptoms**", "chills", "**Severity**: Mild to Moderate"} {
		if !strings.Contains(got, part) {
			t.Errorf("reply missing %q:\n%s", part, got)
		}
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	// Both "fever" and "headache" are present; "fever" is declared earlier.
	got, ok := Lookup("fever and headache since morning")
	if !ok {
		t.Fatal("expected match")
	}
	if !strings.Contains(got, "*Fever*") {
		t.Errorf("expected the fever record, got:\n%s", got)
	}
}

func TestLookupMiss(t *testing.T) {
	if got, ok := Lookup("my knee hurts"); ok {
		t.Errorf("expected miss, got %q", got)
	}
}
