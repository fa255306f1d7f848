package validator

import "testing"

func TestValidateLocation(t *testing.T) {
	if _, err := ValidateLocation("  Vienna  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc, _ := ValidateLocation(" Graz "); loc != "Graz" {
		t.Fatalf("expected trimmed location, got %q", loc)
	}
	for _, bad := range []string{"", " ", "x"} {
		if _, err := ValidateLocation(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidateDate(t *testing.T) {
	d, err := ValidateDate("2026-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 6 || d.Day() != 1 {
		t.Fatalf("unexpected date %v", d)
	}
	for _, bad := range []string{"", "01.06.2026", "2026/06/01", "2026-13-01"} {
		if _, err := ValidateDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLooksLikeIATA(t *testing.T) {
	for _, ok := range []string{"VIE", "grz", "Pmi"} {
		if !LooksLikeIATA(ok) {
			t.Fatalf("expected %q to look like a code", ok)
		}
	}
	for _, bad := range []string{"", "VI", "VIEN", "V1E", "1-2"} {
		if LooksLikeIATA(bad) {
			t.Fatalf("did not expect %q to look like a code", bad)
		}
	}
}
