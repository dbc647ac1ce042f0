package core

import "testing"

func TestResolveColumn(t *testing.T) {
	cases := []struct {
		in  string
		out int
	}{
		{"Zone 0-5", 1},
		{"Zone 5-10", 2},
		{"Zone 10-15", 3},
		{"Zone 40-45", 9},
		{" Zone 20-25 ", 5},
		{"garbage", NoColumn},
		{"", NoColumn},
		{"Zone", NoColumn},
		{"Zone 10-20", NoColumn},
		{"Zone 3-8", NoColumn},
		{"Zone 45-50", NoColumn}, // would land on the Total column
		{"Zone -5-0", NoColumn},
		{"zone 0-5", NoColumn},
	}
	for _, tc := range cases {
		if got := ResolveColumn(tc.in); got != tc.out {
			t.Fatalf("%q expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestZoneBandsRoundTrip(t *testing.T) {
	bands := ZoneBands()
	if len(bands) != ZoneBandCount {
		t.Fatalf("expected %d bands, got %d", ZoneBandCount, len(bands))
	}
	for i, b := range bands {
		if b.Column() != i+1 {
			t.Fatalf("band %s expected column %d, got %d", b.Label(), i+1, b.Column())
		}
		if got := ResolveColumn(b.Label()); got != b.Column() {
			t.Fatalf("label %q resolved to %d", b.Label(), got)
		}
	}
	if bands[0].Label() != "Zone 0-5" || bands[len(bands)-1].Label() != "Zone 40-45" {
		t.Fatalf("unexpected band labels: first=%q last=%q", bands[0].Label(), bands[len(bands)-1].Label())
	}
}
