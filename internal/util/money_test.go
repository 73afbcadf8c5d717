package util

import "testing"

func TestParseAmountCent(t *testing.T) {
	cases := map[string]int64{
		"850":     85000,
		"850.5":   85050,
		"850.50":  85050,
		"0":       0,
		"0.01":    1,
		"-12.30":  -1230,
		"1234.00": 123400,
	}
	for in, want := range cases {
		got, err := ParseAmountCent(in)
		if err != nil {
			t.Errorf("ParseAmountCent(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAmountCent(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseAmountCentRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "12.345", "1,50"} {
		if _, err := ParseAmountCent(in); err == nil {
			t.Errorf("ParseAmountCent(%q) should fail", in)
		}
	}
}

func TestFormatCent(t *testing.T) {
	cases := map[int64]string{
		85000: "850.00",
		85050: "850.50",
		1:     "0.01",
		0:     "0.00",
		-1230: "-12.30",
	}
	for in, want := range cases {
		if got := FormatCent(in); got != want {
			t.Errorf("FormatCent(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cent := range []int64{0, 1, 99, 100, 85050, -1230} {
		back, err := ParseAmountCent(FormatCent(cent))
		if err != nil {
			t.Fatalf("round trip %d: %v", cent, err)
		}
		if back != cent {
			t.Errorf("round trip %d came back as %d", cent, back)
		}
	}
}
