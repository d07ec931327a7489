package gitfile

import (
	"testing"
)

func TestParseBool(t *testing.T) {
	cases := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"yes", true, false},
		{"Yes", true, false},
		{"on", true, false},
		{"1", true, false},
		{"false", false, false},
		{"no", false, false},
		{"off", false, false},
		{"0", false, false},
		{"", false, false},
		{"  true  ", true, false},
		{"maybe", false, true},
		{"2", false, true},
	}

	for _, tc := range cases {
		got, err := ParseBool(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBool(%q) = %v, want error", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBool(%q) error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBool(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseInt64(t *testing.T) {
	cases := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-17", -17, false},
		{"1k", 1024, false},
		{"1K", 1024, false},
		{"2m", 2 * 1024 * 1024, false},
		{"3G", 3 * 1024 * 1024 * 1024, false},
		{"-1k", -1024, false},
		{" 10 ", 10, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"10000000000000000000", 0, true},
		{"9223372036854775807k", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseInt64(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseInt64(%q) = %d, want error", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInt64(%q) error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseInt64(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseInt32(t *testing.T) {
	cases := []struct {
		raw     string
		want    int32
		wantErr bool
	}{
		{"42", 42, false},
		{"2k", 2048, false},
		{"-2147483648", -2147483648, false},
		{"2147483647", 2147483647, false},
		{"2147483648", 0, true},
		{"3g", 0, true},
		{"nope", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseInt32(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseInt32(%q) = %d, want error", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInt32(%q) error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseInt32(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestEncodeValue_RoundTrip(t *testing.T) {
	values := []string{
		"simple",
		"two words",
		"",
		"  leading",
		"trailing  ",
		"has # hash",
		"has ; semi",
		`quo"ted`,
		`back\slash`,
		"tab\there",
		"line\nbreak",
	}

	for _, v := range values {
		doc, err := parseDocument([]string{"[test]", "\tkey = " + encodeValue(v)})
		if err != nil {
			t.Errorf("encodeValue(%q): parse failed: %v", v, err)
			continue
		}
		got, ok := doc.entries["test.key"]
		if !ok {
			t.Errorf("encodeValue(%q): key missing after round trip", v)
			continue
		}
		if got.value != v {
			t.Errorf("encodeValue(%q) round trip = %q", v, got.value)
		}
	}
}
