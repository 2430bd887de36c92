package domain

import (
	"encoding/json"
	"testing"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2024-03-05T10:20:30"`, "2024-03-05"},
		{`"2024-03-05T10:20:30.123456"`, "2024-03-05"},
		{`"2024-03-05T10:20:30Z"`, "2024-03-05"},
		{`"2024-03-05"`, "2024-03-05"},
		{`"05/03/2024"`, "2024-03-05"},
		{`null`, ""},
		{`"N/A"`, ""},
	}
	for _, tc := range tests {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.in), &ts); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		if got := ts.Date(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.want, got)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`"next tuesday"`), &ts); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
