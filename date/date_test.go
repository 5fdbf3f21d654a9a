package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2025, 2, 30), New(2025, 3, 2); got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{" 2025-7-1 ", New(2025, time.July, 1), false},
		{"2024-03-05T22:10:00Z", New(2024, time.March, 5), false},
		{"2024-03-05T22:10:00.123-05:00", New(2024, time.March, 6), false},
		{"yesterday", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Date
	}{
		{"string", `"2025-01-15"`, New(2025, time.January, 15)},
		{"empty string", `""`, Date{}},
		{"null", `null`, Date{}},
		{"epoch millis", `1736899200000`, New(2025, time.January, 15)},
		{"timestamp", `{"seconds":1736899200,"nanoseconds":0}`, New(2025, time.January, 15)},
		{"admin timestamp", `{"_seconds":1736899200,"_nanoseconds":0}`, New(2025, time.January, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(New(2025, time.January, 5))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `"2025-01-05"` {
		t.Errorf("Marshal() = %s, want %q", got, "2025-01-05")
	}
	got, _ = json.Marshal(Date{})
	if string(got) != `""` {
		t.Errorf("Marshal(zero) = %s, want empty string", got)
	}
}
