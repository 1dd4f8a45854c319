package store

import (
	"testing"
	"time"
)

func TestNullTime_Scan(t *testing.T) {
	want := time.Date(2021, 1, 18, 10, 1, 41, 251000000, time.UTC)
	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{"nil", nil, false},
		{"time", want.In(time.FixedZone("BST", 3600)), true},
		{"sqlite text", "2021-01-18 10:01:41.251+00:00", true},
		{"sqlite bytes", []byte("2021-01-18 10:01:41.251+00:00"), true},
		{"rfc3339", "2021-01-18T10:01:41.251Z", true},
		{"time.String", "2021-01-18 10:01:41.251 +0000 UTC", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nt NullTime
			if err := nt.Scan(tt.src); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.src, err)
			}
			if nt.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", nt.Valid, tt.valid)
			}
			if tt.valid && !nt.Time.Equal(want) {
				t.Errorf("Time = %v, want %v", nt.Time, want)
			}
			if tt.valid && nt.Time.Location() != time.UTC {
				t.Errorf("Location = %v, want UTC", nt.Time.Location())
			}
		})
	}
}

func TestNullTime_ScanRejects(t *testing.T) {
	var nt NullTime
	if err := nt.Scan("yesterday"); err == nil {
		t.Error("Scan(yesterday) succeeded, want error")
	}
	if err := nt.Scan(42); err == nil {
		t.Error("Scan(42) succeeded, want error")
	}
}
