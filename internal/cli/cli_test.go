package cli

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		min     int64
		max     int64
		want    int64
		wantErr bool
	}{
		{name: "decimal", input: "42", min: 0, max: 255, want: 42},
		{name: "hex", input: "0xfa70", min: 0, max: 65535, want: 0xfa70},
		{name: "octal", input: "017", min: 0, max: 255, want: 15},
		{name: "zero", input: "0", min: 0, max: 65535, want: 0},
		{name: "upper bound", input: "65535", min: 0, max: 65535, want: 65535},
		{name: "not numeric", input: "relay", min: 0, max: 255, wantErr: true},
		{name: "above range", input: "256", min: 0, max: 255, wantErr: true},
		{name: "below range", input: "-1", min: 0, max: 255, wantErr: true},
		{name: "empty", input: "", min: 0, max: 255, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNumber(tt.input, tt.min, tt.max)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseNumber(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseNumber(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
