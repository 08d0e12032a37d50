package cli

import (
	"reflect"
	"testing"
)

func TestConfigTemplateFromGlobals(t *testing.T) {
	root := configTemplate(reflect.TypeOf(Globals{}))

	logSection, ok := root["log"].(map[string]any)
	if !ok {
		t.Fatalf("template missing log section: %#v", root)
	}
	if got := logSection["level"]; got != "info" {
		t.Errorf("log.level default = %v, want %q", got, "info")
	}
	for _, key := range []string{"file", "rawFile"} {
		if _, ok := logSection[key]; !ok {
			t.Errorf("log section missing %q key", key)
		}
	}

	// Device flags embed without a prefix and land at the top level.
	if got := root["transport"]; got != "hid" {
		t.Errorf("transport default = %v, want %q", got, "hid")
	}
	if got := root["vid"]; got != "0" {
		t.Errorf("vid default = %v, want %q", got, "0")
	}
	if got := root["pid"]; got != "0" {
		t.Errorf("pid default = %v, want %q", got, "0")
	}
	if _, ok := root["serial"]; !ok {
		t.Errorf("template missing serial key")
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"json", "json", true},
		{"JSON", "json", true},
		{"yaml", "yaml", true},
		{"yml", "yaml", true},
		{"toml", "toml", true},
		{"ini", "", false},
	}

	for _, tt := range tests {
		got, ok := formatExt(tt.input)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("formatExt(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOk)
		}
	}
}
