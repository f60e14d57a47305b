package main

import (
	"io"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"defaults", nil, options{configDir: "configs"}},
		{"custom config dir", []string{"-config", "/etc/skillpath"}, options{configDir: "/etc/skillpath"}},
		{"migrate", []string{"-migrate"}, options{configDir: "configs", migrate: true}},
		{"migrate only implies migrate", []string{"-migrate-only"}, options{configDir: "configs", migrate: true, migrateOnly: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"-port", "9000"}, io.Discard); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
