package main

import (
	"testing"

	"github.com/noriah/synthscope"
)

func TestFindConfigArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"-b", "null"}, ""},
		{[]string{"-c", "a.yaml"}, "a.yaml"},
		{[]string{"-w", "--config", "b.yaml"}, "b.yaml"},
		{[]string{"--config=c.yaml"}, "c.yaml"},
		{[]string{"-c=d.yaml", "-w"}, "d.yaml"},
		{[]string{"-c"}, ""},
	}

	for _, tt := range tests {
		if got := findConfigArg(tt.args); got != tt.want {
			t.Errorf("findConfigArg(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestNotes(t *testing.T) {
	notes, err := parseNotes(" 60, 64,67.5,")
	if err != nil {
		t.Fatal(err)
	}

	if len(notes) != 3 || notes[2] != 67.5 {
		t.Errorf("notes = %v", notes)
	}

	if got := formatNotes(notes); got != "60,64,67.5" {
		t.Errorf("formatted = %q", got)
	}

	if _, err := parseNotes("60,c4"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestFinish(t *testing.T) {
	cfg := newZeroConfig()
	cfg.window = true
	cfg.notes = "48,55"

	if err := cfg.finish(); err != nil {
		t.Fatal(err)
	}

	if cfg.Host != synthscope.HostWindow {
		t.Errorf("host = %q", cfg.Host)
	}

	if len(cfg.Notes) != 2 || cfg.Notes[0] != 48 {
		t.Errorf("notes = %v", cfg.Notes)
	}
}
