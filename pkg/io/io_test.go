package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

func TestJSONRoundTrip(t *testing.T) {
	g := circuit.New()
	btn := g.NewComponent(circuit.KindButton, r3.Vec{})
	led := circuit.NewComponent(circuit.KindLED, r3.Vec{X: 1, Y: 0.5})
	led.State = circuit.On
	led.Augments = circuit.LEDAugments{R: 255, OnOpacity: 100, OffOpacity: 25}
	hl := g.Add(led)
	_ = g.MakeConnection(btn, hl)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "LED"`) {
		t.Errorf("kind not written by name:\n%s", buf.String())
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", back.Len())
	}
	c, _ := back.Component(back.Handles()[1])
	if c.Kind != circuit.KindLED || c.State != circuit.On || c.Position != (r3.Vec{X: 1, Y: 0.5}) {
		t.Errorf("LED = %v %v %v", c.Kind, c.State, c.Position)
	}
	if !circuit.EqualAugments(c.Augments, led.Augments) {
		t.Errorf("Augments = %v, want %v", c.Augments, led.Augments)
	}
	if s := back.Summarize(); s.Wires != 1 || s.Sources != 1 {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"duplicate id", `{"nodes":[{"id":1,"kind":"NODE"},{"id":1,"kind":"NODE"}],"edges":[]}`, errors.ErrCodeInvalidInput},
		{"unknown kind", `{"nodes":[{"id":1,"kind":"WIDGET"}],"edges":[]}`, errors.ErrCodeInvalidInput},
		{"unknown state", `{"nodes":[{"id":1,"kind":"NODE","state":"HALF"}],"edges":[]}`, errors.ErrCodeInvalidInput},
		{"unknown target", `{"nodes":[{"id":1,"kind":"NODE"}],"edges":[{"from":1,"to":2}]}`, errors.ErrCodeInvalidInput},
		{"bad augments", `{"nodes":[{"id":1,"kind":"RANDOM","augments":[0.1,0.2]}],"edges":[]}`, errors.ErrCodeMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if errors.GetCode(err) != tt.code {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() should fail on truncated input")
	}
}

func TestExportImportFile(t *testing.T) {
	g := circuit.New()
	g.NewComponent(circuit.KindText, r3.Vec{Z: 2})
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if back.Len() != 1 {
		t.Errorf("Len() = %d, want 1", back.Len())
	}
}
