package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseVec3(t *testing.T) {
	parseTests := []struct {
		in   string
		want mgl32.Vec3
		ok   bool
	}{
		{"1,2,3", mgl32.Vec3{1, 2, 3}, true},
		{" -1.5, 0 ,2.25", mgl32.Vec3{-1.5, 0, 2.25}, true},
		{"1,2", mgl32.Vec3{}, false},
		{"1,a,3", mgl32.Vec3{}, false},
		{"", mgl32.Vec3{}, false},
	}
	for _, tt := range parseTests {
		got, err := parseVec3(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseVec3(%q) err = %v, want ok %v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseVec3(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQueryCmdFlags(t *testing.T) {
	c := QueryCmd()
	err := c.ParseFlags([]string{"--scene", "3", "--from", "0.1,0,0.1", "--to", "0.9,0,0.9", "--to", "2,0,2"})
	if err != nil {
		t.Fatal(err)
	}
	toList, err := c.Flags().GetStringArray("to")
	if err != nil {
		t.Fatal(err)
	}
	want := []mgl32.Vec3{{0.9, 0, 0.9}, {2, 0, 2}}
	if len(toList) != len(want) {
		t.Fatalf("to = %q, want %d positions", toList, len(want))
	}
	for i, to := range toList {
		got, err := parseVec3(to)
		if err != nil {
			t.Fatalf("to[%d] = %q: %v", i, to, err)
		}
		if got != want[i] {
			t.Errorf("to[%d] = %v, want %v", i, got, want[i])
		}
	}
	from, _ := c.Flags().GetString("from")
	if got, err := parseVec3(from); err != nil || got != (mgl32.Vec3{0.1, 0, 0.1}) {
		t.Errorf("from = %v, %v", got, err)
	}
}
