package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/qrdots/pkg/errors"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"fractional block", Params{BlockSize: 2.5, CornerMarkerSize: 7, CenterExclusionSize: 20}, false},
		{"zero block", Params{BlockSize: 0, CornerMarkerSize: 7, CenterExclusionSize: 70}, true},
		{"negative block", Params{BlockSize: -1, CornerMarkerSize: 7, CenterExclusionSize: 70}, true},
		{"NaN block", Params{BlockSize: math.NaN(), CornerMarkerSize: 7, CenterExclusionSize: 70}, true},
		{"infinite block", Params{BlockSize: math.Inf(1), CornerMarkerSize: 7, CenterExclusionSize: 70}, true},
		{"zero corner", Params{BlockSize: 10, CornerMarkerSize: 0, CenterExclusionSize: 70}, true},
		{"negative corner", Params{BlockSize: 10, CornerMarkerSize: -7, CenterExclusionSize: 70}, true},
		{"zero center", Params{BlockSize: 10, CornerMarkerSize: 7, CenterExclusionSize: 0}, true},
		{"negative center", Params{BlockSize: 10, CornerMarkerSize: 7, CenterExclusionSize: -70}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidParams) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
			}
		})
	}
}

func TestNewParams(t *testing.T) {
	p, err := NewParams(10, 7, 70)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	if p != DefaultParams() {
		t.Errorf("NewParams(10, 7, 70) = %+v, want defaults", p)
	}

	if _, err := NewParams(0, 7, 70); err == nil {
		t.Error("NewParams should reject a zero block size")
	}
}

func TestParamsWithDefaults(t *testing.T) {
	got := Params{BlockSize: 4}.WithDefaults()
	want := Params{BlockSize: 4, CornerMarkerSize: 7, CenterExclusionSize: 70}
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}
}

func TestCenterSpan(t *testing.T) {
	tests := []struct {
		block, center float64
		want          int
	}{
		{10, 70, 7},
		{10, 75, 7},
		{10, 79.9, 7},
		{10, 5, 0},
		{2.5, 10, 4},
		{3, 10, 3},
	}
	for _, tt := range tests {
		p := Params{BlockSize: tt.block, CornerMarkerSize: 7, CenterExclusionSize: tt.center}
		if got := p.CenterSpan(); got != tt.want {
			t.Errorf("CenterSpan(block=%v, center=%v) = %d, want %d", tt.block, tt.center, got, tt.want)
		}
	}
}

func TestCenterZone(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		span          int
		want          Zone
	}{
		{"odd grid", 21, 21, 7, Zone{Top: 7, Bottom: 14, Left: 7, Right: 14}},
		{"even grid", 20, 20, 7, Zone{Top: 7, Bottom: 14, Left: 7, Right: 14}},
		{"even span", 21, 21, 4, Zone{Top: 8, Bottom: 12, Left: 8, Right: 12}},
		{"rectangular", 25, 21, 7, Zone{Top: 7, Bottom: 14, Left: 9, Right: 16}},
		{"no span", 21, 21, 0, Zone{Top: 10, Bottom: 10, Left: 10, Right: 10}},
		{"oversized", 5, 5, 50, Zone{Top: 0, Bottom: 5, Left: 0, Right: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := centerZone(tt.width, tt.height, tt.span); got != tt.want {
				t.Errorf("centerZone() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCornerZones(t *testing.T) {
	got := cornerZones(21, 25, 7)
	want := []Zone{
		{Top: 0, Bottom: 7, Left: 0, Right: 7},
		{Top: 0, Bottom: 7, Left: 14, Right: 21},
		{Top: 18, Bottom: 25, Left: 0, Right: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("zone %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	for _, z := range cornerZones(3, 3, 7) {
		if z.Cells() != 9 {
			t.Errorf("clamped zone %+v should cover the whole 3x3 grid", z)
		}
	}
}
