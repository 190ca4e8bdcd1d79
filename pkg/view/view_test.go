package view

import (
	"errors"
	"testing"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		raw     string
		want    Section
		wantErr bool
	}{
		{raw: "home", want: SectionHome},
		{raw: " App-Center ", want: SectionAppCenter},
		{raw: "upload-agent", want: SectionUploadAgent},
		{raw: "", wantErr: true},
		{raw: "settings", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSection(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSection) {
				t.Errorf("ParseSection(%q) err = %v, want ErrUnknownSection", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSection(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSection(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseAxisRoundTrip(t *testing.T) {
	if len(AllAxes()) != 9 {
		t.Fatalf("expected nine axes, got %d", len(AllAxes()))
	}
	for _, a := range AllAxes() {
		got, err := ParseAxis(a.String())
		if err != nil {
			t.Fatalf("ParseAxis(%q): %v", a.String(), err)
		}
		if got != a {
			t.Fatalf("ParseAxis(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAxis("owner"); !errors.Is(err, ErrUnknownAxis) {
		t.Fatalf("expected ErrUnknownAxis, got %v", err)
	}
	if Axis(42).Valid() {
		t.Fatal("axis 42 should be invalid")
	}
}

func TestSelectionIsValueTyped(t *testing.T) {
	var s Selection
	s2 := s.With(AxisApp, "a1")
	if s.Get(AxisApp) != "" {
		t.Fatal("With must not mutate the receiver")
	}
	if s2.Get(AxisApp) != "a1" {
		t.Fatalf("expected a1, got %q", s2.Get(AxisApp))
	}
	s3 := s2.With(AxisTab, "specs").Without(AxisApp)
	if got := s3.Active(); len(got) != 1 || got[0] != AxisTab {
		t.Fatalf("expected only tab active, got %v", got)
	}
	if !s.Empty() || s2.Empty() {
		t.Fatal("Empty reported wrong state")
	}
}

func TestCompositeDetail(t *testing.T) {
	c := Composite{Section: SectionSolutions}
	if _, _, ok := c.Detail(); ok {
		t.Fatal("list view should not report a detail")
	}
	c.Selection = c.Selection.With(AxisTab, "pricing").With(AxisApp, "a9")
	if _, _, ok := c.Detail(); ok {
		t.Fatal("tab and foreign axes must not count as a detail")
	}
	c.Selection = c.Selection.With(AxisSolution, "42")
	axis, id, ok := c.Detail()
	if !ok || axis != AxisSolution || id != "42" {
		t.Fatalf("Detail() = %v %q %v", axis, id, ok)
	}
	if got, want := c.String(), "solutions solution=42 app=a9 tab=pricing"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestOwnedAxesReturnsCopy(t *testing.T) {
	axes := OwnedAxes(SectionSolutions)
	axes[0] = AxisClient
	if OwnedAxes(SectionSolutions)[0] != AxisSolution {
		t.Fatal("OwnedAxes leaked its backing table")
	}
	if OwnedAxes(SectionHome) != nil {
		t.Fatal("home owns no axes")
	}
}
