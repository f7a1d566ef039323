package diag

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestCollector(t *testing.T) {
	var c Collector
	data := map[string]string{"part1": "bridge", "part2": "shape"}
	c.Add(Error, TermConnectionMissing, data)
	c.Add(Info, TermUnassignedCircle, map[string]string{"part": "pad"})
	data["part1"] = "changed"

	want := []Warning{
		{Term: TermConnectionMissing, Severity: Error, Data: map[string]string{"part1": "bridge", "part2": "shape"}},
		{Term: TermUnassignedCircle, Severity: Info, Data: map[string]string{"part": "pad"}},
	}
	if diff := cmp.Diff(want, c.Warnings()); diff != "" {
		t.Errorf("Warnings() mismatch (-want +got):\n%s", diff)
	}
	if !c.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d", c.Len())
	}

	var merged Collector
	merged.Add(Info, TermArcConnection, nil)
	merged.Merge(c.Warnings())
	if merged.Len() != 3 || merged.Warnings()[1].Term != TermConnectionMissing {
		t.Errorf("Merge() = %v, want the arc note followed by both warnings", merged.Warnings())
	}
	var infos Collector
	infos.Add(Info, TermUnassignedCircle, nil)
	if infos.HasErrors() {
		t.Error("HasErrors() = true without error warnings")
	}
}

func TestCollectorWarningsIsACopy(t *testing.T) {
	var c Collector
	c.Add(Warn, TermMalformedPath, nil)
	got := c.Warnings()
	got[0].Term = "x"
	if c.Warnings()[0].Term != TermMalformedPath {
		t.Error("Warnings() exposes internal storage")
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.Add(Error, TermPartsMissing, nil)
	c.Merge([]Warning{{Term: TermNoGeometry}})
	if c.Len() != 0 || c.Warnings() != nil || c.HasErrors() {
		t.Error("nil collector should discard warnings")
	}
}

func TestWarningJSON(t *testing.T) {
	w := Warning{Term: TermPartsMissing, Severity: Error}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"term":"frameupload.dxfwarning.partsMissing","severity":"error"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got Warning
	if err := json.Unmarshal([]byte(`{"term":"t","severity":"warning"}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.Severity != Warn {
		t.Errorf("Severity = %v, want warning", got.Severity)
	}
	if err := json.Unmarshal([]byte(`{"severity":"fatal"}`), &got); err == nil {
		t.Error("unknown severity accepted")
	}
}

func TestLocalize(t *testing.T) {
	w := Warning{
		Term:     TermConnectionMissing,
		Severity: Error,
		Data:     map[string]string{"part1": "bridge", "part2": "shape"},
	}
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.English, "No shared edge found between bridge and shape."},
		{language.German, "Keine gemeinsame Kante zwischen bridge und shape gefunden."},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			if got := Localize(w, tt.tag); got != tt.want {
				t.Errorf("Localize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalizeUnknownTerm(t *testing.T) {
	w := Warning{Term: "something.else"}
	if got := Localize(w, language.English); got != "something.else" {
		t.Errorf("Localize() = %q", got)
	}
}

func TestEveryTermHasMessages(t *testing.T) {
	terms := []string{
		TermPartsMissing, TermConnectionMissing, TermReconnectFailed, TermUnassignedCircle,
		TermMalformedPath, TermNoGeometry, TermArcConnection, TermInvalidColor,
	}
	for _, term := range terms {
		e, ok := entries[term]
		if !ok || e.en == "" || e.de == "" {
			t.Errorf("term %s lacks a message", term)
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		prefs []string
		want  language.Tag
	}{
		{[]string{"de-CH"}, language.German},
		{[]string{"en-GB", "de"}, language.English},
		{[]string{"fr"}, language.English},
		{nil, language.English},
	}
	for _, tt := range tests {
		if got := MatchLanguage(tt.prefs...); got != tt.want {
			t.Errorf("MatchLanguage(%v) = %v, want %v", tt.prefs, got, tt.want)
		}
	}
}
