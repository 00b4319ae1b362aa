package diagram

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/ringlet/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	orig := Default()

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(orig, got) {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", got, orig)
	}
}

func TestCrossLinkWireFormat(t *testing.T) {
	data, err := json.Marshal(CrossLink{Outer: "Formats", Inner: "Data"})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != `["Formats","Data"]` {
		t.Errorf("cross-link JSON = %s, want 2-element array", data)
	}

	var l CrossLink
	if err := json.Unmarshal([]byte(`["Protocols","Objects"]`), &l); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if l.Outer != "Protocols" || l.Inner != "Objects" {
		t.Errorf("decoded = %+v", l)
	}

	if err := json.Unmarshal([]byte(`{"outer":"A"}`), &l); err == nil {
		t.Error("object form should be rejected")
	}
}

func TestUnmarshalMissingRequiredField(t *testing.T) {
	required := []string{
		"inner_nodes", "inner_labels", "inner_edges",
		"outer_nodes", "outer_labels", "outer_edges",
	}

	full, err := Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			var m map[string]json.RawMessage
			if err := json.Unmarshal(full, &m); err != nil {
				t.Fatal(err)
			}
			delete(m, field)
			data, err := json.Marshal(m)
			if err != nil {
				t.Fatal(err)
			}

			_, err = Unmarshal(data)
			if err == nil {
				t.Fatalf("Unmarshal without %q should fail", field)
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("error code = %v, want PARSE_ERROR", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), field) {
				t.Errorf("error %q should name the missing field", err)
			}
		})
	}
}

func TestUnmarshalOptionalDefaults(t *testing.T) {
	minimal := `{
		"inner_nodes": ["A", "B", "C"],
		"inner_labels": {},
		"inner_edges": [],
		"outer_nodes": ["X", "Y", "Z"],
		"outer_labels": {},
		"outer_edges": []
	}`

	cfg, err := Unmarshal([]byte(minimal))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.CrossLinks == nil || len(cfg.CrossLinks) != 0 {
		t.Errorf("CrossLinks = %v, want empty non-nil slice", cfg.CrossLinks)
	}
	if !cfg.ShowCrossLinks {
		t.Error("ShowCrossLinks should default to true")
	}
	if !cfg.LockPositions {
		t.Error("LockPositions should default to true")
	}
	if cfg.Physics {
		t.Error("Physics should default to false")
	}
	if cfg.InnerRadius != DefaultInnerRadius {
		t.Errorf("InnerRadius = %d, want %d", cfg.InnerRadius, DefaultInnerRadius)
	}
	if cfg.OuterRadius != DefaultOuterRadius {
		t.Errorf("OuterRadius = %d, want %d", cfg.OuterRadius, DefaultOuterRadius)
	}
	if cfg.StartAngleDeg != DefaultStartAngleDeg {
		t.Errorf("StartAngleDeg = %d, want %d", cfg.StartAngleDeg, DefaultStartAngleDeg)
	}
}

func TestUnmarshalExplicitFalseSurvives(t *testing.T) {
	// Explicit false must not be confused with absence.
	cfg := Default()
	cfg.ShowCrossLinks = false
	cfg.LockPositions = false

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	if got.ShowCrossLinks {
		t.Error("explicit show_cross_links=false was reset to true")
	}
	if got.LockPositions {
		t.Error("explicit lock_positions=false was reset to true")
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{not json`))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("malformed JSON: code = %v, want PARSE_ERROR", errors.GetCode(err))
	}
}

func TestReadWrite(t *testing.T) {
	var buf strings.Builder
	if err := Write(Default(), &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Error("Write/Read round trip changed the config")
	}
}
