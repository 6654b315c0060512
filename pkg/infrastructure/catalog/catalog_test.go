package catalog

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

const sampleCatalog = `
upgrades:
  - name: ENERGY STAR heat pump with elec backup
  - name: ENERGY STAR heat pump with existing system as backup
    retain_existing_as_backup: true
  - name: Envelope only
    expect_load_change: false
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Failed to parse catalog: %v", err)
	}

	want := []entities.UpgradeProfile{
		{Name: "ENERGY STAR heat pump with elec backup", ExpectLoadChange: true},
		{Name: "ENERGY STAR heat pump with existing system as backup", RetainExistingAsBackup: true, ExpectLoadChange: true},
		{Name: "Envelope only"},
	}
	for _, w := range want {
		got, ok := c.Profile(w.Name)
		if !ok {
			t.Errorf("Expected catalog entry for %q", w.Name)
			continue
		}
		if diff := pretty.Diff(w, got); len(diff) > 0 {
			t.Errorf("Profile %q mismatch: %v", w.Name, diff)
		}
	}

	if names := c.Names(); len(names) != 3 || names[2] != "Envelope only" {
		t.Errorf("Expected catalog order to be kept, got %v", names)
	}
}

func TestProfile_Default(t *testing.T) {
	c := New()
	got, ok := c.Profile("Unlisted upgrade")
	if ok {
		t.Error("Expected no catalog entry")
	}
	if !got.ExpectLoadChange || got.RetainExistingAsBackup {
		t.Errorf("Expected default profile, got %+v", got)
	}

	var nilCatalog *Catalog
	if _, ok := nilCatalog.Profile("x"); ok {
		t.Error("Expected nil catalog to have no entries")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate", "upgrades:\n  - name: a\n  - name: a\n"},
		{"empty name", "upgrades:\n  - retain_existing_as_backup: true\n"},
		{"unknown field", "upgrades:\n  - name: a\n    retain: true\n"},
		{"not yaml", "upgrades: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Expected empty catalog to parse, got %v", err)
	}
	if len(c.Names()) != 0 {
		t.Errorf("Expected no entries, got %v", c.Names())
	}
}
