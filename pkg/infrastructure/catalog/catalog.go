// Package catalog loads the upgrade catalog: the per-upgrade switches that
// decide how post-upgrade loads are credited.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

type upgradeEntry struct {
	Name                   string `yaml:"name"`
	RetainExistingAsBackup bool   `yaml:"retain_existing_as_backup"`
	ExpectLoadChange       *bool  `yaml:"expect_load_change"`
}

type catalogFile struct {
	Upgrades []upgradeEntry `yaml:"upgrades"`
}

// Catalog maps upgrade names to their profiles
type Catalog struct {
	profiles map[string]entities.UpgradeProfile
	names    []string
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{profiles: make(map[string]entities.UpgradeProfile)}
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening upgrade catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a catalog document. expect_load_change defaults to true.
func Parse(r io.Reader) (*Catalog, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing upgrade catalog YAML: %w", err)
	}

	c := New()
	for i, e := range doc.Upgrades {
		p := entities.DefaultUpgradeProfile(strings.TrimSpace(e.Name))
		p.RetainExistingAsBackup = e.RetainExistingAsBackup
		if e.ExpectLoadChange != nil {
			p.ExpectLoadChange = *e.ExpectLoadChange
		}
		if err := c.Add(p); err != nil {
			return nil, fmt.Errorf("upgrade catalog entry %d: %w", i+1, err)
		}
	}
	return c, nil
}

// Add registers a profile; names must be unique
func (c *Catalog) Add(p entities.UpgradeProfile) error {
	if p.Name == "" {
		return fmt.Errorf("upgrade name cannot be empty")
	}
	if _, exists := c.profiles[p.Name]; exists {
		return fmt.Errorf("duplicate upgrade: %q", p.Name)
	}
	c.profiles[p.Name] = p
	c.names = append(c.names, p.Name)
	return nil
}

// Profile returns the profile of an upgrade, or the default profile when the
// catalog has no entry for it
func (c *Catalog) Profile(name string) (entities.UpgradeProfile, bool) {
	if c != nil {
		if p, ok := c.profiles[strings.TrimSpace(name)]; ok {
			return p, true
		}
	}
	return entities.DefaultUpgradeProfile(name), false
}

// Names returns the upgrade names in catalog order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
