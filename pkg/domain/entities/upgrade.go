package entities

// UpgradeProfile describes how an upgrade package changes a dwelling's loads
type UpgradeProfile struct {
	Name string
	// RetainExistingAsBackup keeps replaced HVAC equipment installed as backup
	RetainExistingAsBackup bool
	// ExpectLoadChange marks upgrades that must change at least one load item
	// wherever they apply
	ExpectLoadChange bool
}

// DefaultUpgradeProfile is used for upgrades with no catalog entry
func DefaultUpgradeProfile(name string) UpgradeProfile {
	return UpgradeProfile{Name: name, ExpectLoadChange: true}
}
