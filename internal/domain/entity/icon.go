package entity

// Icon identifies a service icon. The set is closed; anything else falls
// back to IconCode when rendered.
type Icon string

const (
	IconCode       Icon = "Code"
	IconDatabase   Icon = "Database"
	IconPalette    Icon = "Palette"
	IconZap        Icon = "Zap"
	IconGlobe      Icon = "Globe"
	IconSmartphone Icon = "Smartphone"
)

func Icons() []Icon {
	return []Icon{IconCode, IconDatabase, IconPalette, IconZap, IconGlobe, IconSmartphone}
}

func (i Icon) Valid() bool {
	switch i {
	case IconCode, IconDatabase, IconPalette, IconZap, IconGlobe, IconSmartphone:
		return true
	default:
		return false
	}
}

// OrDefault maps unknown identifiers to IconCode.
func (i Icon) OrDefault() Icon {
	if i.Valid() {
		return i
	}
	return IconCode
}
