package resolve

import "github.com/vburojevic/iossim/internal/domain"

// Choice is one usable --devicetypeid value
type Choice struct {
	Identifier   string // "iPhone-6, 8.2"
	DeviceTypeID string
	Name         string
	Runtime      string
}

// Choices lists every (device type, available runtime) pair that has an
// instance in cat, grouped by device name in catalog order. Devices whose name
// matches no device type are skipped. When several device types share a name
// the last one listed wins.
func Choices(cat *domain.Catalog, osName string) []Choice {
	if cat == nil {
		return nil
	}

	idByName := make(map[string]string, len(cat.DeviceTypes))
	for _, dt := range cat.DeviceTypes {
		idByName[dt.Name] = dt.ID
	}

	groups := GroupRuntimes(cat, ByName, true)
	var out []Choice
	for _, name := range groups.Keys() {
		id, ok := idByName[name]
		if !ok {
			continue
		}
		runtimes, _ := groups.Runtimes(name)
		for _, rt := range runtimes {
			out = append(out, Choice{
				Identifier:   FormatIdentifier(id, rt, osName),
				DeviceTypeID: id,
				Name:         name,
				Runtime:      rt,
			})
		}
	}
	return out
}
