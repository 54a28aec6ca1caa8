package domain

// DeviceState represents the current state of a simulator
type DeviceState string

const (
	DeviceStateShutdown     DeviceState = "Shutdown"
	DeviceStateBooted       DeviceState = "Booted"
	DeviceStateBooting      DeviceState = "Booting"
	DeviceStateCreating     DeviceState = "Creating"
	DeviceStateShuttingDown DeviceState = "Shutting Down"
)

// DeviceType is a class of simulated hardware, e.g. an iPhone model
type DeviceType struct {
	ID   string `json:"id"`   // com.apple.CoreSimulator.SimDeviceType.iPhone-X
	Name string `json:"name"` // iPhone X
}

// Runtime is an installed OS image that can host simulator instances
type Runtime struct {
	Name       string `json:"name"` // iOS 10.3
	Identifier string `json:"identifier,omitempty"`
	Version    string `json:"version,omitempty"`
	Available  bool   `json:"available"`
}

// DeviceInstance is a provisioned simulator of a given device type
type DeviceInstance struct {
	Name  string      `json:"name"`
	UDID  string      `json:"udid"`
	State DeviceState `json:"state,omitempty"`
}

// IsBooted returns true if the device is currently booted
func (d *DeviceInstance) IsBooted() bool {
	return d.State == DeviceStateBooted
}

// DeviceGroup holds the instances provisioned under one runtime
type DeviceGroup struct {
	Runtime string           `json:"runtime"`
	Devices []DeviceInstance `json:"devices"`
}

// Catalog is one snapshot of what simctl knows about.
// It is read-only once built.
type Catalog struct {
	DeviceTypes []DeviceType  `json:"devicetypes"`
	Runtimes    []Runtime     `json:"runtimes"`
	Devices     []DeviceGroup `json:"devices"`
}

// FindDevice returns the instance with the given UDID and the runtime it lives under
func (c *Catalog) FindDevice(udid string) (*DeviceInstance, string, bool) {
	for gi := range c.Devices {
		group := &c.Devices[gi]
		for di := range group.Devices {
			if group.Devices[di].UDID == udid {
				return &group.Devices[di], group.Runtime, true
			}
		}
	}
	return nil, "", false
}

// ResolvedDevice is the single instance a device type identifier resolved to
type ResolvedDevice struct {
	Name    string `json:"name"`
	UDID    string `json:"udid"`
	Runtime string `json:"runtime"`
}
