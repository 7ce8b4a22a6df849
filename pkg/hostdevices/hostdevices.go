// Package hostdevices names the PCI devices of the local host from a parsed ID database.
package hostdevices

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/u-root/u-root/pkg/pci"

	"github.com/harvester/idtablegen/pkg/idsdb"
)

const unknownName = "Unknown"

// Description is a local PCI device with names resolved from the tables.
type Description struct {
	Address  string
	VendorID string
	DeviceID string
	Vendor   string
	Device   string
	// Known is true when both the vendor and the device are in the tables.
	Known bool
}

func (d Description) String() string {
	return fmt.Sprintf("%s %s:%s %s (%s)", d.Address, d.VendorID, d.DeviceID, d.Device, d.Vendor)
}

// List reads every PCI device on the host bus.
func List() ([]*pci.PCI, error) {
	busReader, err := pci.NewBusReader()
	if err != nil {
		return nil, fmt.Errorf("error creating pci bus reader: %w", err)
	}
	var devices []*pci.PCI
	devices, err = busReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading pci bus: %w", err)
	}
	return devices, nil
}

// Describe resolves vendor and device names for devs. Unresolved names read "Unknown".
func Describe(devs []*pci.PCI, db *idsdb.Database) []Description {
	descriptions := make([]Description, 0, len(devs))
	for _, dev := range devs {
		d := Description{
			Address:  dev.Addr,
			VendorID: fmt.Sprintf("%04x", dev.Vendor),
			DeviceID: fmt.Sprintf("%04x", dev.Device),
			Vendor:   unknownName,
			Device:   unknownName,
		}

		vendorName, vendorOK := db.LookupVendor(d.VendorID)
		if vendorOK {
			d.Vendor = vendorName
		}
		deviceName, deviceOK := db.LookupDevice(d.VendorID, d.DeviceID)
		if deviceOK {
			d.Device = deviceName
		}
		d.Known = vendorOK && deviceOK
		if !d.Known {
			logrus.Debugf("no table entry for %s %s:%s", d.Address, d.VendorID, d.DeviceID)
		}
		descriptions = append(descriptions, d)
	}
	return descriptions
}
