// Package idsdb parses PCI and USB ID databases into ordered vendor and device lists.
package idsdb

import "strings"

// A Vendor holds the name of a vendor and its devices in the order they were read.
type Vendor struct {
	ID      string
	Name    string
	Devices []Device
}

// String returns the name of the vendor.
func (v Vendor) String() string {
	return v.Name
}

// A Device is a single-tab entry owned by VendorID.
type Device struct {
	VendorID string
	ID       string
	Name     string
}

// String returns the name of the device.
func (d Device) String() string {
	return d.Name
}

// Database is the ordered vendor to devices mapping built by a Parser.
type Database struct {
	idLength int
	vendors  []*Vendor
	index    map[string]*Vendor
}

func newDatabase(idLength int) *Database {
	return &Database{
		idLength: idLength,
		index:    make(map[string]*Vendor),
	}
}

// setVendor records a vendor, renaming it in place if the ID was seen before.
func (d *Database) setVendor(id, name string) *Vendor {
	if v, ok := d.index[id]; ok {
		v.Name = name
		return v
	}
	v := &Vendor{ID: id, Name: name}
	d.vendors = append(d.vendors, v)
	d.index[id] = v
	return v
}

// Vendors returns the vendors in first-seen order.
func (d *Database) Vendors() []*Vendor {
	return d.vendors
}

// Devices returns every device, grouped by vendor in first-seen order.
func (d *Database) Devices() []Device {
	devices := make([]Device, 0, d.DeviceCount())
	for _, v := range d.vendors {
		devices = append(devices, v.Devices...)
	}
	return devices
}

// VendorCount returns the number of distinct vendors.
func (d *Database) VendorCount() int {
	return len(d.vendors)
}

// DeviceCount returns the number of devices across all vendors.
func (d *Database) DeviceCount() int {
	var n int
	for _, v := range d.vendors {
		n += len(v.Devices)
	}
	return n
}

// Vendor returns the vendor registered under id, after normalization.
func (d *Database) Vendor(id string) (*Vendor, bool) {
	v, ok := d.index[d.normalizeID(id)]
	return v, ok
}

// LookupVendor returns the vendor name for id. IDs may carry a 0x prefix and may be
// shorter than the table width.
func (d *Database) LookupVendor(id string) (string, bool) {
	v, ok := d.Vendor(id)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// LookupDevice returns the device name for a vendor/device pair. When the database
// lists the pair more than once the last entry wins.
func (d *Database) LookupDevice(vendorID, deviceID string) (string, bool) {
	v, ok := d.Vendor(vendorID)
	if !ok {
		return "", false
	}
	deviceID = d.normalizeID(deviceID)
	for i := len(v.Devices) - 1; i >= 0; i-- {
		if v.Devices[i].ID == deviceID {
			return v.Devices[i].Name, true
		}
	}
	return "", false
}

// normalizeID strips a 0x prefix, lower-cases and left pads id to the table width.
// Sysfs and udev report IDs in both styles.
func (d *Database) normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "0x")
	if pad := d.idLength - len(id); pad > 0 {
		id = strings.Repeat("0", pad) + id
	}
	return id
}
