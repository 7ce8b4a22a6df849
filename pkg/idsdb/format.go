package idsdb

const (
	// DefaultIDLength is the width of every vendor and device ID kept in a table.
	DefaultIDLength = 4

	// PCIFileName and USBFileName are the database files the commands read from the
	// working directory.
	PCIFileName = "pci.ids"
	USBFileName = "usb.ids"
)

// Substitution replaces every literal occurrence of Old in a name with New.
type Substitution struct {
	Old string
	New string
}

// Format carries the quirks that differ between ID database flavours.
type Format struct {
	// Name is used in log messages and as the table symbol prefix.
	Name string
	// FileName is the conventional database file name.
	FileName string
	// IDLength is the exact length an ID must have to be kept.
	IDLength int
	// GroupMarkers are the top-level prefixes that open a non-device section.
	GroupMarkers []string
	// NameSubstitutions are applied to every name, in order.
	NameSubstitutions []Substitution
}

// commonSubstitutions must run first: the backslash rewrite has to happen before quotes
// are escaped with one.
var commonSubstitutions = []Substitution{
	{Old: `\`, New: "/"},
	{Old: `"`, New: `\"`},
}

// PCI describes pci.ids as published by the pciids project.
var PCI = Format{
	Name:         "pci",
	FileName:     PCIFileName,
	IDLength:     DefaultIDLength,
	GroupMarkers: []string{"C "},
	NameSubstitutions: append(append([]Substitution{}, commonSubstitutions...),
		Substitution{Old: "??", New: "Unknown"},
	),
}

// USB describes usb.ids as published by linux-usb.org.
var USB = Format{
	Name:     "usb",
	FileName: USBFileName,
	IDLength: DefaultIDLength,
	GroupMarkers: []string{
		"C ",    // device class
		"AT ",   // audio terminal type
		"HID ",  // HID descriptor type
		"R ",    // HID item type
		"BIAS ", // physical descriptor bias
		"PHY ",  // physical descriptor item
		"HUT ",  // HID usage page
		"L ",    // language
		"HCC ",  // HID country code
		"VT ",   // video class terminal type
	},
	NameSubstitutions: append(append([]Substitution{}, commonSubstitutions...),
		Substitution{Old: "???", New: "Unknown"},
		Substitution{Old: "??", New: "Unknown"},
	),
}

// FormatByName returns the built-in format registered under name.
func FormatByName(name string) (Format, bool) {
	switch name {
	case PCI.Name:
		return PCI, true
	case USB.Name:
		return USB, true
	}
	return Format{}, false
}
