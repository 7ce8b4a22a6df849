package idsdb

import "strings"

// LineKind is the role of a raw database line.
type LineKind int

const (
	// KindSkip covers blank lines and comments.
	KindSkip LineKind = iota
	// KindSubVendor is a two-tab line (subsystem or interface detail).
	KindSubVendor
	// KindGroupMarker opens a class-like section.
	KindGroupMarker
	// KindGroupChild is a single-tab line inside a group section.
	KindGroupChild
	// KindDevice is a single-tab line owned by the current vendor.
	KindDevice
	// KindVendor is a non-indented line.
	KindVendor
)

var lineKindNames = map[LineKind]string{
	KindSkip:        "skip",
	KindSubVendor:   "subvendor",
	KindGroupMarker: "group marker",
	KindGroupChild:  "group child",
	KindDevice:      "device",
	KindVendor:      "vendor",
}

func (k LineKind) String() string {
	if s, ok := lineKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// trim strips the ASCII whitespace found around database lines, including CR.
func trim(line string) string {
	return strings.Trim(line, " \t\r\n\v\f")
}

// classify returns the kind of line and updates the in-group flag.
func (p *Parser) classify(line string) LineKind {
	trimmed := trim(line)
	switch {
	case trimmed == "", strings.HasPrefix(trimmed, "#"):
		return KindSkip
	case strings.HasPrefix(line, "\t\t"):
		return KindSubVendor
	case p.isGroupMarker(line):
		p.inGroup = true
		return KindGroupMarker
	case strings.HasPrefix(line, "\t"):
		if p.inGroup {
			return KindGroupChild
		}
		return KindDevice
	}

	p.inGroup = false
	return KindVendor
}

func (p *Parser) isGroupMarker(line string) bool {
	for _, marker := range p.format.GroupMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
