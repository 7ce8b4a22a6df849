package idsdb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stats counts what a Parser did with the lines it was given. Vendors and Devices
// count kept lines, so a repeated vendor ID is counted each time.
type Stats struct {
	Lines            int
	Vendors          int
	Devices          int
	SubVendorLines   int
	GroupLines       int
	InvalidIDs       int
	MissingSeparator int
	OrphanDevices    int
}

// Skipped returns the number of content lines dropped as malformed.
func (s Stats) Skipped() int {
	return s.InvalidIDs + s.MissingSeparator + s.OrphanDevices
}

// Parser builds a Database one line at a time. The current vendor and the in-group flag
// are carried between lines, so a Parser must see the lines of one file in order.
type Parser struct {
	format  Format
	db      *Database
	vendor  *Vendor
	inGroup bool
	lineno  int
	stats   Stats
}

// NewParser returns a parser for the given database format.
func NewParser(format Format) *Parser {
	if format.IDLength <= 0 {
		format.IDLength = DefaultIDLength
	}
	return &Parser{
		format: format,
		db:     newDatabase(format.IDLength),
	}
}

// Stats returns the counters collected so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// ParseLine feeds a single raw line, without its newline, to the parser. The only error
// it returns is a *RangeError.
func (p *Parser) ParseLine(line string) error {
	p.lineno++
	p.stats.Lines++

	kind := p.classify(line)
	switch kind {
	case KindSkip:
		return nil
	case KindSubVendor:
		p.stats.SubVendorLines++
		return nil
	case KindGroupMarker, KindGroupChild:
		p.stats.GroupLines++
		return nil
	}

	id, name, err := SplitLine(trim(line))
	if err != nil {
		var rangeErr *RangeError
		if errors.As(err, &rangeErr) {
			rangeErr.Line = p.lineno
			return rangeErr
		}
		p.stats.MissingSeparator++
		logrus.Debugf("%s: line %d: skipping %s line %q: %v", p.format.Name, p.lineno, kind, line, err)
		return nil
	}

	if len(id) != p.format.IDLength {
		p.stats.InvalidIDs++
		logrus.Debugf("%s: line %d: skipping %s with malformed id %q", p.format.Name, p.lineno, kind, id)
		return nil
	}

	name = p.format.SanitizeName(name)
	if kind == KindVendor {
		p.vendor = p.db.setVendor(id, name)
		p.stats.Vendors++
		return nil
	}

	if p.vendor == nil {
		p.stats.OrphanDevices++
		logrus.Warnf("%s: line %d: device %s appears before any vendor, skipping", p.format.Name, p.lineno, id)
		return nil
	}
	p.vendor.Devices = append(p.vendor.Devices, Device{
		VendorID: p.vendor.ID,
		ID:       id,
		Name:     name,
	})
	p.stats.Devices++
	return nil
}

// Parse reads r to the end and feeds every line to the parser.
func (p *Parser) Parse(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s database: %w", p.format.Name, err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return p.db, nil
	}
	for _, line := range strings.Split(text, "\n") {
		if err := p.ParseLine(line); err != nil {
			return nil, err
		}
	}
	return p.db, nil
}

// SanitizeName applies the format's name substitutions in order.
func (f Format) SanitizeName(name string) string {
	for _, s := range f.NameSubstitutions {
		name = strings.ReplaceAll(name, s.Old, s.New)
	}
	return name
}

// LoadFile parses the format's database file from dir.
func LoadFile(format Format, dir string) (*Database, Stats, error) {
	path := filepath.Join(dir, format.FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	p := NewParser(format)
	db, err := p.Parse(f)
	if err != nil {
		return nil, p.Stats(), err
	}
	return db, p.Stats(), nil
}
