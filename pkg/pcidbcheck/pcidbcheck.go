// Package pcidbcheck compares a parsed PCI database against the one built by
// github.com/jaypipes/pcidb from the same pci.ids file.
package pcidbcheck

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jaypipes/pcidb"
	"github.com/sirupsen/logrus"

	"github.com/harvester/idtablegen/pkg/idsdb"
)

// MismatchKind classifies a disagreement between the tables and pcidb.
type MismatchKind int

const (
	// MissingFromTables is a vendor pcidb knows about that the tables drop.
	MissingFromTables MismatchKind = iota
	// MissingFromReference is a vendor only the tables contain.
	MissingFromReference
	// DeviceCountDiffers is a vendor present on both sides with a different device count.
	DeviceCountDiffers
)

func (k MismatchKind) String() string {
	switch k {
	case MissingFromTables:
		return "missing from tables"
	case MissingFromReference:
		return "missing from pcidb"
	case DeviceCountDiffers:
		return "device count differs"
	}
	return "unknown"
}

// Mismatch describes one disagreement for a vendor.
type Mismatch struct {
	VendorID string
	Kind     MismatchKind
	// Tables and Reference hold the device counts on each side.
	Tables    int
	Reference int
}

func (m Mismatch) String() string {
	if m.Kind == DeviceCountDiffers {
		return fmt.Sprintf("vendor %s: %s (tables %d, pcidb %d)", m.VendorID, m.Kind, m.Tables, m.Reference)
	}
	return fmt.Sprintf("vendor %s: %s", m.VendorID, m.Kind)
}

// LoadReference parses pci.ids from dir with pcidb. Network fetching stays disabled.
func LoadReference(dir string) (*pcidb.PCIDB, error) {
	path, err := filepath.Abs(filepath.Join(dir, idsdb.PCIFileName))
	if err != nil {
		return nil, err
	}
	db, err := loadPCIDB(path)
	if err != nil {
		return nil, fmt.Errorf("error loading %s with pcidb: %w", path, err)
	}
	return db, nil
}

// loadPCIDB turns a pcidb panic into an error. pcidb slices rows at fixed offsets
// and panics on rows shorter than it expects, such as a device ID with no name.
func loadPCIDB(path string) (db *pcidb.PCIDB, err error) {
	defer func() {
		if r := recover(); r != nil {
			db = nil
			err = fmt.Errorf("malformed row: %v", r)
		}
	}()
	return pcidb.New(pcidb.WithDirectPath(path))
}

// productCounts counts the products pcidb parsed for each vendor. Vendor.Products is
// only filled once the following vendor line is read, so the last vendor of a file
// always has none there; PCIDB.Products holds every product.
func productCounts(ref *pcidb.PCIDB) map[string]int {
	counts := make(map[string]int, len(ref.Vendors))
	for _, p := range ref.Products {
		counts[p.VendorID]++
	}
	return counts
}

// Compare reports every vendor on which db and ref disagree, ordered by vendor ID.
func Compare(db *idsdb.Database, ref *pcidb.PCIDB) []Mismatch {
	var mismatches []Mismatch
	counts := productCounts(ref)

	for _, v := range db.Vendors() {
		if _, ok := ref.Vendors[v.ID]; !ok {
			mismatches = append(mismatches, Mismatch{
				VendorID: v.ID,
				Kind:     MissingFromReference,
				Tables:   len(v.Devices),
			})
			continue
		}
		if len(v.Devices) != counts[v.ID] {
			mismatches = append(mismatches, Mismatch{
				VendorID:  v.ID,
				Kind:      DeviceCountDiffers,
				Tables:    len(v.Devices),
				Reference: counts[v.ID],
			})
		}
	}

	for id := range ref.Vendors {
		if _, ok := db.Vendor(id); ok {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			VendorID:  id,
			Kind:      MissingFromTables,
			Reference: counts[id],
		})
	}

	sort.Slice(mismatches, func(i, j int) bool {
		if mismatches[i].VendorID != mismatches[j].VendorID {
			return mismatches[i].VendorID < mismatches[j].VendorID
		}
		return mismatches[i].Kind < mismatches[j].Kind
	})

	logrus.Debugf("compared %d vendors against %d pcidb vendors, %d mismatches", db.VendorCount(), len(ref.Vendors), len(mismatches))
	return mismatches
}
