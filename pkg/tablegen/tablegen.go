// Package tablegen renders a parsed ID database as C static table initializers.
package tablegen

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/harvester/idtablegen/pkg/idsdb"
)

//go:embed tables.tpl
var rawTemplate string

var tablesTemplate = template.Must(template.New("tables").Parse(rawTemplate))

type templateData struct {
	Prefix  string
	Vendors []*idsdb.Vendor
	Devices []idsdb.Device
}

// Render returns the vendor and device tables for db. Names are written as stored; all
// escaping happens while parsing.
func Render(prefix string, db *idsdb.Database) ([]byte, error) {
	var buf bytes.Buffer
	err := tablesTemplate.Execute(&buf, templateData{
		Prefix:  prefix,
		Vendors: db.Vendors(),
		Devices: db.Devices(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the tables and writes them to w in one call.
func Write(w io.Writer, prefix string, db *idsdb.Database) error {
	out, err := Render(prefix, db)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write %s tables: %w", prefix, err)
	}
	return nil
}
