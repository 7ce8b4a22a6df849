package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/harvester/idtablegen/pkg/config"
	"github.com/harvester/idtablegen/pkg/hostdevices"
	"github.com/harvester/idtablegen/pkg/idsdb"
	"github.com/harvester/idtablegen/pkg/pcidbcheck"
	"github.com/harvester/idtablegen/pkg/tablegen"
)

const (
	VERSION = "v0.1.0"
	appName = "idtablegen"

	exitFailure = 1
	// exitRangeNotSupported is returned when a database ID holds whitespace.
	exitRangeNotSupported = 123
)

// formatNames lists the databases that get a table generation command.
var formatNames = []string{idsdb.PCI.Name, idsdb.USB.Name}

func main() {
	cfg := config.NewConfig()
	cfg.SetupLogging()

	if err := newApp(cfg).Run(os.Args); err != nil {
		logrus.Error(err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var rangeErr *idsdb.RangeError
	if errors.As(err, &rangeErr) {
		return exitRangeNotSupported
	}
	return exitFailure
}

func newApp(cfg *config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = VERSION
	app.Usage = "Generate C static lookup tables from the PCI and USB ID databases in the current directory."
	app.Writer = cfg.Stdout
	app.ErrWriter = cfg.Stderr
	for _, name := range formatNames {
		app.Commands = append(app.Commands, generateCommand(cfg, name))
	}
	app.Commands = append(app.Commands, []*cli.Command{
		{
			Name:  "check",
			Usage: "compare ./" + idsdb.PCIFileName + " as parsed here with the pcidb parse of the same file",
			Action: func(c *cli.Context) error {
				return check(cfg)
			},
		},
		{
			Name:  "host",
			Usage: "list the PCI devices of this host with names from ./" + idsdb.PCIFileName,
			Action: func(c *cli.Context) error {
				return host(cfg)
			},
		},
	}...)
	return app
}

func generateCommand(cfg *config.Config, name string) *cli.Command {
	format, ok := idsdb.FormatByName(name)
	if !ok {
		logrus.Fatalf("no built-in format named %q", name)
	}
	return &cli.Command{
		Name:  format.Name,
		Usage: "print vendor and device tables for ./" + format.FileName,
		Action: func(c *cli.Context) error {
			return generate(cfg, format)
		},
	}
}

func load(cfg *config.Config, format idsdb.Format) (*idsdb.Database, error) {
	db, stats, err := idsdb.LoadFile(format, cfg.Dir)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Loaded %d %s vendor IDs", db.VendorCount(), format.Name)
	logrus.Infof("Loaded %d %s device IDs", db.DeviceCount(), format.Name)
	if skipped := stats.Skipped(); skipped > 0 {
		logrus.Infof("Skipped %d malformed %s lines (%d bad ids, %d without separator, %d devices before a vendor)",
			skipped, format.Name, stats.InvalidIDs, stats.MissingSeparator, stats.OrphanDevices)
	}
	return db, nil
}

func generate(cfg *config.Config, format idsdb.Format) error {
	db, err := load(cfg, format)
	if err != nil {
		return err
	}
	return tablegen.Write(cfg.Stdout, format.Name, db)
}

func check(cfg *config.Config) error {
	db, err := load(cfg, idsdb.PCI)
	if err != nil {
		return err
	}
	ref, err := pcidbcheck.LoadReference(cfg.Dir)
	if err != nil {
		return err
	}

	mismatches := pcidbcheck.Compare(db, ref)
	for _, m := range mismatches {
		logrus.Warn(m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d vendors differ from pcidb", len(mismatches))
	}
	logrus.Infof("All %d vendors agree with pcidb", db.VendorCount())
	return nil
}

func host(cfg *config.Config) error {
	db, err := load(cfg, idsdb.PCI)
	if err != nil {
		return err
	}
	devices, err := hostdevices.List()
	if err != nil {
		return err
	}

	for _, d := range hostdevices.Describe(devices, db) {
		if _, err := fmt.Fprintln(cfg.Stdout, d); err != nil {
			return err
		}
	}
	return nil
}
