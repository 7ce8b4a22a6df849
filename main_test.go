package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/harvester/idtablegen/pkg/config"
	"github.com/harvester/idtablegen/pkg/idsdb"
)

const testPCIIDs = `# pci.ids fixture
0001  Vendor One
	0002  Device A
		0001 0002  Subsystem
8086  Intel Corporation
	1521  I350 Gigabit Network Connection
C 02  Network controller
	00  Ethernet controller
`

const expectedPCIOutput = `static const struct pciVendorTblData {
    const char* const vendorid;
    const char* const vendorname;
} pciVendorTbl[] = {
    { "0001", "Vendor One" },
    { "8086", "Intel Corporation" },
};
static const size_t pciVendorTblSize = sizeof(pciVendorTbl) / sizeof(pciVendorTblData);

static const struct pciDeviceTblData {
    const char* const vendorid;
    const char* const deviceid;
    const char* const devicename;
} pciDeviceTbl[] = {
    { "0001", "0002", "Device A" },
    { "8086", "1521", "I350 Gigabit Network Connection" },
};
static const size_t pciDeviceTblSize = sizeof(pciDeviceTbl) / sizeof(pciDeviceTblData);
`

const testUSBIDs = `0bda  Realtek Semiconductor Corp.
	0129  RTS5129 Card Reader Controller
	0138  RTS5138 Card Reader "Controller"
C 08  Mass Storage
	06  SCSI
HID 21  HID
`

var _ = Describe("idtablegen commands", func() {
	var (
		cfg    *config.Config
		stdout *bytes.Buffer
	)

	writeIDs := func(name, contents string) {
		Expect(os.WriteFile(filepath.Join(cfg.Dir, name), []byte(contents), 0o644)).To(Succeed())
	}

	run := func(args ...string) error {
		return newApp(cfg).Run(append([]string{appName}, args...))
	}

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "idtablegen")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		stdout = &bytes.Buffer{}
		cfg = &config.Config{
			Dir:    dir,
			Stdout: stdout,
			Stderr: GinkgoWriter,
		}
		cfg.SetupLogging()
	})

	Context("pci", func() {
		It("prints the vendor and device tables", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs)
			Expect(run("pci")).To(Succeed())
			Expect(stdout.String()).To(Equal(expectedPCIOutput))
		})

		It("prints byte-identical output on every run", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs)
			Expect(run("pci")).To(Succeed())
			first := stdout.String()

			stdout.Reset()
			Expect(run("pci")).To(Succeed())
			Expect(stdout.String()).To(Equal(first))
		})

		It("fails with the range status and prints nothing on an ID range", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs+"00 1  Bad\n")
			err := run("pci")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("ranges are not supported: 00 1"))
			Expect(exitCode(err)).To(Equal(exitRangeNotSupported))
			Expect(stdout.Len()).To(BeZero())
		})

		It("fails with the generic status when pci.ids is missing", func() {
			err := run("pci")
			Expect(err).To(HaveOccurred())
			Expect(exitCode(err)).To(Equal(exitFailure))
		})
	})

	Context("usb", func() {
		It("uses the usb prefix and skips group sections", func() {
			writeIDs(idsdb.USBFileName, testUSBIDs)
			Expect(run("usb")).To(Succeed())

			out := stdout.String()
			Expect(out).To(ContainSubstring(`} usbVendorTbl[] = {` + "\n" + `    { "0bda", "Realtek Semiconductor Corp." },` + "\n};"))
			Expect(out).To(ContainSubstring(`    { "0bda", "0138", "RTS5138 Card Reader \"Controller\"" },`))
			Expect(out).NotTo(ContainSubstring("SCSI"))
			Expect(out).NotTo(ContainSubstring("HID"))
			Expect(out).To(HaveSuffix("static const size_t usbDeviceTblSize = sizeof(usbDeviceTbl) / sizeof(usbDeviceTblData);\n"))
		})

		It("does not read pci.ids", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs)
			Expect(run("usb")).NotTo(Succeed())
		})
	})

	Context("check", func() {
		It("agrees with pcidb on a well-formed database", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs)
			Expect(run("check")).To(Succeed())
			Expect(stdout.Len()).To(BeZero())
		})

		It("reports vendors with IDs the tables drop", func() {
			writeIDs(idsdb.PCIFileName, testPCIIDs+"12345  Five digit vendor\n")
			err := run("check")
			Expect(err).To(HaveOccurred())
			Expect(exitCode(err)).To(Equal(exitFailure))
		})

		It("returns an error when pcidb cannot parse a row the tables skip", func() {
			writeIDs(idsdb.PCIFileName, "0001  Vendor One\n\t0004\n")
			Expect(run("pci")).To(Succeed())

			err := run("check")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("malformed row"))
			Expect(exitCode(err)).To(Equal(exitFailure))
		})
	})

	Context("format commands", func() {
		It("registers a command for every built-in format", func() {
			names := map[string]bool{}
			for _, c := range newApp(cfg).Commands {
				names[c.Name] = true
			}
			for _, name := range formatNames {
				_, ok := idsdb.FormatByName(name)
				Expect(ok).To(BeTrue())
				Expect(names).To(HaveKey(name))
			}
		})
	})
})
