package spiflash

import "fmt"

// Manufacturer identifies the JEDEC vendor byte returned by the JEDEC ID
// command (0x9F). Values are reproduced from original_source/SPIFlash.h's
// manufacturer #define block.
type Manufacturer byte

const (
	ManufacturerUnknown    Manufacturer = 0x00
	ManufacturerFujitsu    Manufacturer = 0x04
	ManufacturerFudan      Manufacturer = 0xA1
	ManufacturerEon        Manufacturer = 0x1C
	ManufacturerAtmel      Manufacturer = 0x1F
	ManufacturerSpansion   Manufacturer = 0x01
	ManufacturerGigaDevice Manufacturer = 0xC8
	ManufacturerWinbond    Manufacturer = 0xEF
	ManufacturerMacronix   Manufacturer = 0xC2
	ManufacturerAmic       Manufacturer = 0x37
	ManufacturerSst        Manufacturer = 0xBF
	ManufacturerHyundai    Manufacturer = 0xAD
	ManufacturerEsmt       Manufacturer = 0x8C
	ManufacturerIntel      Manufacturer = 0x89
	ManufacturerSanyo      Manufacturer = 0x62
	ManufacturerIssi       Manufacturer = 0xD5
	ManufacturerMicron     Manufacturer = 0x20
	ManufacturerPuya       Manufacturer = 0x85
)

var manufacturerNames = map[Manufacturer]string{
	ManufacturerFujitsu:    "Fujitsu",
	ManufacturerFudan:      "Fudan",
	ManufacturerEon:        "EON",
	ManufacturerAtmel:      "Atmel",
	ManufacturerSpansion:   "Spansion",
	ManufacturerGigaDevice: "GigaDevice",
	ManufacturerWinbond:    "Winbond",
	ManufacturerMacronix:   "Macronix",
	ManufacturerAmic:       "AMIC",
	ManufacturerSst:        "SST",
	ManufacturerHyundai:    "Hyundai",
	ManufacturerEsmt:       "ESMT",
	ManufacturerIntel:      "Intel",
	ManufacturerSanyo:      "Sanyo",
	ManufacturerIssi:       "ISSI",
	ManufacturerMicron:     "Micron",
	ManufacturerPuya:       "Puya",
}

func (m Manufacturer) String() string {
	if name, ok := manufacturerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%#02x)", byte(m))
}

func lookupManufacturer(id byte) (Manufacturer, bool) {
	m := Manufacturer(id)
	_, known := manufacturerNames[m]
	return m, known
}

// blockCountForCapacityCode derives block_count from the JEDEC capacity
// code per spec.md §3's DATA MODEL table, block_count = 2^(capacity_code
// - 0x10): 0x11..0x19 map to 1..256 Mbit. 0x20 is the 512 Mbit part,
// special-cased because it sits 7 codes above 0x19 and would otherwise
// break the contiguous exponent.
func blockCountForCapacityCode(code byte) (blocks int, ok bool) {
	switch {
	case code >= 0x11 && code <= 0x19:
		return 1 << (code - 0x10), true
	case code == 0x20:
		return 1024, true
	default:
		return 0, false
	}
}

const (
	pageSize   = 256
	sectorSize = 4096
	blockSize  = 65536

	pagesPerSector  = sectorSize / pageSize
	sectorsPerBlock = blockSize / sectorSize
	pagesPerBlock   = blockSize / pageSize

	fourByteAddrThreshold = 512 // blocks; >= this many blocks selects 4-byte addressing
)

// jedecID issues the JEDEC ID command (0x9F) in a single CS window and
// returns the three identity bytes: manufacturer, memory type, capacity
// code.
func (d *Device) jedecID() (manufacturer, memType, capacityCode byte, err error) {
	tx := []byte{0x9F, 0xFF, 0xFF, 0xFF}
	rx := make([]byte, len(tx))
	if err := d.xferWindow(tx, rx, commandTimeout); err != nil {
		return 0, 0, 0, err
	}
	return rx[1], rx[2], rx[3], nil
}

// probe performs the identification handshake described in spec.md §4.2
// and derives the device geometry. It is called only from Init, which
// runs it again after a failed probe and never after a successful one.
func (d *Device) probe() error {
	mfr, memType, capCode, err := d.jedecID()
	if err != nil {
		return fmt.Errorf("spiflash: jedec id transfer failed: %w", err)
	}
	manufacturer, known := lookupManufacturer(mfr)
	if !known {
		return fmt.Errorf("%w: %#02x", ErrUnknownVendor, mfr)
	}
	blocks, ok := blockCountForCapacityCode(capCode)
	if !ok {
		return fmt.Errorf("%w: %#02x", ErrUnsupportedSize, capCode)
	}
	d.manufacturer = manufacturer
	d.memType = memType
	d.capacityCode = capCode
	d.blockCount = blocks
	d.sectorCount = blocks * sectorsPerBlock
	d.pageCount = blocks * pagesPerBlock
	d.addrIs4Byte = blocks >= fourByteAddrThreshold
	return nil
}
