package spiflash

// opcodes is a table-driven dispatch on address width, per the design
// note in spec.md §9: the 3-vs-4-byte choice is data, not a subclass.
// Program, read, sector-erase and block-erase all key off the same
// table; chip erase has no address phase and needs no entry here.
type opcodeSet struct {
	program     byte
	read        byte
	sectorErase byte
	blockErase  byte
}

var opcodesByWidth = map[bool]opcodeSet{
	false: {program: 0x02, read: 0x03, sectorErase: 0x20, blockErase: 0xD8}, // 3-byte addressing
	true:  {program: 0x12, read: 0x13, sectorErase: 0x21, blockErase: 0xDC}, // 4-byte addressing
}

const cmdChipErase = 0x60

func (d *Device) opcodes() opcodeSet {
	return opcodesByWidth[d.addrIs4Byte]
}

// addressBytes renders addr MSB-first as either a 3- or 4-byte frame,
// matching the device's selected address width.
func (d *Device) addressBytes(addr uint32) []byte {
	if d.addrIs4Byte {
		return []byte{byte(addr >> 24), byte(addr >> 16), byte(addr >> 8), byte(addr)}
	}
	return []byte{byte(addr >> 16), byte(addr >> 8), byte(addr)}
}
