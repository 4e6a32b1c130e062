package spiflash

import "fmt"

const (
	cmdWREN = 0x06
	cmdWRDI = 0x04

	cmdReadStatus1 = 0x05
	cmdReadStatus2 = 0x35
	cmdReadStatus3 = 0x15
)

// Status1 bit positions, per spec.md §4.3.
const (
	status1Busy = 1 << 0
	status1WEL  = 1 << 1
	status1BP0  = 1 << 2
	status1BP1  = 1 << 3
	status1BP2  = 1 << 4
	status1TP   = 1 << 5
	status1SEC  = 1 << 6
	status1SRP0 = 1 << 7
)

// readStatus reads one of the three one-byte status registers
// (n = 1, 2 or 3) and returns its value.
func (d *Device) readStatus(n int) (byte, error) {
	var opcode byte
	switch n {
	case 1:
		opcode = cmdReadStatus1
	case 2:
		opcode = cmdReadStatus2
	case 3:
		opcode = cmdReadStatus3
	default:
		return 0, fmt.Errorf("spiflash: invalid status register %d", n)
	}
	tx := []byte{opcode, 0x00}
	rx := make([]byte, 2)
	if err := d.xferWindow(tx, rx, commandTimeout); err != nil {
		return 0, err
	}
	return rx[1], nil
}

// writeEnable issues WREN (0x06), setting the write-enable latch.
func (d *Device) writeEnable() error {
	return d.xferWindow([]byte{cmdWREN}, make([]byte, 1), commandTimeout)
}

// writeDisable issues WRDI (0x04), clearing the write-enable latch.
// Per spec.md §4.5 and §4.7 this is issued best-effort on the way out of
// every write/erase path; its failures are never surfaced to the
// caller.
func (d *Device) writeDisable() {
	_ = d.xferWindow([]byte{cmdWRDI}, make([]byte, 1), commandTimeout)
}
