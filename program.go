package spiflash

import "fmt"

// programInPage programs up to one physical page. page must be a valid
// page index, offset the byte offset within that page (0..255). data
// longer than 256-offset is silently truncated per spec.md §4.5 — this
// is a contract callers rely on, not a bug.
//
// This is the only primitive in the driver that issues PROGRAM: every
// byte-addressed write, whether through WriteAddress or the page/sector
// /block convenience entry points, bottoms out here so that no program
// command can ever straddle a physical page boundary.
func (d *Device) programInPage(page int, data []byte, offset int) error {
	if page < 0 || page >= d.pageCount || offset < 0 || offset >= pageSize {
		return ErrInvalidAddress
	}
	if max := pageSize - offset; len(data) > max {
		data = data[:max]
	}
	if len(data) == 0 {
		return nil
	}

	if err := d.writeEnable(); err != nil {
		return fmt.Errorf("%w: wren: %v", ErrIO, err)
	}

	addr := uint32(page)*pageSize + uint32(offset)
	opcode := d.opcodes().program
	tx := make([]byte, 0, 1+4+len(data))
	tx = append(tx, opcode)
	tx = append(tx, d.addressBytes(addr)...)
	tx = append(tx, data...)
	rx := make([]byte, len(tx))
	if err := d.xferWindow(tx, rx, commandTimeout); err != nil {
		d.writeDisable()
		return err
	}

	if err := d.waitBusy(programTimeout); err != nil {
		d.writeDisable()
		return err
	}
	d.writeDisable()
	return nil
}
