package spiflash

import "time"

// EraseChip erases the entire device. Its timeout scales with capacity
// (block_count * 1 s, roughly 1 s per 64 KiB) per spec.md §4.7 — a
// conservative bound since real parts vary widely in erase time.
func (d *Device) EraseChip() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	timeout := time.Duration(d.blockCount) * chipEraseUnit
	return d.eraseSequence([]byte{cmdChipErase}, timeout)
}

// EraseBlock erases the 64 KiB block at the given index.
func (d *Device) EraseBlock(block int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if block < 0 || block >= d.blockCount {
		return ErrInvalidAddress
	}
	addr := uint32(block) * blockSize
	tx := append([]byte{d.opcodes().blockErase}, d.addressBytes(addr)...)
	return d.eraseSequence(tx, blockEraseTimeout)
}

// EraseSector erases the 4 KiB sector at the given index.
func (d *Device) EraseSector(sector int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if sector < 0 || sector >= d.sectorCount {
		return ErrInvalidAddress
	}
	addr := uint32(sector) * sectorSize
	tx := append([]byte{d.opcodes().sectorErase}, d.addressBytes(addr)...)
	return d.eraseSequence(tx, sectorEraseTimeout)
}

// eraseSequence runs the common WREN -> opcode(+address) -> busy-wait ->
// WRDI skeleton shared by chip, block and sector erase.
func (d *Device) eraseSequence(tx []byte, timeout time.Duration) error {
	if err := d.writeEnable(); err != nil {
		return err
	}
	rx := make([]byte, len(tx))
	if err := d.xferWindow(tx, rx, commandTimeout); err != nil {
		d.writeDisable()
		return err
	}
	if err := d.waitBusy(timeout); err != nil {
		d.writeDisable()
		return err
	}
	d.writeDisable()
	return nil
}
