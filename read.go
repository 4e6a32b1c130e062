package spiflash

// ReadAddress streams len(buf) bytes starting at address into buf in a
// single SPI transaction. No busy-wait precedes the read: NOR accepts
// reads while not mid-program, and the serializer ensures no write or
// erase on this handle overlaps with it.
func (d *Device) ReadAddress(address uint32, buf []byte) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if uint64(address)+uint64(len(buf)) > uint64(d.Capacity()) {
		return ErrInvalidAddress
	}
	return d.readLocked(address, buf)
}

func (d *Device) readLocked(address uint32, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	addrBytes := d.addressBytes(address)
	tx := make([]byte, len(addrBytes)+1+len(buf))
	tx[0] = d.opcodes().read
	copy(tx[1:], addrBytes)
	rx := make([]byte, len(tx))
	if err := d.xferWindow(tx, rx, readTimeout); err != nil {
		return err
	}
	copy(buf, rx[1+len(addrBytes):])
	return nil
}

// ReadPage reads into buf starting at offset within page, clamping the
// read so it never crosses into the next page.
func (d *Device) ReadPage(page int, buf []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if page < 0 || page >= d.pageCount || offset < 0 || offset >= pageSize {
		return ErrInvalidAddress
	}
	buf = clampRead(buf, pageSize, offset)
	return d.readLocked(uint32(page)*pageSize+uint32(offset), buf)
}

// ReadSector reads into buf starting at offset within sector, clamping
// the read so it never crosses into the next sector.
func (d *Device) ReadSector(sector int, buf []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if sector < 0 || sector >= d.sectorCount || offset < 0 || offset >= sectorSize {
		return ErrInvalidAddress
	}
	buf = clampRead(buf, sectorSize, offset)
	return d.readLocked(uint32(sector)*sectorSize+uint32(offset), buf)
}

// ReadBlock reads into buf starting at offset within block, clamping
// the read so it never crosses into the next block.
func (d *Device) ReadBlock(block int, buf []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if block < 0 || block >= d.blockCount || offset < 0 || offset >= blockSize {
		return ErrInvalidAddress
	}
	buf = clampRead(buf, blockSize, offset)
	return d.readLocked(uint32(block)*blockSize+uint32(offset), buf)
}

// clampRead truncates buf so a read starting at offset within a region
// of size regionSize never runs past the region boundary. Silent
// clamping mirrors the program-side contract in spec.md §4.6/§9.
func clampRead(buf []byte, regionSize, offset int) []byte {
	if max := regionSize - offset; len(buf) > max {
		return buf[:max]
	}
	return buf
}
