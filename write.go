package spiflash

// WriteAddress splits data into page-program-sized chunks and writes it
// starting at the given byte address, per spec.md §4.6. The first and
// last chunks may be partial; every interior chunk programs a full
// 256-byte page. No chunk this function emits ever crosses a physical
// page boundary, which is required: NOR flash wraps the page address
// within a page on program.
func (d *Device) WriteAddress(address uint32, data []byte) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if uint64(address)+uint64(len(data)) > uint64(d.Capacity()) {
		return ErrInvalidAddress
	}
	return d.writeAddressLocked(address, data)
}

func (d *Device) writeAddressLocked(address uint32, data []byte) error {
	cur := address
	i := 0
	remaining := len(data)
	for remaining > 0 {
		page := int(cur / pageSize)
		off := int(cur % pageSize)
		chunk := pageSize - off
		if chunk > remaining {
			chunk = remaining
		}
		if err := d.programInPage(page, data[i:i+chunk], off); err != nil {
			return err
		}
		cur += uint32(chunk)
		i += chunk
		remaining -= chunk
	}
	return nil
}

// WritePage writes data into page starting at offset, clamping the
// write so it never crosses into the next page. This is a convenience
// over WriteAddress for callers that already think in page coordinates.
func (d *Device) WritePage(page int, data []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if page < 0 || page >= d.pageCount || offset < 0 || offset >= pageSize {
		return ErrInvalidAddress
	}
	return d.programInPage(page, data, offset)
}

// WriteSector writes data into sector starting at offset, clamping so
// the write never crosses into the next sector.
func (d *Device) WriteSector(sector int, data []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if sector < 0 || sector >= d.sectorCount || offset < 0 || offset >= sectorSize {
		return ErrInvalidAddress
	}
	if max := sectorSize - offset; len(data) > max {
		data = data[:max]
	}
	base := uint32(sector)*sectorSize + uint32(offset)
	return d.writeAddressLocked(base, data)
}

// WriteBlock writes data into block starting at offset, clamping so the
// write never crosses into the next block.
func (d *Device) WriteBlock(block int, data []byte, offset int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if block < 0 || block >= d.blockCount || offset < 0 || offset >= blockSize {
		return ErrInvalidAddress
	}
	if max := blockSize - offset; len(data) > max {
		data = data[:max]
	}
	base := uint32(block)*blockSize + uint32(offset)
	return d.writeAddressLocked(base, data)
}
