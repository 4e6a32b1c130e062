package spiflash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManufacturerString(t *testing.T) {
	assert.Equal(t, "Winbond", ManufacturerWinbond.String())
	assert.Equal(t, "unknown(0x7e)", Manufacturer(0x7E).String())
}

func TestLookupManufacturer(t *testing.T) {
	m, ok := lookupManufacturer(0xEF)
	assert.True(t, ok)
	assert.Equal(t, ManufacturerWinbond, m)

	_, ok = lookupManufacturer(0x00)
	assert.False(t, ok)
}

func TestBlockCountForCapacityCode(t *testing.T) {
	cases := []struct {
		code   byte
		blocks int
		ok     bool
	}{
		{0x11, 2, true},
		{0x13, 8, true},
		{0x18, 256, true},
		{0x19, 512, true},
		{0x20, 1024, true},
		{0x10, 0, false},
		{0x21, 0, false},
	}
	for _, c := range cases {
		blocks, ok := blockCountForCapacityCode(c.code)
		assert.Equal(t, c.blocks, blocks, "code %#02x", c.code)
		assert.Equal(t, c.ok, ok, "code %#02x", c.code)
	}
}

func TestProbeDerivesGeometry(t *testing.T) {
	mf := newMockFlash(16*blockSize, byte(ManufacturerWinbond), 0x40, 0x14, false)
	d, err := Init(mf)
	require.NoError(t, err)

	assert.Equal(t, ManufacturerWinbond, d.Manufacturer())
	assert.Equal(t, 16, d.BlockCount())
	assert.Equal(t, 16*sectorsPerBlock, d.SectorCount())
	assert.Equal(t, 16*pagesPerBlock, d.PageCount())
	assert.False(t, d.AddrIs4Byte())
	assert.EqualValues(t, 16*blockSize, d.Capacity())
}

func TestProbeSelects4ByteAddressingAtThreshold(t *testing.T) {
	mf := newMockFlash(512*blockSize, byte(ManufacturerMacronix), 0x40, 0x19, true)
	d, err := Init(mf)
	require.NoError(t, err)
	assert.True(t, d.AddrIs4Byte())
}

// TestProbeIdentifyScenario is spec.md §8 scenario S6: a mock returning
// JEDEC [0xEF,0x40,0x18] identifies as Winbond, 128 Mbit, 256 blocks,
// 3-byte addressing.
func TestProbeIdentifyScenario(t *testing.T) {
	mf := newMockFlash(256*blockSize, 0xEF, 0x40, 0x18, false)
	d, err := Init(mf)
	require.NoError(t, err)

	assert.Equal(t, ManufacturerWinbond, d.Manufacturer())
	assert.Equal(t, 256, d.BlockCount())
	assert.False(t, d.AddrIs4Byte())
}

func TestInitUnknownVendor(t *testing.T) {
	mf := newMockFlash(16*blockSize, 0x7E, 0x40, 0x13, false)
	_, err := Init(mf)
	assert.True(t, errors.Is(err, ErrUnknownVendor))
}

func TestInitUnsupportedCapacity(t *testing.T) {
	mf := newMockFlash(16*blockSize, byte(ManufacturerWinbond), 0x40, 0x05, false)
	_, err := Init(mf)
	assert.True(t, errors.Is(err, ErrUnsupportedSize))
}
