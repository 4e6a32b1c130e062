package spiflash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodesByAddressWidth(t *testing.T) {
	d3, _ := newTestDevice(t)
	assert.EqualValues(t, 0x02, d3.opcodes().program)
	assert.EqualValues(t, 0x03, d3.opcodes().read)

	mf4 := newMockFlash(512*blockSize, byte(ManufacturerMacronix), 0x40, 0x19, true)
	d4, err := Init(mf4)
	require.NoError(t, err)
	assert.EqualValues(t, 0x12, d4.opcodes().program)
	assert.EqualValues(t, 0x13, d4.opcodes().read)
}

func TestAddressBytesWidth(t *testing.T) {
	d3, _ := newTestDevice(t)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, d3.addressBytes(0x010203))

	mf4 := newMockFlash(512*blockSize, byte(ManufacturerMacronix), 0x40, 0x19, true)
	d4, err := Init(mf4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, d4.addressBytes(0x01020304))
}
