package spiflash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramInPageWritesData(t *testing.T) {
	d, mf := newTestDevice(t)
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.NoError(t, d.WritePage(3, data, 10))
	got := mf.mem[3*pageSize+10 : 3*pageSize+10+len(data)]
	assert.Equal(t, data, got)
}

func TestProgramInPageTruncatesAtPageBoundary(t *testing.T) {
	d, mf := newTestDevice(t)
	data := bytes.Repeat([]byte{0x55}, pageSize)
	require.NoError(t, d.WritePage(0, data, pageSize-3))

	// Only the 3 bytes that fit before the page boundary may be written;
	// the byte just past the boundary must be left untouched (0xFF).
	assert.Equal(t, byte(0xFF), mf.mem[pageSize], "program leaked past the page boundary")
	assert.Equal(t, bytes.Repeat([]byte{0x55}, 3), mf.mem[pageSize-3:pageSize])
}

func TestProgramInPageRejectsInvalidAddress(t *testing.T) {
	d, _ := newTestDevice(t)
	assert.Error(t, d.WritePage(-1, []byte{0x00}, 0), "negative page")
	assert.Error(t, d.WritePage(0, []byte{0x00}, pageSize), "offset == pageSize")
	assert.Error(t, d.WritePage(d.PageCount(), []byte{0x00}, 0), "page past the last page")
}

func TestProgramInPageFrameSequence(t *testing.T) {
	d, mf := newTestDevice(t)
	mf.frames = nil // drop the JEDEC ID frame left by Init
	require.NoError(t, d.WritePage(0, []byte{0x01}, 0))

	// Every program is bracketed WREN, PROGRAM, one-or-more status reads,
	// WRDI: exactly one CS window per command, six frames wide here
	// (the mock holds BUSY for two polls, so STATUS1 is read three times).
	require.GreaterOrEqual(t, len(mf.frames), 3, "CS windows")
	assert.EqualValues(t, cmdWREN, mf.frames[0][0], "first frame")
	assert.EqualValues(t, 0x02, mf.frames[1][0], "second frame")
	assert.EqualValues(t, cmdWRDI, mf.frames[len(mf.frames)-1][0], "last frame")
}
