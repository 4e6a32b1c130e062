package gobotspi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseHeaderLenStatusAndJedec(t *testing.T) {
	cases := []struct {
		tx       byte
		wantLen  int
		wantResp bool
	}{
		{opReadStatus1, 1, true},
		{opReadStatus2, 1, true},
		{opReadStatus3, 1, true},
		{opJedecID, 1, true},
		{opRead3, 4, true},
		{opRead4, 5, true},
		{0x06, 0, false}, // WREN carries no response
		{0x20, 0, false}, // sector erase carries no response
	}
	for _, c := range cases {
		gotLen, gotResp := responseHeaderLen([]byte{c.tx, 0x00})
		assert.Equal(t, c.wantResp, gotResp, "opcode %#x", c.tx)
		if c.wantResp {
			assert.Equal(t, c.wantLen, gotLen, "opcode %#x", c.tx)
		}
	}
}

func TestTransportClockAdvancesWithDelay(t *testing.T) {
	tr := &Transport{}
	assert.EqualValues(t, 0, tr.NowMs())
	tr.DelayMs(5)
	assert.EqualValues(t, 5, tr.NowMs())
	tr.DelayMs(10)
	assert.EqualValues(t, 15, tr.NowMs())
}

func TestTransportSetIsNoOp(t *testing.T) {
	tr := &Transport{}
	assert.NotPanics(t, func() { tr.Set(true) })
	assert.NotPanics(t, func() { tr.Set(false) })
}

func TestXferRejectsLengthMismatch(t *testing.T) {
	tr := &Transport{}
	err := tr.Xfer([]byte{0x01, 0x02}, []byte{0x01}, 0)
	assert.Error(t, err)
}

func TestXferNoopOnEmptyBuffers(t *testing.T) {
	tr := &Transport{}
	err := tr.Xfer(nil, nil, 0)
	assert.NoError(t, err)
}
