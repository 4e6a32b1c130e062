package spiflash

import (
	"sync/atomic"
	"testing"
	"time"
)

// newTestDevice returns a ready 16-block (1 MiB, 3-byte addressing)
// Winbond-identified handle backed by a mockFlash, for tests that don't
// care about identification itself.
func newTestDevice(t *testing.T) (*Device, *mockFlash) {
	t.Helper()
	mf := newMockFlash(16*blockSize, byte(ManufacturerWinbond), 0x40, 0x14, false)
	d, err := Init(mf)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return d, mf
}

// mockFlash is a byte-accurate software model of a SPI NOR flash part.
// It implements Transport directly rather than through testify/mock
// because the test load here is protocol simulation (decoding opcodes,
// mutating a backing byte array, tracking CS windows) rather than
// call/return recording; assertions on top of it still use testify.
type mockFlash struct {
	mem []byte

	jedecManufacturer byte
	jedecMemType      byte
	jedecCapacityCode byte
	addrIs4Byte       bool

	busy        bool
	busyForever bool
	busyClocks  int // number of NowMs/DelayMs ticks BUSY stays set once a program/erase starts

	wel bool

	nowMs uint32

	csAsserted bool
	// frames records one entry per CS window: the bytes written (tx) on
	// that window, in order. Used to assert the WREN*OP*BUSY**WRDI
	// sequencing invariant.
	frames [][]byte
	cur    []byte

	// inFlight/maxInFlight prove serialization: every Xfer increments
	// inFlight on entry and decrements on exit, and a handle that truly
	// serializes its public operations never lets inFlight exceed 1.
	inFlight    int32
	maxInFlight int32
}

func newMockFlash(capacity int, manufacturer, memType, capacityCode byte, addrIs4Byte bool) *mockFlash {
	mem := make([]byte, capacity)
	for i := range mem {
		mem[i] = 0xFF
	}
	return &mockFlash{
		mem:               mem,
		jedecManufacturer: manufacturer,
		jedecMemType:      memType,
		jedecCapacityCode: capacityCode,
		addrIs4Byte:       addrIs4Byte,
	}
}

func (m *mockFlash) Set(asserted bool) {
	if asserted && !m.csAsserted {
		m.cur = nil
	}
	if !asserted && m.csAsserted {
		m.frames = append(m.frames, m.cur)
		m.cur = nil
	}
	m.csAsserted = asserted
}

func (m *mockFlash) NowMs() uint32 { return m.nowMs }

func (m *mockFlash) DelayMs(ms uint32) {
	m.nowMs += ms
	if m.busy && !m.busyForever {
		if int(ms) >= m.busyClocks {
			m.busy = false
			m.busyClocks = 0
		} else {
			m.busyClocks -= int(ms)
		}
	}
}

func addrLen(addrIs4Byte bool) int {
	if addrIs4Byte {
		return 4
	}
	return 3
}

func decodeAddr(b []byte) uint32 {
	var a uint32
	for _, v := range b {
		a = a<<8 | uint32(v)
	}
	return a
}

func (m *mockFlash) Xfer(tx []byte, rx []byte, timeout time.Duration) error {
	n := atomic.AddInt32(&m.inFlight, 1)
	for {
		max := atomic.LoadInt32(&m.maxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&m.maxInFlight, max, n) {
			break
		}
	}
	defer atomic.AddInt32(&m.inFlight, -1)

	m.cur = append(m.cur, tx...)
	if len(tx) == 0 {
		return nil
	}
	opcode := tx[0]
	al := addrLen(m.addrIs4Byte)

	switch opcode {
	case 0x9F: // JEDEC ID
		rx[1] = m.jedecManufacturer
		rx[2] = m.jedecMemType
		rx[3] = m.jedecCapacityCode
	case cmdWREN:
		m.wel = true
	case cmdWRDI:
		m.wel = false
	case cmdReadStatus1:
		var s byte
		if m.busy {
			s |= status1Busy
		}
		if m.wel {
			s |= status1WEL
		}
		rx[1] = s
	case cmdReadStatus2, cmdReadStatus3:
		rx[1] = 0
	case 0x02, 0x12: // program
		addr := decodeAddr(tx[1 : 1+al])
		data := tx[1+al:]
		copy(m.mem[addr:], data)
		m.wel = false
		m.busy = true
		m.busyClocks = 2
	case 0x03, 0x13: // read
		addr := decodeAddr(tx[1 : 1+al])
		n := len(tx) - 1 - al
		copy(rx[1+al:], m.mem[addr:addr+uint32(n)])
	case 0x20, 0x21: // sector erase
		addr := decodeAddr(tx[1 : 1+al])
		fill(m.mem[addr:addr+sectorSize], 0xFF)
		m.wel = false
		m.busy = true
		m.busyClocks = 10
	case 0xD8, 0xDC: // block erase
		addr := decodeAddr(tx[1 : 1+al])
		fill(m.mem[addr:addr+blockSize], 0xFF)
		m.wel = false
		m.busy = true
		m.busyClocks = 20
	case cmdChipErase:
		fill(m.mem, 0xFF)
		m.wel = false
		m.busy = true
		m.busyClocks = 30
	}
	return nil
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
