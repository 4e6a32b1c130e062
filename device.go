package spiflash

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State models the per-handle lifecycle described in spec.md §4.9.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateBusy
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

const (
	commandTimeout = 100 * time.Millisecond
	programTimeout = 100 * time.Millisecond
	readTimeout    = 2000 * time.Millisecond

	sectorEraseTimeout = 1000 * time.Millisecond
	blockEraseTimeout  = 3000 * time.Millisecond
	chipEraseUnit      = 1000 * time.Millisecond // per spec.md §4.7, scaled by block_count
)

// Device is the single long-lived handle for a SPI NOR flash part. It
// must be constructed with New and probed with Init before any other
// operation is called.
//
// A Device serializes every public operation against itself: at most
// one of Init/erase/read/write/program may be in flight at a time.
type Device struct {
	transport Transport
	log       *slog.Logger

	mu    sync.Mutex
	state State

	manufacturer Manufacturer
	memType      byte
	capacityCode byte

	blockCount  int
	sectorCount int
	pageCount   int
	addrIs4Byte bool
}

// New allocates a handle bound to transport. The handle is in the
// Uninitialized state until Init succeeds.
func New(transport Transport) *Device {
	return &Device{
		transport: transport,
		log:       slog.Default(),
		state:     StateUninitialized,
	}
}

// Init performs the identification handshake and derives the device
// geometry. Calling Init on a handle that already completed a
// successful probe returns ErrAlreadyInitialized; calling it again
// after a failed probe retries.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateReady {
		return ErrAlreadyInitialized
	}
	d.state = StateBusy
	if err := d.probe(); err != nil {
		d.state = StateUninitialized
		return err
	}
	d.state = StateReady
	d.log.Debug("spiflash probe complete",
		"manufacturer", d.manufacturer,
		"capacity_code", fmt.Sprintf("%#02x", d.capacityCode),
		"block_count", d.blockCount,
		"addr_is_4byte", d.addrIs4Byte,
	)
	return nil
}

// Init allocates a new Device and probes it in one call.
func Init(transport Transport) (*Device, error) {
	d := New(transport)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// State reports the current lifecycle state of the handle.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Manufacturer returns the decoded JEDEC manufacturer. Valid only after
// a successful Init.
func (d *Device) Manufacturer() Manufacturer { return d.manufacturer }

// BlockCount returns the number of 64 KiB erase blocks on the device.
func (d *Device) BlockCount() int { return d.blockCount }

// SectorCount returns the number of 4 KiB erase sectors on the device.
func (d *Device) SectorCount() int { return d.sectorCount }

// PageCount returns the number of 256 B program pages on the device.
func (d *Device) PageCount() int { return d.pageCount }

// AddrIs4Byte reports whether this device addresses commands with
// 4-byte (vs 3-byte) addresses.
func (d *Device) AddrIs4Byte() bool { return d.addrIs4Byte }

// Capacity returns the total addressable size in bytes.
func (d *Device) Capacity() int64 { return int64(d.pageCount) * pageSize }

// enter acquires the serializer and transitions Ready -> Busy. It must
// be paired with a deferred call to exit. Every public operation calls
// enter as its first line and exit (via defer) on every exit path,
// matching spec.md §9's "first line of every public op, last line on
// every exit" placement.
//
// Go's goroutines are preemptible, so unlike the embedded-C origin of
// this driver (a cooperative busy-wait flag, safe only single-threaded)
// this is backed by a real sync.Mutex: the design notes in spec.md §9
// call this substitution out explicitly for preemptive platforms.
func (d *Device) enter() error {
	d.mu.Lock()
	if d.state == StateUninitialized {
		d.mu.Unlock()
		return fmt.Errorf("spiflash: device not initialized")
	}
	d.state = StateBusy
	return nil
}

func (d *Device) exit() {
	d.state = StateReady
	d.mu.Unlock()
}

// xferWindow opens a single CS window, performs one full-duplex
// transfer, and closes the window. It is the unit every command in this
// package is built from: the core never leaves CS asserted across two
// calls to xferWindow.
func (d *Device) xferWindow(tx, rx []byte, timeout time.Duration) error {
	d.transport.Set(true)
	defer d.transport.Set(false)
	if err := d.transport.Xfer(tx, rx, timeout); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
