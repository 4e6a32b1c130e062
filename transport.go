package spiflash

import "time"

// SPIBus is the full-duplex byte transport the core consumes. A single
// call to Xfer corresponds to one contiguous CS-low window: the adapter
// must not deassert chip-select between Xfer calls that belong to the
// same command, which is why CS is controlled separately by ChipSelect.
//
// tx and rx must be the same length. On timeout the adapter must leave
// the bus in a consistent idle state.
type SPIBus interface {
	Xfer(tx []byte, rx []byte, timeout time.Duration) error
}

// ChipSelect drives the chip-select line. Set(true) asserts (selects)
// the device, Set(false) deasserts it. The call must be infallible from
// the core's point of view: an adapter that talks to the flash's CS
// line over a fallible bus (e.g. an I2C GPIO expander) must swallow and
// log its own errors rather than propagate them here.
type ChipSelect interface {
	Set(asserted bool)
}

// Clock provides a free-running millisecond counter and a cooperative
// delay. NowMs must be compared with unsigned subtraction so that
// wraparound never produces a spurious timeout.
type Clock interface {
	NowMs() uint32
	DelayMs(ms uint32)
}

// Transport bundles the three capabilities the core holds as opaque
// dependencies. Adapters for a concrete platform (periph.io, Gobot, ...)
// implement all three; the core never knows which.
type Transport interface {
	SPIBus
	ChipSelect
	Clock
}
