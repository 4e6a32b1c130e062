package spiflash

import "errors"

// Sentinel errors returned by Device operations. Callers should use
// errors.Is against these rather than comparing error strings.
var (
	// ErrInvalidAddress is returned when a caller-supplied page, sector,
	// block or offset violates the device geometry. No SPI traffic is
	// generated.
	ErrInvalidAddress = errors.New("spiflash: invalid address")

	// ErrIO is returned when the transport reports any transfer failure.
	// A timeout reported by the transport's Xfer is also returned as
	// ErrIO; it is not classified as ErrTimeout.
	ErrIO = errors.New("spiflash: transport error")

	// ErrTimeout is returned when a busy-wait exceeds its deadline. The
	// device may still be completing the operation.
	ErrTimeout = errors.New("spiflash: timeout")

	// ErrUnknownVendor is returned by Init when the JEDEC manufacturer
	// byte does not match any known vendor.
	ErrUnknownVendor = errors.New("spiflash: unknown vendor id")

	// ErrUnsupportedSize is returned by Init when the JEDEC capacity
	// code is outside the range this driver understands.
	ErrUnsupportedSize = errors.New("spiflash: unsupported capacity code")

	// ErrAlreadyInitialized is returned by Init when called a second
	// time on a handle that already completed a probe successfully.
	ErrAlreadyInitialized = errors.New("spiflash: already initialized")
)
