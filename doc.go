// Package spiflash is a portable driver for SPI-attached NOR flash
// memories: Winbond, Macronix, GigaDevice, Micron/Numonyx and the rest
// of the usual W25Qxx/MX25Lxx-family parts that answer JEDEC ID (0x9F)
// with a recognized manufacturer byte.
//
// It presents a single byte-addressable surface over the part's real
// geometry of 256 B pages, 4 KiB sectors and 64 KiB blocks, hides
// 3- vs 4-byte addressing behind a probe-time decision, and serializes
// every public operation so a handle is always safe to share across
// goroutines.
//
// The driver owns the command protocol (identification, write-enable
// gating, busy-polling, page-boundary-correct program splitting) and
// nothing else: the SPI master, the chip-select GPIO and the millisecond
// clock are injected via the Transport interface, and debug logging goes
// to slog's default logger. See the transport/periphspi and transport/gobotspi
// subpackages for ready-made adapters.
//
// Example usage:
//
//	tr, err := periphspi.Open("SPI0.0", "GPIO17", 10*physic.MegaHertz)
//	if err != nil {
//		log.Fatal(err)
//	}
//	flash, err := spiflash.Init(tr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := flash.EraseSector(0); err != nil {
//		log.Fatal(err)
//	}
//	if err := flash.WriteAddress(0, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
//		log.Fatal(err)
//	}
package spiflash
