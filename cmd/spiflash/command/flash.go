package command

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/mklimuk/spiflash"
	"github.com/mklimuk/spiflash/cmd/spiflash/console"
	"github.com/mklimuk/spiflash/flashctx"
	"github.com/mklimuk/spiflash/transport/gobotspi"
	"github.com/mklimuk/spiflash/transport/periphspi"
)

var transportFlags = []cli.Flag{
	&cli.StringFlag{Name: "transport", Value: "periph", Usage: "periph or gobot"},
	&cli.StringFlag{Name: "spi-port", Value: "/dev/spidev0.0", Usage: "periph.io spi port name (periph transport)"},
	&cli.StringFlag{Name: "cs-pin", Value: "GPIO17", Usage: "periph.io gpio pin name for chip-select (periph transport)"},
	&cli.StringFlag{Name: "spi-bus", Value: "spi", Usage: "gobot spi bus name (gobot transport)"},
	&cli.Int64Flag{Name: "speed", Value: 10_000_000, Usage: "spi clock speed in Hz (periph transport)"},
}

// closeFunc releases whatever resources openDevice acquired.
type closeFunc func()

func openDevice(c *cli.Context) (*spiflash.Device, closeFunc, error) {
	switch c.String("transport") {
	case "gobot":
		adaptor := nanopi.NewNeoAdaptor()
		tr := gobotspi.New(adaptor, c.String("spi-bus"))
		if err := tr.Start(); err != nil {
			return nil, nil, fmt.Errorf("starting gobot spi transport: %w", err)
		}
		d, err := spiflash.Init(tr)
		if err != nil {
			_ = tr.Halt()
			return nil, nil, err
		}
		return d, func() { _ = tr.Halt() }, nil
	default:
		freq := physic.Frequency(c.Int64("speed")) * physic.Hertz
		tr, err := periphspi.Open(c.String("spi-port"), c.String("cs-pin"), freq)
		if err != nil {
			return nil, nil, fmt.Errorf("opening periph spi transport: %w", err)
		}
		d, err := spiflash.Init(tr)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	}
}

var IdentifyCmd = &cli.Command{
	Name:  "identify",
	Usage: "probe the flash part and print its geometry",
	Flags: transportFlags,
	Action: func(c *cli.Context) error {
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "identify failed: %s", console.Red(err))
		}
		defer closeFn()
		info := struct {
			Manufacturer  string `yaml:"manufacturer"`
			BlockCount    int    `yaml:"block_count"`
			SectorCount   int    `yaml:"sector_count"`
			PageCount     int    `yaml:"page_count"`
			AddrIs4Byte   bool   `yaml:"addr_is_4byte"`
			CapacityBytes int64  `yaml:"capacity_bytes"`
		}{
			Manufacturer:  d.Manufacturer().String(),
			BlockCount:    d.BlockCount(),
			SectorCount:   d.SectorCount(),
			PageCount:     d.PageCount(),
			AddrIs4Byte:   d.AddrIs4Byte(),
			CapacityBytes: d.Capacity(),
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(info); err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var ReadCmd = &cli.Command{
	Name:  "read",
	Usage: "read bytes from the flash",
	Flags: append(transportFlags,
		&cli.Uint64Flag{Name: "address", Required: true},
		&cli.IntFlag{Name: "length", Value: 16},
	),
	Action: func(c *cli.Context) error {
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "read failed: %s", console.Red(err))
		}
		defer closeFn()
		length := c.Int("length")
		if length <= 0 {
			return console.Exit(1, "length must be positive, got %d", length)
		}
		buf := make([]byte, length)
		if err := d.ReadAddress(uint32(c.Uint64("address")), buf); err != nil {
			return console.Exit(1, "read error: %s", console.Red(err))
		}
		console.Print(hex.Dump(buf))
		return nil
	},
}

var WriteCmd = &cli.Command{
	Name:  "write",
	Usage: "write hex-encoded bytes to the flash",
	Flags: append(transportFlags,
		&cli.Uint64Flag{Name: "address", Required: true},
		&cli.StringFlag{Name: "data", Required: true, Usage: "hex bytes to write (e.g. '01FF23')"},
	),
	Action: func(c *cli.Context) error {
		data, err := hex.DecodeString(c.String("data"))
		if err != nil {
			return console.Exit(1, "invalid data hex string: %s", console.Red(err))
		}
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "write failed: %s", console.Red(err))
		}
		defer closeFn()
		if err := d.WriteAddress(uint32(c.Uint64("address")), data); err != nil {
			return console.Exit(1, "write error: %s", console.Red(err))
		}
		if flashctx.IsVerbose(c.Context) {
			console.Printf("wrote %d bytes at address %#x:\n%s", len(data), c.Uint64("address"), hex.Dump(data))
		} else {
			console.Printf("wrote %d bytes at address %#x\n", len(data), c.Uint64("address"))
		}
		return nil
	},
}

var EraseCmd = &cli.Command{
	Name:  "erase",
	Usage: "erase sectors, blocks or the whole chip",
	Subcommands: []*cli.Command{
		eraseSectorCmd,
		eraseBlockCmd,
		eraseChipCmd,
	},
}

var eraseSectorCmd = &cli.Command{
	Name:  "sector",
	Usage: "erase a single 4 KiB sector",
	Flags: append(transportFlags, &cli.IntFlag{Name: "index", Required: true}),
	Action: func(c *cli.Context) error {
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "erase failed: %s", console.Red(err))
		}
		defer closeFn()
		if err := d.EraseSector(c.Int("index")); err != nil {
			return console.Exit(1, "erase error: %s", console.Red(err))
		}
		console.Printf("sector %d erased\n", c.Int("index"))
		return nil
	},
}

var eraseBlockCmd = &cli.Command{
	Name:  "block",
	Usage: "erase a single 64 KiB block",
	Flags: append(transportFlags, &cli.IntFlag{Name: "index", Required: true}),
	Action: func(c *cli.Context) error {
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "erase failed: %s", console.Red(err))
		}
		defer closeFn()
		if err := d.EraseBlock(c.Int("index")); err != nil {
			return console.Exit(1, "erase error: %s", console.Red(err))
		}
		console.Printf("block %d erased\n", c.Int("index"))
		return nil
	},
}

var eraseChipCmd = &cli.Command{
	Name:  "chip",
	Usage: "erase the entire device",
	Flags: append(transportFlags, &cli.BoolFlag{Name: "yes", Usage: "skip the confirmation prompt"}),
	Action: func(c *cli.Context) error {
		if !c.Bool("yes") {
			ok, err := console.Confirm(fmt.Sprintf("%s this will erase the entire chip. Continue?", console.PictoWarn))
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if !ok {
				console.Print("aborted")
				return nil
			}
		}
		d, closeFn, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "erase failed: %s", console.Red(err))
		}
		defer closeFn()
		if err := d.EraseChip(); err != nil {
			return console.Exit(1, "erase error: %s", console.Red(err))
		}
		console.Printf("%s chip erased\n", console.PictoCheck)
		return nil
	},
}
