package spiflash

import "time"

// waitBusy polls STATUS1.BUSY until it clears or timeout elapses, per
// spec.md §4.4. Elapsed time is computed with unsigned subtraction on
// the transport's free-running millisecond counter so a wraparound of
// that counter never produces a premature timeout.
func (d *Device) waitBusy(timeout time.Duration) error {
	t0 := d.transport.NowMs()
	timeoutMs := uint32(timeout.Milliseconds())
	for {
		if d.transport.NowMs()-t0 >= timeoutMs {
			return ErrTimeout
		}
		status, err := d.readStatus(1)
		if err != nil {
			return err
		}
		if status&status1Busy == 0 {
			return nil
		}
		d.transport.DelayMs(1)
	}
}
