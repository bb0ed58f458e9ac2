package engine

import (
	"io"
	"time"
)

// Alarm plays the audible cue when a countdown reaches zero. Implementations
// may fail; the engine logs the failure and the transition proceeds anyway.
type Alarm interface {
	Play() error
}

// BellAlarm rings the terminal bell three times with short gaps.
type BellAlarm struct {
	W io.Writer
}

func (a BellAlarm) Play() error {
	for i := 0; i < 3; i++ {
		if i > 0 {
			time.Sleep(150 * time.Millisecond)
		}
		if _, err := a.W.Write([]byte("\a")); err != nil {
			return err
		}
	}
	return nil
}

// SilentAlarm is used when sound is disabled in config.
type SilentAlarm struct{}

func (SilentAlarm) Play() error { return nil }
