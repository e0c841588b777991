package state

import (
	"sync"
	"time"
)

// PlayerState holds the last known playback snapshot. Callers take the
// embedded lock; the helper methods assume it is held.
type PlayerState struct {
	sync.RWMutex

	Playback            *Playback
	PlaybackLastUpdated time.Time
	Devices             []Device
}

// CurrentPlayingTrack returns the track of the current playback, if any.
func (p *PlayerState) CurrentPlayingTrack() *Track {
	if p.Playback == nil {
		return nil
	}
	return p.Playback.Item
}

// PlaybackProgress estimates the playback position at now, extrapolating
// from the last snapshot while playing.
func (p *PlayerState) PlaybackProgress(now time.Time) (time.Duration, bool) {
	if p.Playback == nil || p.Playback.Item == nil {
		return 0, false
	}
	progress := p.Playback.Progress
	if p.Playback.IsPlaying && !p.PlaybackLastUpdated.IsZero() {
		if elapsed := now.Sub(p.PlaybackLastUpdated); elapsed > 0 {
			progress += elapsed
		}
	}
	return progress, true
}

// DeviceVolume returns the volume of the playback device when reported.
func (p *PlayerState) DeviceVolume() (int, bool) {
	if p.Playback == nil || p.Playback.Device.VolumePercent == nil {
		return 0, false
	}
	return *p.Playback.Device.VolumePercent, true
}

// SetPlayback replaces the snapshot and stamps it with now.
func (p *PlayerState) SetPlayback(pb *Playback, now time.Time) {
	p.Playback = pb
	p.PlaybackLastUpdated = now
}
