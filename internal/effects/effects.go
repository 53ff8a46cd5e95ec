// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import "sync"

// Effects is the feedback capability injected into the turn controller.
type Effects interface {
	PlayReceivedSound()
	TriggerHapticPulse()
	StopSound()
	StopHaptic()
}

// Nop is an Effects that does nothing.
type Nop struct{}

func (Nop) PlayReceivedSound() {}

func (Nop) TriggerHapticPulse() {}

func (Nop) StopSound() {}

func (Nop) StopHaptic() {}

// =============================================================================
// SET
// =============================================================================

// Set combines a sound player and a haptic pulse.
type Set struct {
	Sound  *Player
	Haptic *Pulse

	SoundEnabled  bool
	HapticEnabled bool
}

// NewSet creates a Set with both effects enabled when present.
func NewSet(sound *Player, haptic *Pulse) *Set {
	return &Set{
		Sound:         sound,
		Haptic:        haptic,
		SoundEnabled:  sound != nil,
		HapticEnabled: haptic != nil,
	}
}

// PlayReceivedSound plays the received sound if enabled.
func (s *Set) PlayReceivedSound() {
	if s.SoundEnabled && s.Sound != nil {
		s.Sound.Play()
	}
}

// TriggerHapticPulse starts the pulse if enabled.
func (s *Set) TriggerHapticPulse() {
	if s.HapticEnabled && s.Haptic != nil {
		s.Haptic.Trigger()
	}
}

// StopSound stops playback regardless of the switch.
func (s *Set) StopSound() {
	if s.Sound != nil {
		s.Sound.Stop()
	}
}

// StopHaptic ends the pulse regardless of the switch.
func (s *Set) StopHaptic() {
	if s.Haptic != nil {
		s.Haptic.Stop()
	}
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder counts effect calls.
type Recorder struct {
	mu     sync.Mutex
	sounds int
	pulses int
	stops  int
	hStops int
}

func (r *Recorder) PlayReceivedSound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds++
}

func (r *Recorder) TriggerHapticPulse() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses++
}

func (r *Recorder) StopSound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
}

func (r *Recorder) StopHaptic() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hStops++
}

// Counts returns the number of sounds played, pulses triggered, sound stops
// and haptic stops.
func (r *Recorder) Counts() (sounds, pulses, soundStops, hapticStops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sounds, r.pulses, r.stops, r.hStops
}
