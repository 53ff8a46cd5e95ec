// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"bytes"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Effects = Nop{}
	_ Effects = (*Set)(nil)
	_ Effects = (*Recorder)(nil)
)

// playing reports whether a sound command is still running.
func playing(p *Player) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func TestPlayer_BellWithoutCommand(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer("", &buf)

	p.Play()
	p.Play()
	assert.Equal(t, Bell+Bell, buf.String())
	assert.False(t, playing(p))
	assert.NotPanics(t, p.Stop)
}

func TestPlayer_NilWriter(t *testing.T) {
	p := NewPlayer("  ", nil)
	assert.NotPanics(t, p.Play)
}

func TestPlayer_StopKillsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sleep")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	p := NewPlayer("sleep 10", nil)
	p.Play()
	require.True(t, playing(p))

	p.Stop()
	assert.False(t, playing(p))
}

func TestPlayer_CommandFinishes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires true")
	}
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	p := NewPlayer("true", nil)
	p.Play()
	assert.Eventually(t, func() bool { return !playing(p) }, 2*time.Second, 10*time.Millisecond)
}

func TestPlayer_MissingCommand(t *testing.T) {
	p := NewPlayer("chatterm-no-such-binary-xyz", nil)
	assert.NotPanics(t, p.Play)
	assert.False(t, playing(p))
}

func TestPulse(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPulse().WithClock(func() time.Time { return now })

	assert.False(t, p.Active(now))

	p.Trigger()
	assert.True(t, p.Active(now))
	assert.True(t, p.Active(now.Add(PulseDuration-time.Millisecond)))
	assert.False(t, p.Active(now.Add(PulseDuration)))

	p.Trigger()
	p.Stop()
	assert.False(t, p.Active(now))
	assert.Equal(t, PulseDuration, p.Duration())
}

func TestSet_Switches(t *testing.T) {
	var buf bytes.Buffer
	pulse := NewPulse()
	set := NewSet(NewPlayer("", &buf), pulse)

	set.PlayReceivedSound()
	set.TriggerHapticPulse()
	assert.Equal(t, Bell, buf.String())
	assert.True(t, pulse.Active(time.Now()))

	set.StopHaptic()
	assert.False(t, pulse.Active(time.Now()))

	set.SoundEnabled = false
	set.HapticEnabled = false
	set.PlayReceivedSound()
	set.TriggerHapticPulse()
	assert.Equal(t, Bell, buf.String())
	assert.False(t, pulse.Active(time.Now()))
}

func TestSet_NilParts(t *testing.T) {
	set := NewSet(nil, nil)
	assert.False(t, set.SoundEnabled)
	assert.NotPanics(t, func() {
		set.PlayReceivedSound()
		set.TriggerHapticPulse()
		set.StopSound()
		set.StopHaptic()
	})
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.PlayReceivedSound()
	r.TriggerHapticPulse()
	r.TriggerHapticPulse()
	r.StopSound()
	r.StopHaptic()

	sounds, pulses, stops, hStops := r.Counts()
	assert.Equal(t, 1, sounds)
	assert.Equal(t, 2, pulses)
	assert.Equal(t, 1, stops)
	assert.Equal(t, 1, hStops)
}
