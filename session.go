// This file is part of Gatesim.
//
// Gatesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gatesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gatesim.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/peripherals/i2s"
	"github.com/jetsetilly/gatesim/imagewriter"
	"github.com/jetsetilly/gatesim/logger"
	"github.com/jetsetilly/gatesim/profiles"
	"github.com/jetsetilly/gatesim/tracer"
	"github.com/jetsetilly/gatesim/wavwriter"
	"github.com/spf13/cobra"
)

// Sentinal error patterns.
const (
	NoAudio    = "gatesim: profile %s has no audio codec"
	FileError  = "gatesim: %v"
	NoDomainHz = "gatesim: audio domain %s not found"
)

// flags shared by the commands that create a harness.
type harnessFlags struct {
	overrides     string
	firmware      string
	budget        uint64
	framesDir     string
	imageFormat   string
	trace         string
	wav           string
	replay        string
	replayChannel string
	log           bool
	statsview     string
}

func (hf *harnessFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&hf.overrides, "overrides", "o", "", "TOML file of profile overrides")
	fl.StringVarP(&hf.firmware, "firmware", "f", "", "firmware image for the flash. can be a URL")
	fl.Uint64VarP(&hf.budget, "budget", "b", 0, "simulated time budget (0 = profile default)")
	fl.StringVar(&hf.framesDir, "frames", "", "directory to write captured frames to")
	fl.StringVar(&hf.imageFormat, "image-format", "bmp", "image format of captured frames (bmp, png)")
	fl.StringVar(&hf.trace, "trace", "", "file to write the signal trace to")
	fl.StringVar(&hf.wav, "wav", "", "record the audio stimulus to a WAV file")
	fl.StringVar(&hf.replay, "replay", "", "WAV or MP3 file replayed into an injection channel")
	fl.StringVar(&hf.replayChannel, "replay-channel", "fs_inject0", "injection channel for the replay")
	fl.BoolVar(&hf.log, "log", false, "echo log entries to stderr")
	fl.StringVar(&hf.statsview, "statsview", "", "address of the runtime statistics server (disabled if empty)")
}

// session is a harness created from the command line.
type session struct {
	env     *environment.Environment
	profile profiles.Profile
	harness *hardware.Harness

	// files to close after the harness has finished
	files []*os.File
}

func (hf *harnessFlags) build(output io.Writer, args []string, mode govern.Mode) (*session, error) {
	if hf.log {
		logger.SetEcho(os.Stderr)
	}

	name := profiles.Default
	if len(args) > 0 {
		name = args[0]
	}

	p, err := profiles.Lookup(name)
	if err != nil {
		return nil, err
	}

	if hf.overrides != "" {
		f, err := os.Open(hf.overrides)
		if err != nil {
			return nil, curated.Errorf(FileError, err)
		}
		o, err := profiles.LoadOverrides(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if err := p.Apply(o); err != nil {
			return nil, err
		}
	}

	if hf.firmware != "" {
		if err := p.Apply(profiles.Overrides{Firmware: &hf.firmware}); err != nil {
			return nil, err
		}
		p.Harness.FirmwareRequired = true
	}

	if hf.budget > 0 {
		p.Harness.Budget = clocks.Time(hf.budget)
	}

	s := &session{
		env:     environment.NewEnvironment(environment.MainHarness, p.Name),
		profile: p,
	}
	s.env.Mode = mode

	sinks := hardware.Sinks{Serial: output}

	if hf.replay != "" {
		if err := s.replay(hf.replay, hf.replayChannel); err != nil {
			return nil, err
		}
	}

	if hf.framesDir != "" {
		format, err := imagewriter.ParseFormat(hf.imageFormat)
		if err != nil {
			return nil, err
		}
		w, err := imagewriter.NewWriter(s.env, hf.framesDir, "frame", format)
		if err != nil {
			return nil, err
		}
		sinks.Frames = w
	}

	if hf.trace != "" {
		f, err := os.Create(hf.trace)
		if err != nil {
			return nil, curated.Errorf(FileError, err)
		}
		s.files = append(s.files, f)
		sinks.Trace = tracer.NewChanges(f)
		s.profile.Harness.Trace = true
	}

	if hf.wav != "" {
		rate, err := s.sampleRate()
		if err != nil {
			s.close()
			return nil, err
		}
		w, err := wavwriter.New(s.env, hf.wav, rate, len(s.profile.Harness.I2S.Channels))
		if err != nil {
			s.close()
			return nil, err
		}
		sinks.Audio = w
	}

	s.harness, err = s.profile.NewHarness(s.env, sinks)
	if err != nil {
		s.close()
		return nil, err
	}

	launchStats(output, hf.statsview)

	return s, nil
}

// replace the source of the named injection channel with the contents of a
// WAV or MP3 file.
func (s *session) replay(filename string, channel string) error {
	cfg := s.profile.Harness.I2S
	if cfg == nil {
		return curated.Errorf(NoAudio, s.profile.Name)
	}

	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf(FileError, err)
	}
	defer f.Close()

	rp, err := i2s.NewReplay(s.env, filename, f)
	if err != nil {
		return err
	}

	for i := range cfg.Channels {
		if cfg.Channels[i].Signal == channel {
			cfg.Channels[i].Source = rp
			return nil
		}
	}
	cfg.Channels = append(cfg.Channels, i2s.Channel{Signal: channel, Source: rp})

	return nil
}

// the sample rate of the audio stimulus is the frequency of the audio domain
// divided by the frame sync divider.
func (s *session) sampleRate() (int, error) {
	cfg := s.profile.Harness.I2S
	if cfg == nil {
		return 0, curated.Errorf(NoAudio, s.profile.Name)
	}
	if cfg.Divider == 0 {
		return 0, curated.Errorf(i2s.ZeroDivider)
	}
	for _, d := range s.profile.Harness.Domains {
		if d.Name == cfg.Domain {
			return int(uint64(d.Freq) / uint64(cfg.Divider)), nil
		}
	}
	return 0, curated.Errorf(NoDomainHz, cfg.Domain)
}

// report finishes the harness and writes the report.
func (s *session) report(output io.Writer) error {
	r, err := s.harness.Finish()
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "\n%s", r.String())
	return nil
}

// abandon finishes the harness after an error so that the external sinks are
// flushed and closed. The original error is returned.
func (s *session) abandon(err error) error {
	if _, ferr := s.harness.Finish(); ferr != nil {
		logger.Logf(s.env, logTag, "%v", ferr)
	}
	return err
}

func (s *session) close() {
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			logger.Logf(s.env, logTag, "%v", err)
		}
	}
	s.files = nil
}
