package emu

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavRecorder streams the console audio output to a mono 16-bit WAV file.
type WavRecorder struct {
	f   *os.File
	enc *wav.Encoder
	buf audio.IntBuffer
}

// NewWavRecorder creates the output file and writes the WAV header.
func NewWavRecorder(path string, sampleRate int) (*WavRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return &WavRecorder{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, 16, 1, 1),
		buf: audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends the samples of one frame.
func (w *WavRecorder) Write(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}
	if err := w.enc.Write(&w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *WavRecorder) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("wav: %w", err)
	}
	return w.f.Close()
}
