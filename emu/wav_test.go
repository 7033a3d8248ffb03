package emu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWavRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	rec, err := NewWavRecorder(path, 44100)
	if err != nil {
		t.Fatal(err)
	}

	samples := make([]int16, 735)
	for i := range samples {
		samples[i] = int16(i * 37)
	}
	if err := rec.Write(samples); err != nil {
		t.Fatal(err)
	}
	if err := rec.Write(nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want 44100", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("channels = %d, want 1", dec.NumChans)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}
}
