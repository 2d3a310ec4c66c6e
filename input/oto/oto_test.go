package oto

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/noriah/synthscope/input"
)

func TestReader(t *testing.T) {
	r := &reader{stream: beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.25}
		}
		return len(samples), true
	})}

	p := make([]byte, 3*bytesPerFrame+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}

	if n != 3*bytesPerFrame {
		t.Fatalf("read %d bytes", n)
	}

	for i := 0; i < 3; i++ {
		left := math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerFrame:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerFrame+4:]))
		if left != 0.5 || right != -0.25 {
			t.Errorf("frame %d = %v %v", i, left, right)
		}
	}
}

func TestReaderDrained(t *testing.T) {
	r := &reader{stream: beep.Silence(1)}

	p := make([]byte, 4*bytesPerFrame)
	for i := range p {
		p[i] = 0xff
	}

	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("read = %d, %v", n, err)
	}

	for i, b := range p {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want silence", i, b)
		}
	}
}

func TestRegistered(t *testing.T) {
	if !input.HasBackend("oto") {
		t.Errorf("oto backend not registered")
	}

	if Sink("alsa_output.pci").String() != "alsa_output.pci" {
		t.Errorf("sink name changed")
	}
}
