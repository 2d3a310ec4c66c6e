// Command drumkit renders the dsp drum kit to 16-bit mono WAV files.
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/integrii/flaggy"
	"github.com/noriah/synthscope/dsp"
	"github.com/pkg/errors"
)

const (
	// AppName is the app name
	AppName = "drumkit"
	// AppDesc is the app description
	AppDesc = "Render drum one-shots to WAV files"
)

const (
	bitDepth  = 16
	pcmFormat = 1
)

var version = "unknown"

type config struct {
	outDir     string
	sampleRate int
	only       string
}

func main() {
	log.SetFlags(0)

	cfg := config{
		outDir:     ".",
		sampleRate: 44100,
	}

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	parser.String(&cfg.outDir, "o", "out", "directory to write the samples to")
	parser.Int(&cfg.sampleRate, "r", "rate", "sample rate")
	parser.String(&cfg.only, "p", "piece", "render only this piece (kick, snare, hat, tom)")

	chk(parser.Parse(), "failed to parse arguments")

	if cfg.sampleRate < 1 {
		log.Fatalln("sample rate must be positive")
	}

	drums := dsp.Drums
	if cfg.only != "" {
		d, ok := dsp.FindDrum(cfg.only)
		if !ok {
			log.Fatalf("unknown piece %q\n", cfg.only)
		}
		drums = []dsp.Drum{d}
	}

	chk(os.MkdirAll(cfg.outDir, 0o755), "failed to create output directory")

	for _, d := range drums {
		path := filepath.Join(cfg.outDir, d.Name+".wav")
		chk(writeFile(path, d.Render(float64(cfg.sampleRate)), cfg.sampleRate), "failed to write "+d.Name)
		fmt.Println(path)
	}
}

func writeFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if err := writeWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// writeWAV encodes samples in [-1, 1] as 16-bit signed mono PCM.
func writeWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}

	for i, v := range samples {
		buf.Data[i] = toPCM16(v)
	}

	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "failed to encode samples")
	}

	return errors.Wrap(enc.Close(), "failed to finish wav")
}

func toPCM16(v float64) int {
	v = math.Max(-1, math.Min(1, v))
	return int(math.Round(v * math.MaxInt16))
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
