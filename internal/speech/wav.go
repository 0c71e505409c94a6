package speech

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/h2non/filetype"
)

// sniffLen is how many bytes filetype needs to recognise a format.
const sniffLen = 262

var (
	errNotWAV       = errors.New("not a WAV file")
	errNoSampleRate = errors.New("sample rate is zero")
	errEmptyAudio   = errors.New("audio has no samples")
)

// Decode reads a WAV file fully, confirming it is intact and non-empty.
func Decode(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return PCM{}, fmt.Errorf("read header: %w", err)
	}
	kind, _ := filetype.Match(head[:n])
	if kind.Extension != "wav" {
		return PCM{}, fmt.Errorf("%w (detected %s)", errNotWAV, kind.Extension)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return PCM{}, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return PCM{}, errNotWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("decode samples: %w", err)
	}

	pcm := PCM{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   buf.SourceBitDepth,
	}
	if pcm.BitDepth == 0 {
		pcm.BitDepth = int(dec.BitDepth)
	}
	if pcm.SampleRate <= 0 {
		return PCM{}, errNoSampleRate
	}
	if pcm.Frames() == 0 {
		return PCM{}, errEmptyAudio
	}

	return pcm, nil
}

// WriteWAV encodes pcm as a linear PCM WAV file at path.
func WriteWAV(path string, pcm PCM) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, pcm.SampleRate, pcm.BitDepth, pcm.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: pcm.Channels, SampleRate: pcm.SampleRate},
		Data:           pcm.Samples,
		SourceBitDepth: pcm.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish wav: %w", err)
	}
	return f.Close()
}

// Silence returns mono 16-bit PCM of the given frame count.
func Silence(frames, sampleRate int) PCM {
	return PCM{
		Samples:    make([]int, frames),
		SampleRate: sampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}
