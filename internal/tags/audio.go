package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/llehouerou/go-mp3"
)

// readAudioInfo reads duration and sample rate without fully decoding
// the stream.
func readAudioInfo(path string) (time.Duration, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtMP3:
		return readMP3AudioInfo(f)
	case ExtFLAC:
		return readFLACStreamInfo(path)
	case ExtOGG:
		return readOggAudioInfo(f)
	default:
		return 0, 0, fmt.Errorf("unsupported format: %s", ext)
	}
}

func readMP3AudioInfo(f *os.File) (time.Duration, int, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, 0, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, 0, errors.New("mp3: invalid sample rate")
	}

	sampleCount := max(decoder.SampleCount(), 0)
	duration := time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second))
	return duration, sampleRate, nil
}

// readFLACStreamInfo parses the FLAC streaminfo metadata block.
func readFLACStreamInfo(path string) (time.Duration, int, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		return 0, 0, err
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate occupies 20 bits starting at byte 10; the total
		// sample count is the trailing 36 bits of the block.
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 |
			int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		var duration time.Duration
		if sampleRate > 0 {
			duration = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
		}
		return duration, sampleRate, nil
	}

	return 0, 0, errors.New("flac: no streaminfo block")
}

// readOggAudioInfo derives duration from the granule position of the
// last Ogg page. Vorbis granules count PCM samples at the stream's own
// sample rate, taken from the identification header.
func readOggAudioInfo(f *os.File) (time.Duration, int, error) {
	sampleRate, err := readVorbisSampleRate(f)
	if err != nil {
		return 0, 0, err
	}

	fi, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}

	searchSize := min(int64(65536), fi.Size())
	if _, err := f.Seek(-searchSize, io.SeekEnd); err != nil {
		return 0, 0, err
	}

	buf := make([]byte, searchSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, 0, err
	}
	buf = buf[:n]

	for i := len(buf) - 27; i >= 0; i-- {
		if buf[i] != 'O' || buf[i+1] != 'g' || buf[i+2] != 'g' || buf[i+3] != 'S' {
			continue
		}
		// Granule position: 8 bytes little-endian at offset 6.
		granule := int64(buf[i+6]) | int64(buf[i+7])<<8 | int64(buf[i+8])<<16 | int64(buf[i+9])<<24 |
			int64(buf[i+10])<<32 | int64(buf[i+11])<<40 | int64(buf[i+12])<<48 | int64(buf[i+13])<<56
		if granule > 0 {
			d := time.Duration(float64(granule) / float64(sampleRate) * float64(time.Second))
			return d, sampleRate, nil
		}
	}

	return 0, 0, errors.New("ogg: could not determine duration")
}

// readVorbisSampleRate locates the Vorbis identification header in the
// first Ogg page. The header packet starts with "\x01vorbis" followed
// by version (4), channels (1) and the sample rate (4, little endian).
func readVorbisSampleRate(f *os.File) (int, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	buf = buf[:n]

	idx := strings.Index(string(buf), "\x01vorbis")
	if idx < 0 || idx+16 > len(buf) {
		return 0, errors.New("ogg: no vorbis identification header")
	}
	rate := int(buf[idx+12]) | int(buf[idx+13])<<8 | int(buf[idx+14])<<16 | int(buf[idx+15])<<24
	if rate <= 0 {
		return 0, errors.New("ogg: invalid sample rate")
	}
	return rate, nil
}
