package swf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Header is the movie header.
type Header struct {
	FrameSize  Rect      `json:"frame_size"`
	FrameRate  Ufixed8P8 `json:"frame_rate"`
	FrameCount uint16    `json:"frame_count"`
}

// Movie is a fully decoded movie.
type Movie struct {
	Header Header `json:"header"`
	Tags   []Tag  `json:"-"`
}

// UnmarshalJSON decodes the polymorphic top-level record stream.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var aux struct {
		Header Header            `json:"header"`
		Tags   []json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tags, err := decodeTags(aux.Tags)
	if err != nil {
		return err
	}
	m.Header, m.Tags = aux.Header, tags
	return nil
}

// Decoded is the result of [Decode]: the movie plus the number of input
// bytes that followed the movie document and were not consumed.
type Decoded struct {
	Movie     *Movie
	Remaining int
}

// Decode reads one movie document from data. Whitespace-only trailers are
// not counted as remaining bytes.
func Decode(data []byte) (*Decoded, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var m Movie
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode movie: %w", err)
	}
	rest := bytes.TrimSpace(data[dec.InputOffset():])
	return &Decoded{Movie: &m, Remaining: len(rest)}, nil
}

// Read is [Decode] over a reader.
func Read(r io.Reader) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read movie: %w", err)
	}
	return Decode(data)
}
