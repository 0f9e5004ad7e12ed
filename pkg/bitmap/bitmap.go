// Package bitmap recognizes bitmap character definitions among unclassified
// movie records and decodes their pixels.
//
// Supported record codes:
//
//   - 21: JPEG image data (optionally preceded by an erroneous EOI/SOI pair)
//   - 35: JPEG image data followed by a zlib-compressed 8-bit alpha plane
//   - 20: zlib-compressed lossless pixels without alpha
//   - 36: zlib-compressed lossless pixels with premultiplied alpha
//
// Lossless payloads may be colour-mapped (format 3), 15-bit RGB (format 4) or
// 32-bit (format 5). Colour-mapped and 32-bit rows are padded to a multiple
// of four bytes.
package bitmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/hotelzululima/flashback/pkg/swf"
)

// Record codes of the bitmap definitions this package decodes.
const (
	CodeLossless  = 20
	CodeJPEG2     = 21
	CodeJPEG3     = 35
	CodeLossless2 = 36
)

const (
	formatColorMapped = 3
	formatRGB15       = 4
	formatRGB32       = 5
)

// ErrTruncated is returned when a record body ends early.
var ErrTruncated = errors.New("bitmap: truncated record")

// Definition is a decoded bitmap character.
type Definition struct {
	ID    swf.CharacterID
	Image image.Image
}

// Parse recognizes a bitmap definition. It returns ok=false when the record
// is not a bitmap definition at all, and a non-nil error when it is one but
// its payload cannot be decoded.
func Parse(tag *swf.Unknown) (def *Definition, ok bool, err error) {
	switch tag.Code {
	case CodeJPEG2, CodeJPEG3, CodeLossless, CodeLossless2:
	default:
		return nil, false, nil
	}
	if len(tag.Data) < 2 {
		return nil, true, ErrTruncated
	}
	id := swf.CharacterID(binary.LittleEndian.Uint16(tag.Data))
	body := tag.Data[2:]

	var img image.Image
	switch tag.Code {
	case CodeJPEG2:
		img, err = decodeJPEG(body)
	case CodeJPEG3:
		img, err = decodeJPEG3(body)
	case CodeLossless:
		img, err = decodeLossless(body, false)
	case CodeLossless2:
		img, err = decodeLossless(body, true)
	}
	if err != nil {
		return nil, true, fmt.Errorf("bitmap %d: %w", id, err)
	}
	return &Definition{ID: id, Image: img}, true, nil
}

func decodeJPEG(data []byte) (image.Image, error) {
	// Some encoders prefix the stream with an EOI marker followed by SOI.
	if bytes.HasPrefix(data, []byte{0xff, 0xd9, 0xff, 0xd8}) {
		data = data[4:]
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	return img, nil
}

func decodeJPEG3(data []byte) (image.Image, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	offset := binary.LittleEndian.Uint32(data)
	data = data[4:]
	if uint64(offset) > uint64(len(data)) {
		return nil, ErrTruncated
	}
	img, err := decodeJPEG(data[:offset])
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	alpha, err := inflate(data[offset:], b.Dx()*b.Dy())
	if err != nil {
		// Alpha is optional in practice; keep the opaque image.
		if errors.Is(err, ErrTruncated) && len(data[offset:]) == 0 {
			return img, nil
		}
		return nil, fmt.Errorf("alpha: %w", err)
	}
	out := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetNRGBA(b.Min.X+x, b.Min.Y+y, color.NRGBA{
				R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8),
				A: alpha[y*b.Dx()+x],
			})
		}
	}
	return out, nil
}

func decodeLossless(data []byte, withAlpha bool) (image.Image, error) {
	if len(data) < 5 {
		return nil, ErrTruncated
	}
	format := data[0]
	w := int(binary.LittleEndian.Uint16(data[1:]))
	h := int(binary.LittleEndian.Uint16(data[3:]))
	data = data[5:]

	switch format {
	case formatColorMapped:
		if len(data) < 1 {
			return nil, ErrTruncated
		}
		entries := int(data[0]) + 1
		entrySize := 3
		if withAlpha {
			entrySize = 4
		}
		stride := (w + 3) &^ 3
		raw, err := inflate(data[1:], entries*entrySize+stride*h)
		if err != nil {
			return nil, err
		}
		palette := make(color.Palette, entries)
		for i := range palette {
			e := raw[i*entrySize:]
			c := color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
			if withAlpha {
				c.A = e[3]
			}
			palette[i] = c
		}
		img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		pix := raw[entries*entrySize:]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := pix[y*stride+x]
				if int(idx) >= entries {
					idx = 0
				}
				img.SetColorIndex(x, y, idx)
			}
		}
		return img, nil

	case formatRGB15:
		stride := (w*2 + 3) &^ 3
		raw, err := inflate(data, stride*h)
		if err != nil {
			return nil, err
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := binary.BigEndian.Uint16(raw[y*stride+x*2:])
				img.SetRGBA(x, y, color.RGBA{
					R: expand5(v >> 10), G: expand5(v >> 5), B: expand5(v),
					A: 0xff,
				})
			}
		}
		return img, nil

	case formatRGB32:
		raw, err := inflate(data, w*h*4)
		if err != nil {
			return nil, err
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			p := raw[i*4:]
			a := p[0]
			if !withAlpha {
				a = 0xff
			}
			// Stored alpha is premultiplied, matching image.RGBA.
			img.Pix[i*4+0] = p[1]
			img.Pix[i*4+1] = p[2]
			img.Pix[i*4+2] = p[3]
			img.Pix[i*4+3] = a
		}
		return img, nil
	}
	return nil, fmt.Errorf("unsupported lossless format %d", format)
}

func expand5(v uint16) uint8 {
	c := uint8(v & 0x1f)
	return c<<3 | c>>2
}

// inflate decompresses a zlib stream and checks it holds at least want bytes.
// Output past want is not read.
func inflate(data []byte, want int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrTruncated
	}
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if len(out) < want {
		return nil, ErrTruncated
	}
	return out, nil
}
