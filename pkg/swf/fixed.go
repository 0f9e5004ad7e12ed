package swf

// Ufixed8P8 is an unsigned 8.8 fixed-point number in its raw encoding.
type Ufixed8P8 uint16

// Float64 converts the raw encoding: high byte integer part, low byte fraction.
func (x Ufixed8P8) Float64() float64 {
	whole := uint16(x) >> 8
	frac := uint16(x) & 0xff
	return float64(whole) + float64(frac)/(1<<8)
}

// Sfixed16P16 is a signed 16.16 fixed-point number in its raw encoding.
type Sfixed16P16 int32

// One16P16 is 1.0 in 16.16 encoding.
const One16P16 Sfixed16P16 = 1 << 16

// Float64 converts the raw encoding. The arithmetic shift keeps the sign of
// the integer part; the fraction is always a positive offset from it.
func (x Sfixed16P16) Float64() float64 {
	whole := int32(x) >> 16
	frac := uint32(x) & 0xffff
	return float64(whole) + float64(frac)/(1<<16)
}

// Sfixed8P8 is a signed 8.8 fixed-point number, used by colour transforms.
type Sfixed8P8 int16

// Float64 converts the raw encoding.
func (x Sfixed8P8) Float64() float64 {
	whole := int16(x) >> 8
	frac := uint16(x) & 0xff
	return float64(whole) + float64(frac)/(1<<8)
}
