package inkcost

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Channel counts accepted in a Raster.
const (
	ChannelsRGB  = 3
	ChannelsRGBA = 4
)

// Raster is a rendered page: 8-bit samples in row-major order.
// Channel order is always R, G, B and, when Channels is 4, A.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Validate checks the raster geometry against its buffer.
func (r Raster) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrMalformedRaster, r.Width, r.Height)
	}
	if r.Channels != ChannelsRGB && r.Channels != ChannelsRGBA {
		return fmt.Errorf("%w: %d (must be %d or %d)", ErrChannelMismatch, r.Channels, ChannelsRGB, ChannelsRGBA)
	}
	if r.Width > math.MaxInt/r.Height/r.Channels {
		return fmt.Errorf("%w: %dx%dx%d overflows", ErrMalformedRaster, r.Width, r.Height, r.Channels)
	}
	if want := r.Width * r.Height * r.Channels; len(r.Pix) != want {
		return fmt.Errorf("%w: %d bytes for %dx%dx%d (want %d)",
			ErrMalformedRaster, len(r.Pix), r.Width, r.Height, r.Channels, want)
	}
	return nil
}

// Flatten returns a 3-channel copy of an RGBA raster with alpha discarded.
// An RGB raster is returned unchanged.
func (r Raster) Flatten() (Raster, error) {
	if err := r.Validate(); err != nil {
		return Raster{}, err
	}
	if r.Channels == ChannelsRGB {
		return r, nil
	}

	n := r.Width * r.Height
	pix := make([]byte, n*ChannelsRGB)
	for i := 0; i < n; i++ {
		copy(pix[i*ChannelsRGB:i*ChannelsRGB+ChannelsRGB], r.Pix[i*ChannelsRGBA:i*ChannelsRGBA+ChannelsRGB])
	}
	return Raster{Width: r.Width, Height: r.Height, Channels: ChannelsRGB, Pix: pix}, nil
}

// FromImage converts a decoded image into an RGB raster.
// Non-premultiplied color values are used and alpha is dropped, so a
// transparent pixel keeps its stored color rather than being composited.
func FromImage(img image.Image) (Raster, error) {
	if img == nil {
		return Raster{}, fmt.Errorf("%w: nil image", ErrMalformedRaster)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Raster{}, fmt.Errorf("%w: %dx%d", ErrMalformedRaster, w, h)
	}

	pix := make([]byte, w*h*ChannelsRGB)
	i := 0
	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < w; x++ {
				copy(pix[i:i+3], row[x*4:x*4+3])
				i += 3
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < w; x++ {
				px := row[x*4 : x*4+4]
				if a := px[3]; a == 0xff {
					copy(pix[i:i+3], px[:3])
				} else {
					pix[i], pix[i+1], pix[i+2] = unpremultiply(px[0], a), unpremultiply(px[1], a), unpremultiply(px[2], a)
				}
				i += 3
			}
		}
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := 0; x < w; x++ {
				pix[i], pix[i+1], pix[i+2] = row[x], row[x], row[x]
				i += 3
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
				i += 3
			}
		}
	}

	return Raster{Width: w, Height: h, Channels: ChannelsRGB, Pix: pix}, nil
}

// unpremultiply reverses alpha premultiplication with the same 16-bit
// arithmetic as color.NRGBAModel.
func unpremultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	c16, a16 := uint32(c)*0x101, uint32(a)*0x101
	return uint8((c16 * 0xffff / a16) >> 8)
}
