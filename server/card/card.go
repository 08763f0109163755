package card

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/topi314/shtrix/internal/xio"
	"github.com/topi314/shtrix/server/codes"
)

const padding = 16

var (
	borderColor = color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	inkColor    = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
)

func New(cfg Config) (*Renderer, error) {
	if cfg.FontSize <= 0 {
		return nil, errors.New("font_size must be positive")
	}
	if l := newLayout(cfg); cfg.Width <= 2*padding || l.logo < 1 || l.barcode < 1 {
		return nil, fmt.Errorf("card size %dx%d is too small for font size %.1f", cfg.Width, cfg.Height, cfg.FontSize)
	}
	if cfg.ModuleWidth < 1 || cfg.BarHeight < 1 {
		return nil, errors.New("module_width and bar_height must be positive")
	}

	f, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	r := &Renderer{
		cfg:  cfg,
		font: f,
	}

	if cfg.Logo != "" {
		logo, err := gg.LoadImage(cfg.Logo)
		if err != nil {
			return nil, fmt.Errorf("failed to load logo %q: %w", cfg.Logo, err)
		}
		r.logo = logo
	} else {
		r.logo = r.defaultLogo()
	}

	return r, nil
}

// Renderer draws barcodes and cards. It is safe for concurrent use.
type Renderer struct {
	cfg  Config
	font *truetype.Font
	logo image.Image
}

func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size: size,
		DPI:  72,
	})
}

// Barcode renders the symbol for the literal code string.
func (r *Renderer) Barcode(c codes.Code) (image.Image, error) {
	if !codes.Validate(string(c)) {
		return nil, &codes.FormatError{Code: string(c)}
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch r.cfg.Symbology {
	case SymbologyCode93:
		bc, err = code93.Encode(string(c), true, false)
	case SymbologyCode39:
		bc, err = code39.Encode(string(c), false, false)
	case SymbologyQR:
		return r.qrCode(c)
	default:
		bc, err = code128.Encode(string(c))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s barcode: %w", r.cfg.Symbology, err)
	}

	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*r.cfg.ModuleWidth, r.cfg.BarHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}
	return scaled, nil
}

func (r *Renderer) qrCode(c codes.Code) (image.Image, error) {
	qr, err := qrcode.New(string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to create qrcode: %w", err)
	}

	buf := &bytes.Buffer{}
	qrW := standard.NewWithWriter(xio.NewWriteCloser(buf),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(uint8(min(r.cfg.ModuleWidth*3, 255))),
	)
	defer func() {
		_ = qrW.Close()
	}()
	if err = qr.Save(qrW); err != nil {
		return nil, fmt.Errorf("failed to save qrcode: %w", err)
	}

	img, err := png.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode qrcode: %w", err)
	}
	return img, nil
}

// Card composes the logo, the barcode and the code text into one image.
func (r *Renderer) Card(c codes.Code) (image.Image, error) {
	bc, err := r.Barcode(c)
	if err != nil {
		return nil, err
	}

	w, h := r.cfg.Width, r.cfg.Height
	inner := w - 2*padding

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(borderColor)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(1, 1, float64(w-2), float64(h-2), 8)
	dc.Stroke()

	l := newLayout(r.cfg)

	logo := fit(r.logo, inner, l.logo)
	dc.DrawImageAnchored(logo, w/2, padding+l.logo/2, 0.5, 0.5)

	symbol := fit(bc, inner, l.barcode)
	dc.DrawImageAnchored(symbol, w/2, padding+l.logo+padding/2+l.barcode/2, 0.5, 0.5)

	dc.SetFontFace(r.face(r.cfg.FontSize))
	dc.SetColor(inkColor)
	dc.DrawStringAnchored(string(c), float64(w)/2, float64(h-padding-l.text/2), 0.5, 0.35)

	return dc.Image(), nil
}

// layout holds the heights of the card rows. The logo takes a third of what is
// left after the text line and the padding, the barcode the rest.
type layout struct {
	text    int
	logo    int
	barcode int
}

func newLayout(cfg Config) layout {
	text := int(cfg.FontSize) + padding
	free := cfg.Height - 2*padding - text
	logo := free / 3
	return layout{
		text:    text,
		logo:    logo,
		barcode: free - logo - padding/2,
	}
}

func (r *Renderer) WriteBarcode(w io.Writer, c codes.Code) error {
	img, err := r.Barcode(c)
	if err != nil {
		return err
	}
	return encodePNG(w, img)
}

func (r *Renderer) WriteCard(w io.Writer, c codes.Code) error {
	img, err := r.Card(c)
	if err != nil {
		return err
	}
	return encodePNG(w, img)
}

func (r *Renderer) WriteLogo(w io.Writer) error {
	return encodePNG(w, r.logo)
}

func (r *Renderer) defaultLogo() image.Image {
	const w, h = 240, 64

	dc := gg.NewContext(w, h)
	dc.SetColor(inkColor)
	dc.DrawRoundedRectangle(0, 0, w, h, 12)
	dc.Fill()

	dc.SetFontFace(r.face(36))
	dc.SetColor(color.White)
	dc.DrawStringAnchored("SHTRIX", w/2, h/2, 0.5, 0.35)

	return dc.Image()
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// fit scales img down so it fits into maxW x maxH keeping its aspect ratio.
func fit(img image.Image, maxW int, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}

	scale := min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale))))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
