package card

import (
	"fmt"
	"strings"
)

type Symbology string

const (
	SymbologyCode128 Symbology = "code128"
	SymbologyCode93  Symbology = "code93"
	SymbologyCode39  Symbology = "code39"
	SymbologyQR      Symbology = "qr"
)

func (s Symbology) Linear() bool {
	return s != SymbologyQR
}

func (s *Symbology) UnmarshalText(text []byte) error {
	switch sym := Symbology(strings.ToLower(string(text))); sym {
	case SymbologyCode128, SymbologyCode93, SymbologyCode39, SymbologyQR:
		*s = sym
		return nil
	default:
		return fmt.Errorf("unknown symbology %q, expected one of code128, code93, code39, qr", text)
	}
}

func DefaultConfig() Config {
	return Config{
		Symbology:   SymbologyCode128,
		ModuleWidth: 2,
		BarHeight:   80,
		Width:       400,
		Height:      260,
		FontSize:    28,
		Workers:     4,
	}
}

type Config struct {
	Symbology   Symbology `toml:"symbology"`
	ModuleWidth int       `toml:"module_width"`
	BarHeight   int       `toml:"bar_height"`
	Logo        string    `toml:"logo"`
	Width       int       `toml:"width"`
	Height      int       `toml:"height"`
	FontSize    float64   `toml:"font_size"`
	Workers     int       `toml:"workers"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n Symbology: %s\n ModuleWidth: %d\n BarHeight: %d\n Logo: %s\n Width: %d\n Height: %d\n FontSize: %.1f\n Workers: %d",
		c.Symbology,
		c.ModuleWidth,
		c.BarHeight,
		c.Logo,
		c.Width,
		c.Height,
		c.FontSize,
		c.Workers,
	)
}
