package export

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/topi314/shtrix/internal/xtime"
	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/card"
)

const DefaultBarcodeScript = "https://cdn.jsdelivr.net/npm/jsbarcode@3.11.6/dist/JsBarcode.all.min.js"

var (
	//go:embed templates/print.gohtml
	printTemplateFS embed.FS

	printTemplate = template.Must(template.New("print.gohtml").ParseFS(printTemplateFS, "templates/print.gohtml"))

	jsBarcodeFormats = map[card.Symbology]string{
		card.SymbologyCode128: "CODE128",
		card.SymbologyCode93:  "CODE93",
		card.SymbologyCode39:  "CODE39",
	}
)

func DefaultPrintConfig() PrintConfig {
	return PrintConfig{
		Title:         "Shtrix Codes",
		CardWidth:     60,
		CardHeight:    40,
		Delay:         xtime.Duration(500 * time.Millisecond),
		BarcodeScript: DefaultBarcodeScript,
	}
}

type PrintConfig struct {
	Title string `toml:"title"`
	// CardWidth and CardHeight are in millimeters.
	CardWidth  float64        `toml:"card_width"`
	CardHeight float64        `toml:"card_height"`
	Delay      xtime.Duration `toml:"delay"`
	// BarcodeScript is loaded by the document to draw barcodes in the browser.
	// When empty, barcodes are rendered here and embedded as images.
	BarcodeScript string `toml:"barcode_script"`
}

func (c PrintConfig) String() string {
	return fmt.Sprintf("\n Title: %s\n CardWidth: %.1fmm\n CardHeight: %.1fmm\n Delay: %s\n BarcodeScript: %s",
		c.Title,
		c.CardWidth,
		c.CardHeight,
		c.Delay,
		c.BarcodeScript,
	)
}

type PrintVars struct {
	Title         string
	First         string
	Last          string
	Total         int
	CardWidth     float64
	CardHeight    float64
	DelayMS       int64
	BarcodeScript string
	Format        string
	ModuleWidth   int
	BarHeight     int
	LogoCSS       template.CSS
	Cards         []PrintCard
}

type PrintCard struct {
	Code    string
	Barcode template.URL
}

// Print writes a self-contained print document for b. Barcodes that fail to render
// are left out of their card without aborting the document.
func Print(ctx context.Context, w io.Writer, cfg PrintConfig, b *batch.Batch, r *card.Renderer) error {
	cardCfg := r.Config()

	logo := &bytes.Buffer{}
	if err := r.WriteLogo(logo); err != nil {
		return fmt.Errorf("failed to render logo: %w", err)
	}

	vars := PrintVars{
		Title:       cfg.Title,
		First:       b.First().String(),
		Last:        b.Last().String(),
		Total:       b.Len(),
		CardWidth:   cfg.CardWidth,
		CardHeight:  cfg.CardHeight,
		DelayMS:     time.Duration(cfg.Delay).Milliseconds(),
		ModuleWidth: cardCfg.ModuleWidth,
		BarHeight:   cardCfg.BarHeight,
		LogoCSS:     template.CSS(fmt.Sprintf(".code-logo { background-image: url(%s); }", dataURI(logo.Bytes()))),
		Cards:       make([]PrintCard, b.Len()),
	}

	if cardCfg.Symbology.Linear() && cfg.BarcodeScript != "" {
		vars.BarcodeScript = cfg.BarcodeScript
		vars.Format = jsBarcodeFormats[cardCfg.Symbology]
		for i, c := range b.Codes {
			vars.Cards[i] = PrintCard{Code: c.String()}
		}
	} else {
		images, _ := renderPNGs(ctx, b.Codes, cardCfg.Workers, r.WriteBarcode)
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, c := range b.Codes {
			vars.Cards[i] = PrintCard{Code: c.String()}
			if images[i] != nil {
				vars.Cards[i].Barcode = template.URL(dataURI(images[i]))
			}
		}
	}

	if err := printTemplate.Execute(w, vars); err != nil {
		return fmt.Errorf("failed to render print document: %w", err)
	}
	return nil
}

func dataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
