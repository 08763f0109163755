package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/topi314/shtrix/internal/xslog"
	"github.com/topi314/shtrix/server"
	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/card"
	"github.com/topi314/shtrix/server/codes"
	"github.com/topi314/shtrix/server/export"
	"github.com/topi314/shtrix/server/web"
)

var (
	cfgPath string
	cfg     server.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shtrix",
		Short: "Generate sequential barcode cards",
		Long: `shtrix generates sequential codes made of one uppercase letter and five digits
(A00000 to Z99999) and renders each one as a card with a logo, a barcode and the code text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = server.LoadConfig(cfgPath, !cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			setupLogger(cfg.Log)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "shtrix.toml", "path to the config file")

	rootCmd.AddCommand(newServerCmd(), newGenerateCmd(), newPrintCmd(), newCardsCmd())
	return rootCmd
}

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the web tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Starting shtrix server", slog.String("config", cfgPath))
			slog.Debug("Config loaded", slog.String("config", cfg.String()))

			srv, err := server.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			srv.Start(web.Routes(srv))
			defer srv.Stop()

			slog.Info("Server started", slog.String("addr", cfg.Server.Addr))

			<-cmd.Context().Done()
			slog.Info("Shutting down server")
			return nil
		},
	}
}

type batchFlags struct {
	start string
	count int
	from  string
	out   string
}

func (f *batchFlags) register(cmd *cobra.Command, withFrom bool) {
	cmd.Flags().StringVarP(&f.start, "start", "s", string(codes.First), "first code of the batch")
	cmd.Flags().IntVarP(&f.count, "count", "n", 10, fmt.Sprintf("number of codes to generate (%d-%d)", codes.MinQuantity, codes.MaxQuantity))
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file, - for stdout (default derived from the batch)")
	if withFrom {
		cmd.Flags().StringVarP(&f.from, "from", "f", "", "read codes from a text export instead of generating them")
		cmd.MarkFlagsMutuallyExclusive("from", "start")
		cmd.MarkFlagsMutuallyExclusive("from", "count")
	}
}

// load builds the batch before any output is created, so invalid input never leaves a file behind.
func (f *batchFlags) load() (*batch.Batch, error) {
	if f.from != "" {
		file, err := os.Open(f.from)
		if err != nil {
			return nil, fmt.Errorf("failed to open codes file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		parsed, err := batch.ParseText(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.from, err)
		}
		return batch.New(parsed, cfg.Card.Logo), nil
	}

	generated, err := codes.Generate(codes.Normalize(f.start), max(codes.MinQuantity, f.count))
	if err != nil {
		return nil, err
	}

	if remaining := codes.Remaining(generated[0]); len(generated) > remaining {
		slog.Warn("Batch runs past the last code", slog.Int("unique", remaining), slog.Int("repeated", len(generated)-remaining), slog.String("code", string(codes.Last)))
	}
	return batch.New(generated, cfg.Card.Logo), nil
}

func (f *batchFlags) write(defaultName string, fn func(w io.Writer) error) error {
	out := f.out
	if out == "" {
		out = defaultName
	}
	if out == "-" {
		return fn(os.Stdout)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err = fn(file); err != nil {
		_ = file.Close()
		_ = os.Remove(out)
		return err
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	slog.Info("Wrote output", slog.String("file", out))
	return nil
}

func newGenerateCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate codes and write them as a text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := flags.load()
			if err != nil {
				return err
			}
			return flags.write(b.Filename(), b.WriteText)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newPrintCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Write a print-ready HTML document of the cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := flags.load()
			if err != nil {
				return err
			}
			r, err := card.New(cfg.Card)
			if err != nil {
				return err
			}
			return flags.write(b.PrintFilename(), func(w io.Writer) error {
				return export.Print(cmd.Context(), w, cfg.Print, b, r)
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newCardsCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Write a zip archive with one card image per code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := flags.load()
			if err != nil {
				return err
			}
			r, err := card.New(cfg.Card)
			if err != nil {
				return err
			}
			return flags.write(b.ArchiveFilename(), func(w io.Writer) error {
				return export.Archive(cmd.Context(), w, b, r)
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func setupLogger(cfg server.LogConfig) {
	opts := &slog.HandlerOptions{
		AddSource: cfg.AddSource,
		Level:     cfg.Level,
	}

	var handler slog.Handler
	if cfg.Format == server.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	if !cfg.LogStatic {
		handler = xslog.NewFilterHandler(handler, xslog.DropAttrPrefix("path", "/static/"))
	}
	slog.SetDefault(slog.New(handler))
}
