package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opsb/rolodex"
	"github.com/opsb/rolodex/openapi"
	"github.com/opsb/rolodex/writer"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging manifest values and CLI overrides.
type GenerateConfig struct {
	Manifest string
	Out      string
	Format   string
	Title    string
	Version  string
	Locale   string
	Workers  int
	Stdout   bool
	Verbose  bool
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a route manifest into an OpenAPI document",
		Long: "Render a route manifest into an OpenAPI document. " +
			"Document info from the manifest can be overridden via flags.",
		Example: strings.TrimSpace(`  rolodex generate --manifest rolodex.yaml --out openapi.json
  rolodex generate -m rolodex.yaml --format yaml --stdout`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("manifest", "m", "", "Path to the route manifest (YAML)")
	flags.StringP("out", "o", "", "Output file (derived from format when omitted)")
	flags.String("format", "", "Output format (json|yaml); defaults to json")
	flags.String("title", "", "Override the document title")
	flags.String("api-version", "", "Override the document version")
	flags.String("locale", "", "Locale for locale-keyed route descriptions")
	flags.Int("workers", 0, "Record construction workers (0 selects the default)")
	flags.Bool("stdout", false, "Write the document to stdout instead of a file")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := GenerateConfig{Format: "json"}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil {
		cfg.Verbose = verbose
	}

	cfg.Manifest = strings.TrimSpace(cfg.Manifest)
	if cfg.Manifest == "" {
		return nil, newUsageError("generate: --manifest is required")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		cfg.Format = "json"
	case "yaml", "yml":
		cfg.Format = "yaml"
	default:
		return nil, newUsageError(fmt.Sprintf("generate: unsupported --format %q (allowed: json, yaml)", cfg.Format))
	}

	if cfg.Out == "" {
		cfg.Out = "openapi." + cfg.Format
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("manifest") {
		value, err := flags.GetString("manifest")
		if err != nil {
			return err
		}
		cfg.Manifest = value
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = value
	}
	if flags.Changed("title") {
		value, err := flags.GetString("title")
		if err != nil {
			return err
		}
		cfg.Title = value
	}
	if flags.Changed("api-version") {
		value, err := flags.GetString("api-version")
		if err != nil {
			return err
		}
		cfg.Version = value
	}
	if flags.Changed("locale") {
		value, err := flags.GetString("locale")
		if err != nil {
			return err
		}
		cfg.Locale = value
	}
	if flags.Changed("workers") {
		value, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Workers = value
	}
	if flags.Changed("stdout") {
		value, err := flags.GetBool("stdout")
		if err != nil {
			return err
		}
		cfg.Stdout = value
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	manifest, err := LoadManifest(cfg.Manifest)
	if err != nil {
		return err
	}

	gen, err := manifest.Config()
	if err != nil {
		return err
	}

	if cfg.Title != "" {
		gen.Title = cfg.Title
	}
	if cfg.Version != "" {
		gen.Version = cfg.Version
	}
	if cfg.Locale != "" {
		gen.Locale = cfg.Locale
	}
	gen.Workers = cfg.Workers
	gen.Logger = newLogger(cfg.Verbose)
	gen.Processor = openapi.NewProcessor(openapi.Format(cfg.Format))

	if cfg.Stdout {
		gen.Writer = writer.StdoutWriter{}
	} else {
		gen.Writer = &writer.FileWriter{Path: cfg.Out}
	}

	result, err := rolodex.Generate(ctx, gen)
	if err != nil {
		return err
	}

	for _, name := range result.Unresolved {
		fmt.Fprintf(os.Stderr, "warning: unresolved schema reference %q\n", name)
	}
	if !cfg.Stdout {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %d routes)\n", cfg.Out, result.Written, len(result.Routes))
	}
	return nil
}

// newLogger builds the pass logger: quiet by default, debug-level text
// output on stderr when verbose.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
