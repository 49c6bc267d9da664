package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hellenic-development/imgmirror"
	"github.com/hellenic-development/imgmirror/pkg/config"
	"github.com/hellenic-development/imgmirror/pkg/extractor"
	"github.com/hellenic-development/imgmirror/pkg/imager"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = imgmirror.Version

// cliOptions holds the raw flag values. Only flags the user actually set
// override the config file.
type cliOptions struct {
	configFile string
	docsDir    string
	imageDir   string
	pattern    string
	extensions []string
	userAgent  string
	referer    string
	timeout    time.Duration
	rate       float64
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o cliOptions

	rootCmd := &cobra.Command{
		Use:   "imgmirror",
		Short: "Mirror CSDN images referenced by markdown documents",
		Long: "Scans a documentation tree for images hosted on the CSDN CDN and downloads each one " +
			"into a local directory, skipping images that are already there. Documents are never modified.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&o.configFile, "config", "c", "", "YAML config file (paths in it are relative to the file)")
	flags.StringVarP(&o.docsDir, "docs", "d", "", "Documents root (default \"./docs\")")
	flags.StringVarP(&o.imageDir, "out", "o", "", "Image directory (default \"./.vitepress/public/images/csdn\")")
	flags.StringVar(&o.pattern, "pattern", "", "Regular expression matching image URLs (default: CSDN image CDN)")
	flags.StringSliceVar(&o.extensions, "ext", nil, "Document extensions, repeatable (default \".md\")")
	flags.StringVar(&o.userAgent, "user-agent", "", "User-Agent header for image requests")
	flags.StringVar(&o.referer, "referer", "", "Referer header for image requests (default \"https://blog.csdn.net/\")")
	flags.DurationVar(&o.timeout, "timeout", 0, "Per-image timeout, 0 waits forever")
	flags.Float64Var(&o.rate, "rate", 0, "Maximum requests per second, 0 is unlimited")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format: text or json")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imgmirror version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func run(cmd *cobra.Command, o *cliOptions) error {
	out := cmd.OutOrStdout()

	logger, closeLogger, err := newLogger(o.logFormat, out)
	if err != nil {
		return err
	}
	defer closeLogger()

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	ex, err := extractor.Compile(cfg.Pattern)
	if err != nil {
		return err
	}

	client := imager.NewClient(
		imager.WithUserAgent(cfg.HTTP.UserAgent),
		imager.WithReferer(cfg.HTTP.Referer),
		imager.WithTimeout(cfg.HTTP.Timeout),
		imager.WithRateLimit(cfg.HTTP.RequestsPerSecond),
	)

	if o.logFormat == logFormatText {
		cyan := color.New(color.FgCyan)
		cyan.Fprintln(out, "\n🖼  Image Mirror")
		cyan.Fprintln(out, "================")
		cyan.Fprintf(out, "Pattern: %s\n\n", ex.Pattern())
	}

	_, err = imgmirror.Run(cmd.Context(), imgmirror.Options{
		DocumentsRoot: cfg.DocumentsRoot,
		ImageDir:      cfg.ImageDir,
		Extractor:     ex,
		Extensions:    cfg.Extensions,
		Fetcher:       client,
		Logger:        logger,
	})
	return err
}

// loadConfig layers defaults, the optional config file and explicitly set
// flags, in that order.
func loadConfig(cmd *cobra.Command, o *cliOptions) (*config.Config, error) {
	var cfg *config.Config
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		base, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg = config.Default(base)
	}

	flags := cmd.Flags()
	if flags.Changed("docs") {
		cfg.DocumentsRoot = o.docsDir
	}
	if flags.Changed("out") {
		cfg.ImageDir = o.imageDir
	}
	if flags.Changed("pattern") {
		cfg.Pattern = o.pattern
	}
	if flags.Changed("ext") {
		cfg.Extensions = o.extensions
	}
	if flags.Changed("user-agent") {
		cfg.HTTP.UserAgent = o.userAgent
	}
	if flags.Changed("referer") {
		cfg.HTTP.Referer = o.referer
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = o.timeout
	}
	if flags.Changed("rate") {
		cfg.HTTP.RequestsPerSecond = o.rate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
