package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/grahms/rtlweaver"
)

var (
	// Global flags
	verbose bool

	// apply flags
	templatePath string
	specPath     string
	outPath      string
	providerName string
	modelName    string
	clockNS      float64
	extraTasks   []string
	strict       bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rtlweaver",
	Short: "rtlweaver - guarded LLM edits for HDL templates",
	Long: `rtlweaver scans an HDL template for named @LLM_EDIT regions, asks an
LLM provider to fill only those regions, and merges the validated result
back while preserving every byte outside the markers.

Providers: openai, anthropic, gemini, echo (deterministic, no API key).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Fill @LLM_EDIT regions and write the patched template",
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		spec, err := rtlweaver.LoadSpec(specPath)
		if err != nil {
			return err
		}

		provider, err := newProviderRegistry().New(providerName, rtlweaver.ProviderConfig{Model: modelName})
		if err != nil {
			return err
		}
		logger.Info("provider selected",
			zap.String("provider", providerName),
			zap.String("model", modelName))

		opts := []rtlweaver.Option{rtlweaver.WithLogger(logger)}
		if strict {
			opts = append(opts, rtlweaver.WithCoverage(rtlweaver.CoverageStrict))
		}
		engine := rtlweaver.New(provider, opts...)

		var applyOpts []rtlweaver.ApplyOption
		if clockNS > 0 {
			applyOpts = append(applyOpts, rtlweaver.WithClockPeriodNS(clockNS))
		}
		if len(extraTasks) > 0 {
			applyOpts = append(applyOpts, rtlweaver.WithExtraTasks(extraTasks...))
		}

		patched, err := engine.Apply(cmd.Context(), string(template), spec, applyOpts...)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(patched), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("wrote patched template", zap.String("path", outPath))
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the @LLM_EDIT regions of a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		regions, err := rtlweaver.ScanRegions(string(template))
		if err != nil {
			return err
		}
		if len(regions) == 0 {
			fmt.Println("no @LLM_EDIT regions found")
			return nil
		}
		for _, r := range regions {
			fmt.Printf("%-7s %-28s span %d..%d (line %d)\n",
				r.Kind, r.Name, r.Start, r.End, r.Marker.Line)
		}
		return nil
	},
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the deterministic context derived from a spec sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := rtlweaver.LoadSpec(specPath)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rtlweaver.BuildContext(spec, clockNS), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	applyCmd.Flags().StringVarP(&templatePath, "template", "t", "", "path to template file with @LLM_EDIT markers (required)")
	applyCmd.Flags().StringVarP(&specPath, "spec", "s", "", "path to spec sheet, JSON or YAML (required)")
	applyCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path for the patched template (required)")
	applyCmd.Flags().StringVar(&providerName, "provider", envOr("LLM_PROVIDER", "echo"), "provider: openai|anthropic|gemini|echo")
	applyCmd.Flags().StringVar(&modelName, "model", os.Getenv("LLM_MODEL"), "model identifier (provider default when empty)")
	applyCmd.Flags().Float64Var(&clockNS, "clk-ns", 0, "override clock period in ns (derived from spec when 0)")
	applyCmd.Flags().StringArrayVar(&extraTasks, "extra", nil, "extra task lines for the provider (repeatable)")
	applyCmd.Flags().BoolVar(&strict, "strict", false, "fail when the provider leaves regions unfilled")
	_ = applyCmd.MarkFlagRequired("template")
	_ = applyCmd.MarkFlagRequired("spec")
	_ = applyCmd.MarkFlagRequired("out")

	scanCmd.Flags().StringVarP(&templatePath, "template", "t", "", "path to template file (required)")
	_ = scanCmd.MarkFlagRequired("template")

	contextCmd.Flags().StringVarP(&specPath, "spec", "s", "", "path to spec sheet (required)")
	contextCmd.Flags().Float64Var(&clockNS, "clk-ns", 0, "override clock period in ns")
	_ = contextCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(applyCmd, scanCmd, contextCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
