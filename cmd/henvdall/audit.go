package henvdall

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railwayapp/henvdall/internal/audit"
	"github.com/railwayapp/henvdall/internal/console"
	"github.com/railwayapp/henvdall/internal/export"
	"github.com/railwayapp/henvdall/internal/filesystems"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit .env file for placeholder values",
	Long: `Scans your .env file and warns about values that look like placeholders
(e.g., "YOUR_API_KEY_HERE", "admin123") that should be changed before
running your application.

Exits with status 1 when placeholder values are found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher, err := cfg.Matcher()
		if err != nil {
			return err
		}

		var exporter export.Exporter
		var renderer audit.Renderer = console.NopRenderer{}
		if cfg.Output == "" || cfg.Output == "text" {
			r := console.NewRenderer(cmd.OutOrStdout(), console.WithNoColor(cfg.NoColor), console.WithMask(cfg.Mask))
			r.Banner(banner())
			r.Mode("Audit Mode:", "Detecting Placeholder Values")
			renderer = r
		} else {
			exporter, err = export.NewExporter(cfg.Output)
			if err != nil {
				return err
			}
		}

		auditor := audit.NewAuditor(filesystems.NewLocalFS(), matcher, renderer, logger)
		report, err := auditor.Audit(cmd.Context(), cfg.Env)
		if err != nil {
			return err
		}

		if exporter != nil {
			output, err := exporter.Export(report)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", exporter.Name(), err)
			}
			if _, err := cmd.OutOrStdout().Write(output); err != nil {
				return err
			}
		}

		if report.HasIssues() {
			return ErrIssuesFound
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().StringP("env", "f", ".env", "path to .env file")
	auditCmd.Flags().StringP("output", "o", "text", "output format: text, json, yaml, toml or dotenv")
	auditCmd.Flags().Bool("mask", false, "hide values of sensitive keys")
}
