package henvdall

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/railwayapp/henvdall/internal/console"
	"github.com/railwayapp/henvdall/internal/envsync"
	"github.com/railwayapp/henvdall/internal/filesystems"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync .env file with .env.example template",
	Long: `Compares your .env.example file with your local .env file and prompts
you to fill in any missing environment variables.

The template can also be read from a repository:
  github://owner/repo[/tree/ref[/path]]
  git://github.com/owner/repo[#ref]`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		renderer := console.NewRenderer(out, console.WithNoColor(cfg.NoColor))
		renderer.Banner(banner())

		local := filesystems.NewLocalFS()
		templateFS, templatePath, cleanup, err := openTemplate(local, cfg.Example, cfg.Env)
		if err != nil {
			return err
		}
		defer cleanup()

		prompter, err := newPrompter(cmd, local)
		if err != nil {
			return err
		}

		syncer := envsync.NewSyncer(local, renderer, prompter,
			envsync.WithLogger(logger),
			envsync.WithMarker(cfg.Marker),
			envsync.WithTemplateFS(templateFS))

		_, err = syncer.Sync(cmd.Context(), envsync.Request{
			TemplatePath: templatePath,
			EnvPath:      cfg.Env,
			BackupPath:   cfg.Backup,
		})
		return err
	},
}

func init() {
	syncCmd.Flags().StringP("example", "e", "", "path or URI of the .env.example template (default: discovered next to --env)")
	syncCmd.Flags().StringP("env", "f", ".env", "path to .env file")
	syncCmd.Flags().StringP("backup", "b", "", "path for backup file (default: <env>.bak)")
	syncCmd.Flags().BoolP("yes", "y", false, "proceed without asking for confirmation")
	syncCmd.Flags().String("values", "", "dotenv file supplying values for missing keys")
}

// openTemplate returns the filesystem and path of the template. Without a
// location the template is discovered next to the env file.
func openTemplate(local *filesystems.LocalFS, location, envPath string) (filesystems.FileSystem, string, func(), error) {
	noop := func() {}

	if location == "" {
		dir := local.Dir(envPath)
		found, err := filesystems.DiscoverTemplate(local, dir)
		if err != nil {
			return nil, "", noop, fmt.Errorf("failed to discover template in %s: %w", dir, err)
		}
		if found == "" {
			found = local.Join(dir, filesystems.TemplateNames[0])
		}
		logger.Debug("Using template", zap.String("path", found))
		return local, found, noop, nil
	}

	filesystem, err := filesystems.NewFileSystem(location)
	if err != nil {
		return nil, "", noop, fmt.Errorf("failed to create filesystem: %w", err)
	}

	cleanup := noop
	if gitFS, ok := filesystem.(*filesystems.GitFS); ok {
		cleanup = func() { _ = gitFS.Cleanup() }
	}

	path, err := filesystems.ResolveTemplate(filesystem, filesystems.GetBasePath(location))
	if err != nil {
		cleanup()
		return nil, "", noop, fmt.Errorf("failed to resolve template %s: %w", location, err)
	}
	logger.Debug("Using template", zap.String("path", path), zap.String("location", location))
	return filesystem, path, cleanup, nil
}

// newPrompter answers from --values and --yes first, falling back to the
// terminal when one is attached
func newPrompter(cmd *cobra.Command, filesystem filesystems.FileSystem) (envsync.Prompter, error) {
	terminal := console.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.NoColor)
	if cfg.Values == "" && !cfg.Yes {
		return terminal, nil
	}

	var values map[string]string
	if cfg.Values != "" {
		var err error
		values, err = console.LoadValues(filesystem, cfg.Values)
		if err != nil {
			return nil, err
		}
	}

	var fallback envsync.Prompter = terminal
	if cfg.Values != "" && !console.IsTTY() {
		fallback = nil
	}
	return console.NewScriptedPrompter(values, cfg.Yes, fallback), nil
}
