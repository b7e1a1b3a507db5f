package main

import (
	"bytes"
	"context"
	"fmt"
	"gfd/pkg/availability"
	"gfd/pkg/common"
	"gfd/pkg/config"
	"gfd/pkg/decision"
	"gfd/pkg/display"
	"gfd/pkg/downloader"
	"gfd/pkg/i18n"
	"gfd/pkg/installed"
	"gfd/pkg/osinfo"
	"gfd/pkg/routines"
	"gfd/pkg/sfd"
	"gfd/pkg/status"
	"gfd/pkg/tui"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// App holds the wired collaborators for one invocation.
type App struct {
	Cfg      *config.Config
	Disp     display.Display
	Tr       *i18n.Translator
	Fetcher  *sfd.Fetcher
	Detector *osinfo.Detector
	Checker  *status.Checker
	State    *installed.FileStore
}

func newApp(cfg *config.Config) *App {
	disp := display.NewConsole()
	disp.SetVerbose(cfg.Verbose)

	fetcher := sfd.NewFetcher(downloader.NewDefaultDownloader(cfg.Timeout))
	resolver := availability.NewResolver(fetcher, availability.Options{
		URL:        cfg.URL,
		Attempts:   cfg.Attempts,
		RetryDelay: cfg.RetryDelay,
	})
	detector := osinfo.NewDetector()
	state := installed.NewFileStore(cfg.StateFile)

	return &App{
		Cfg:      cfg,
		Disp:     disp,
		Tr:       i18n.New(cfg.Lang),
		Fetcher:  fetcher,
		Detector: detector,
		Checker:  status.NewChecker(detector, resolver, state),
		State:    state,
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var app *App

	rootCmd := &cobra.Command{
		Use:   "gfd",
		Short: "Digital signature installer manager",
		Long:  "gfd checks which Soporte Firma Digital installer is published for this system and whether it is installed.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			setupLogging(cfg.Verbose)
			if cfg.ConfigFile != "" {
				slog.Debug("Loaded config file", "path", cfg.ConfigFile)
			}
			app = newApp(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), app)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       config.BuildVersion,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyURL, sfd.DefaultURL, "Installer page URL (http, https or file)")
	flags.String(config.KeyLang, "es", "Display language (es, en)")
	flags.Int(config.KeyAttempts, availability.DefaultAttempts, "Fetch attempts before giving up")
	flags.Duration(config.KeyRetryDelay, availability.DefaultRetryDelay, "Delay between fetch attempts")
	flags.Duration(config.KeyTimeout, downloader.DefaultTimeout, "HTTP request timeout")
	flags.String(config.KeyStateFile, config.DefaultStateFile(), "Installed-state file")
	flags.BoolP(config.KeyVerbose, "v", false, "Enable debug logging")

	appFn := func() *App { return app }
	rootCmd.AddCommand(
		newCheckCmd(appFn),
		newListCmd(appFn),
		newDetectCmd(appFn),
		newInstallCmd(appFn),
		&cobra.Command{
			Use:   "ui",
			Short: "Interactive status screen",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runUI(cmd.Context(), app)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			// Skips config loading.
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Println(config.GetBuildInfo())
			},
		},
	)
	return rootCmd
}

// familyCheck runs a check for an explicit family, or for the detected one.
func familyCheck(ctx context.Context, app *App, family string) (*decision.Report, error) {
	if family == "" {
		return app.Checker.Check(ctx)
	}
	f, err := common.ParseOSFamily(family)
	if err != nil {
		return nil, err
	}
	return app.Checker.CheckFamily(ctx, f)
}

func newCheckCmd(app func() *App) *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Report installed and available installers",
		Example: "gfd check --family debian",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			r, err := familyCheck(cmd.Context(), a, family)
			if err != nil {
				return err
			}
			a.Disp.RenderReport(r, a.Tr)
			return nil
		},
	}
	cmd.Flags().StringVarP(&family, "family", "f", "", "OS family to check instead of the detected one")
	return cmd
}

func newListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every installer published on the vendor page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			list := a.Fetcher.Fetch(cmd.Context(), a.Cfg.URL)
			if len(list) == 0 {
				a.Disp.Print(a.Tr.T("no_installers_found") + "\n")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, inst := range list {
				rows = append(rows, []string{inst.Name, inst.ChecksumOrNA()})
			}
			a.Disp.Print(display.RenderTable([]string{"NAME", "MD5"}, rows))
			return nil
		},
	}
}

func newDetectCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the detected OS family",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			family, ok := a.Detector.Detect(cmd.Context())
			if !ok {
				a.Disp.Print(a.Tr.T("os_not_supported") + "\n")
				return nil
			}
			a.Disp.Print(family.String() + "\n")
			return nil
		},
	}
}

func newInstallCmd(app func() *App) *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Run the installation routine for the recommended installer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			r, err := familyCheck(cmd.Context(), a, family)
			if err != nil {
				return err
			}
			out, err := install(cmd.Context(), a, a.Disp, r)
			if err != nil {
				return err
			}
			if out != "" {
				a.Disp.Print(out + "\n")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&family, "family", "f", "", "OS family to install for instead of the detected one")
	return cmd
}

// install runs the routine for the report's family when the report calls for it.
// It returns a status line for the user.
func install(ctx context.Context, a *App, disp display.Display, r *decision.Report) (string, error) {
	switch r.Outcome {
	case decision.UpToDate:
		return a.Tr.T("latest_version_installed"), nil
	case decision.UnsupportedOrUnavailable:
		return a.Tr.T("no_installers_found"), nil
	}

	runner := routines.NewRunner(routines.Supported, disp, a.State)
	ran, err := runner.Run(ctx, r.Family, *r.Recommended)
	if err != nil {
		return "", err
	}
	if !ran {
		return a.Tr.T("install_unsupported"), nil
	}
	return a.Tr.T("install_done"), nil
}

func runUI(ctx context.Context, a *App) error {
	// Routine output is captured so it does not draw over the screen.
	installFn := func(ctx context.Context, r *decision.Report) (string, error) {
		var buf bytes.Buffer
		msg, err := install(ctx, a, display.NewWriterDisplay(&buf), r)
		if err != nil {
			return "", err
		}
		return buf.String() + msg, nil
	}
	return tui.Run(ctx, tui.New(ctx, a.Checker.Check, installFn, a.Tr))
}
