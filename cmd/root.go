package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	pghttp "github.com/tanq16/pgfetch/internal/downloaders/http"
	"github.com/tanq16/pgfetch/internal/output"
	"github.com/tanq16/pgfetch/internal/report"
	"github.com/tanq16/pgfetch/internal/scheduler"
	"github.com/tanq16/pgfetch/internal/utils"
)

var PgfetchVersion = "dev"

type rootOptions struct {
	folder        string
	files         int
	threads       int
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	reportPath    string
	baseURL       string
	debug         bool
}

// usageError marks problems with the command line; they are reported
// together with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:                "pgfetch --folder FOLDER --files COUNT --threads COUNT",
		Short:              "pgfetch bulk-downloads Project Gutenberg plain-text books",
		Version:            PgfetchVersion,
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"folder", "files", "threads"} {
				if !cmd.Flags().Changed(name) {
					return &usageError{fmt.Errorf("missing required flag --%s", name)}
				}
			}
			if err := opts.runConfig().Validate(); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.InitLogger(opts.debug)
			return run(cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.Flags().Var(newFirstStringFlag(&opts.folder), "folder", "Output folder (created if it does not exist)")
	cmd.Flags().Var(newCountFlag(&opts.files), "files", "Download identifiers 1 through this number")
	cmd.Flags().Var(newCountFlag(&opts.threads), "threads", "Maximum number of downloads in flight")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout, 0 for none (eg. 30s, 2m)")
	cmd.Flags().DurationVar(&opts.kaTimeout, "keep-alive-timeout", 90*time.Second, "Keep-alive timeout for idle connections")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "", "User agent (client default if empty)")
	cmd.Flags().StringVar(&opts.proxyURL, "proxy", "", "HTTP/HTTPS proxy URL (e.g., http://proxy.example.com:8080)")
	cmd.Flags().StringVar(&opts.proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	cmd.Flags().StringVar(&opts.proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a YAML run report to this path")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", utils.DefaultBaseURL, "Archive base URL")
	cmd.Flags().MarkHidden("base-url")
	return cmd
}

func (o *rootOptions) runConfig() utils.RunConfig {
	return utils.RunConfig{
		Folder:  o.folder,
		Files:   o.files,
		Threads: o.threads,
		BaseURL: o.baseURL,
	}
}

func (o *rootOptions) httpConfig() utils.HTTPClientConfig {
	cfg := utils.HTTPClientConfig{
		Timeout:        o.timeout,
		KATimeout:      o.kaTimeout,
		ProxyURL:       o.proxyURL,
		ProxyUsername:  o.proxyUsername,
		ProxyPassword:  o.proxyPassword,
		UserAgent:      o.userAgent,
		MaxIdlePerHost: o.threads,
	}
	utils.SplitProxyAuth(&cfg)
	return cfg
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg := opts.runConfig()
	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := utils.EnsureFolder(cfg.Folder); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	log.Debug().Str(utils.LogOpKey, "cmd").Str("folder", cfg.Folder).Int("files", cfg.Files).Int("threads", cfg.Threads).Msg("starting run")

	client := utils.NewHTTPClient(opts.httpConfig())
	downloader := pghttp.NewSimpleDownloader(client)

	startedAt := time.Now()
	result, err := scheduler.Run(cmd.Context(), utils.BuildJobs(cfg), cfg.Threads, downloader, printer)
	if err != nil {
		var panicErr *scheduler.TaskPanicError
		if errors.As(err, &panicErr) {
			log.Error().Str(utils.LogOpKey, "cmd").Int("id", panicErr.JobID).Bytes("stack", panicErr.Stack).Msg("task panicked")
		}
		return err
	}
	printer.Summary(result)

	if opts.reportPath != "" {
		if err := report.Write(opts.reportPath, report.New(cfg, result, startedAt)); err != nil {
			// the downloads are done; a missing report does not fail the run
			printer.Error(err.Error())
		} else {
			printer.Detail(fmt.Sprintf("Report written to %s", opts.reportPath))
		}
	}
	return nil
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	printer := output.NewPrinter(stdout, stderr)
	printer.Error(fmt.Sprintf("Error: %v", err))
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, utils.Usage)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
