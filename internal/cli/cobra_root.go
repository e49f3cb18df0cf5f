package cli

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"tasklog/internal/calendar"
	"tasklog/internal/config"
	"tasklog/internal/mcpserver"
	"tasklog/internal/services"
	"tasklog/internal/validation"
)

const defaultTimeout = 30 * time.Second

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	openApp AppOpener
	version string
}

// Option configures a RootCommand.
type Option func(*RootCommand)

// WithAppOpener replaces OpenApp, the way commands obtain their services.
func WithAppOpener(opener AppOpener) Option {
	return func(r *RootCommand) { r.openApp = opener }
}

// WithVersion sets the version reported by --version and the MCP server.
func WithVersion(version string) Option {
	return func(r *RootCommand) { r.version = version }
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...Option) *RootCommand {
	root := &RootCommand{
		openApp: OpenApp,
		version: "dev",
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   config.AppName,
		Short: "A command-line task tracking tool",
		Long: `tasklog tracks the time spent on named tasks, one tracking day at a time.

Only one task runs at a time. Starting, resuming or switching tasks always
acts on today's tasks; a tracking day begins at the configured day_start
(default 04:30), so late-night work counts towards the previous day.

EXAMPLES:
  tasklog start -c "write docs"        # Create and start a task
  tasklog switch -c "code review"      # Stop the running task, start a new one
  tasklog switch                       # Back to the previous task
  tasklog stop -d=25                   # Stop, counting 25 minutes since the last start
  tasklog report -y -t                 # Reports for yesterday and today
  tasklog report --from=2024-07-01     # Reports from July 1st until today

CONFIGURATION:
  Precedence: command-line flags > TASKLOG_* environment > settings file > defaults

  The settings file (settings.toml in the user config directory, or
  TASKLOG_CONFIG, or --config) is created with default values when missing.

    data_dir                   TASKLOG_DATA_DIR
    day_start                  TASKLOG_DAY_START
    storage.backend            TASKLOG_STORAGE_BACKEND (json, sqlite, postgres)
    storage.sqlite_filename    TASKLOG_STORAGE_SQLITE_FILENAME
    storage.postgres_url       TASKLOG_STORAGE_POSTGRES_URL
    display.color              TASKLOG_DISPLAY_COLOR
    application.timeout        TASKLOG_APPLICATION_TIMEOUT
    application.verbose        TASKLOG_APPLICATION_VERBOSE`,
		Version:       root.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent context of
// every command.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringP("config", "C", "", "Settings file (overrides TASKLOG_CONFIG)")
	flags.String("data-dir", "", "Directory holding the tracked days (overrides TASKLOG_DATA_DIR)")
	flags.String("backend", "", "Storage backend: json, sqlite or postgres (overrides TASKLOG_STORAGE_BACKEND)")
	flags.String("day-start", "", "Time of day at which a tracking day begins, HH:MM (overrides TASKLOG_DAY_START)")
	flags.Bool("no-color", false, "Disable colored report output")
	flags.Bool("verbose", false, "Enable debug output on stderr")
}

// configPath returns the --config flag value.
func (r *RootCommand) configPath() string {
	path, _ := r.cmd.PersistentFlags().GetString("config")
	return path
}

// overrides collects the global flags that were set explicitly.
func (r *RootCommand) overrides() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		o.DataDir = &v
	}
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		o.Backend = &v
	}
	if flags.Changed("day-start") {
		v, _ := flags.GetString("day-start")
		o.DayStart = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		o.NoColor = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	return o
}

// withApp opens the App, bounds the command by the configured timeout and
// releases the App afterwards.
func (r *RootCommand) withApp(cmd *cobra.Command, run func(ctx context.Context, app *App) error) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	app, err := r.openApp(parent, r.configPath(), r.overrides())
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}
	defer app.Close()

	timeout := defaultTimeout
	if app.Config != nil && app.Config.Application.Timeout > 0 {
		timeout = app.Config.Application.Timeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	return run(ctx, app)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.startCommand(),
		r.stopCommand(),
		r.switchCommand(),
		r.reportCommand(),
		r.currentCommand(),
		r.renameCommand(),
		r.listCommand(),
		r.deleteCommand(),
		r.configCommand(),
		r.mcpCommand(),
	)
}

func (r *RootCommand) startCommand() *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "start [TASK]",
		Short: "Start work on a task",
		Long: `Start work on a task.

Without TASK the most recently stopped task is resumed. With TASK the single
task whose name contains TASK is resumed, or a new task called TASK is
created with --create.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewStartCommand(app, cmd.OutOrStdout()).Execute(ctx, strings.Join(args, " "), create)
			})
		},
	}
	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the task before starting it; requires TASK")
	return cmd
}

func (r *RootCommand) stopCommand() *cobra.Command {
	var (
		minutes int
		date    string
	)
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop work on the running task",
		Long: `Stop work on the running task.

--duration stops the task that many minutes after it was last started.
--date stops the task still running on an earlier tracking day and
requires --duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts services.StopOptions
			if cmd.Flags().Changed("duration") {
				d, err := validation.NewRequestValidator().StopDuration(float64(minutes))
				if err != nil {
					return NewErrorHandler().Handle("stop task", err)
				}
				opts.Duration = &d
			}
			if date != "" {
				parsed, err := calendar.ParseDate(date)
				if err != nil {
					return NewErrorHandler().Handle("stop task", err)
				}
				opts.Date = &parsed
			}
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewStopCommand(app, cmd.OutOrStdout()).Execute(ctx, opts)
			})
		},
	}
	cmd.Flags().IntVarP(&minutes, "duration", "d", 0, "Task duration in minutes since the last start")
	cmd.Flags().StringVar(&date, "date", "", "Tracking day (YYYY-MM-DD) of the running task; requires --duration")
	return cmd
}

func (r *RootCommand) switchCommand() *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "switch [TASK]",
		Short: "Switch to a different task",
		Long: `Stop the running task and start another.

Without TASK the previous task is resumed. With TASK the single task whose
name contains TASK is resumed, or a new task called TASK is created with
--create.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewSwitchCommand(app, cmd.OutOrStdout()).Execute(ctx, strings.Join(args, " "), create)
			})
		},
	}
	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the task before switching to it; requires TASK")
	return cmd
}

func (r *RootCommand) reportCommand() *cobra.Command {
	var (
		req      services.ReportRequest
		dates    []string
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a report of the tasks worked on",
		Long: `Print a report of the tasks worked on per tracking day.

Without a selector the report covers today. --from/--to select an inclusive
range (--to defaults to today) and cannot be combined with the other
selectors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range dates {
				d, err := calendar.ParseDate(raw)
				if err != nil {
					return NewErrorHandler().Handle("generate report", err)
				}
				req.Dates = append(req.Dates, d)
			}
			bounds := []struct {
				raw    string
				target **calendar.Date
			}{{from, &req.From}, {to, &req.To}}
			for _, b := range bounds {
				if b.raw == "" {
					continue
				}
				d, err := calendar.ParseDate(b.raw)
				if err != nil {
					return NewErrorHandler().Handle("generate report", err)
				}
				*b.target = &d
			}
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewReportCommand(app, cmd.OutOrStdout()).Execute(ctx, req)
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&req.Today, "today", "t", false, "Report on today")
	flags.BoolVarP(&req.Yesterday, "yesterday", "y", false, "Report on yesterday")
	flags.StringSliceVar(&dates, "dates", nil, "Dates to report on (YYYY-MM-DD, repeatable or comma separated)")
	flags.StringVar(&from, "from", "", "First day of the report (YYYY-MM-DD, inclusive)")
	flags.StringVar(&to, "to", "", "Last day of the report (YYYY-MM-DD, inclusive); requires --from")
	flags.BoolVar(&req.All, "all", false, "Report on every stored day")

	for _, selector := range []string{"today", "yesterday", "dates", "all"} {
		cmd.MarkFlagsMutuallyExclusive("from", selector)
		cmd.MarkFlagsMutuallyExclusive("to", selector)
	}
	return cmd
}

func (r *RootCommand) currentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the running task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewCurrentCommand(app, cmd.OutOrStdout()).Execute(ctx)
			})
		},
	}
}

func (r *RootCommand) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename TASK NEW_NAME",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewRenameCommand(app, cmd.OutOrStdout()).Execute(ctx, args[0], args[1])
			})
		},
	}
}

func (r *RootCommand) listCommand() *cobra.Command {
	var daysAgo int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a tracking day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewListCommand(app, cmd.OutOrStdout()).Execute(ctx, daysAgo)
			})
		},
	}
	cmd.Flags().IntVarP(&daysAgo, "days", "n", 0, "Number of days before today")
	return cmd
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK",
		Short: "Delete a task and all its time entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewDeleteCommand(app, cmd.OutOrStdout()).Execute(ctx, args[0])
			})
		},
	}
}

func (r *RootCommand) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(r.configPath()).LoadWithOverrides(r.overrides())
			if err != nil {
				return NewErrorHandler().Handle("load configuration", err)
			}
			return NewConfigCommand(cmd.OutOrStdout()).Show(cfg)
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the location of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand(cmd.OutOrStdout()).Path(config.NewLoader(r.configPath()))
		},
	}

	cmd.AddCommand(show, path)
	return cmd
}

func (r *RootCommand) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := r.openApp(ctx, r.configPath(), r.overrides())
			if err != nil {
				return NewErrorHandler().Handle("load configuration", err)
			}
			defer app.Close()

			s := mcpserver.NewServer(app.Services, r.version)
			if err := server.ServeStdio(s); err != nil {
				return NewErrorHandler().Handle("serve mcp", err)
			}
			return nil
		},
	}
}
