package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rotierp/internal/api"
	"rotierp/internal/apiclient"
	"rotierp/internal/config"
	"rotierp/internal/demo"
	"rotierp/internal/notify"
	"rotierp/internal/session"
	"rotierp/internal/tokenstore"
)

// app bundles the wired dependencies every command receives. Commands never
// touch process-global state; they go through this struct, so each one stays
// testable in isolation.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	store    *tokenstore.Store
	client   *apiclient.Client
	api      *api.API
	session  *session.Manager
	notifier notify.Notifier

	demoMode bool
	stopDemo func()
}

func (a *app) close() {
	if a.stopDemo != nil {
		a.stopDemo()
	}
	_ = a.log.Sync()
}

func newRootCmd() *cobra.Command {
	var (
		a        app
		baseURL  string
		demoMode bool
		verbose  bool
	)

	root := &cobra.Command{
		Use:   "roti",
		Short: "Terminal client for the Roti Factory ERP",
		Long: `roti talks to the Roti Factory ERP backend: authentication, manufacturing,
sales, finance, HR, counters, hotels, hostels, franchises, settings and
reports. Pass --demo to run against an embedded demo backend instead of a
real deployment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(baseURL, demoMode, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides ROTI_API_BASE_URL)")
	root.PersistentFlags().BoolVar(&demoMode, "demo", false, "run against an embedded demo backend")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newRegisterCmd(&a),
		newStatusCmd(&a),
		newProductsCmd(&a),
		newOrdersCmd(&a),
		newEmployeesCmd(&a),
		newInvoicesCmd(&a),
		newExpensesCmd(&a),
		newCountersCmd(&a),
		newHotelsCmd(&a),
		newHostelsCmd(&a),
		newFranchisesCmd(&a),
		newSettingsCmd(&a),
		newReportCmd(&a),
		newWatchCmd(&a),
		newDemoCmd(&a),
	)
	return root
}

// init wires the dependency chain: config -> store -> client -> api -> session.
// In demo mode an embedded backend is started first and announced, so
// offline/demo is always an explicit, surfaced state.
func (a *app) init(baseURL string, demoMode, verbose bool) error {
	a.cfg = config.Load()
	if baseURL != "" {
		a.cfg.APIBaseURL = baseURL + "/api"
		a.cfg.StatusBaseURL = baseURL
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		return err
	}
	a.log = log

	a.demoMode = demoMode
	if demoMode {
		server, err := demo.New(demo.Options{Secret: a.cfg.JWTSecret, Logger: log, Seed: true})
		if err != nil {
			return fmt.Errorf("start demo backend: %w", err)
		}
		origin, stop, err := server.Listen("127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("start demo backend: %w", err)
		}
		a.stopDemo = stop
		a.cfg.APIBaseURL = origin + "/api"
		a.cfg.StatusBaseURL = origin
		fmt.Fprintf(os.Stderr, "demo mode: embedded backend at %s (every account accepts password %q)\n", origin, demo.DemoPassword)
	}

	a.store = tokenstore.Open(a.cfg.TokenFile)
	a.notifier = notify.NewConsole(os.Stderr, log)
	a.client = apiclient.New(apiclient.Config{
		BaseURL:       a.cfg.APIBaseURL,
		StatusBaseURL: a.cfg.StatusBaseURL,
		Timeout:       a.cfg.HTTPTimeout,
		Store:         a.store,
		Notifier:      a.notifier,
		Logger:        log,
	})
	a.api = api.New(a.client)
	a.session = session.NewManager(a.api.Auth, a.store, log)
	return nil
}

// requireSession restores and re-validates the persisted session; commands
// that need authentication call this first
func (a *app) requireSession(cmd *cobra.Command) error {
	// The embedded backend starts empty each run; sign in as the seeded
	// manager so demo commands work out of the box.
	if a.demoMode {
		_, err := a.session.Login(cmd.Context(), "manager@roti.local", demo.DemoPassword)
		return err
	}
	if err := a.session.Initialize(cmd.Context()); err != nil {
		return fmt.Errorf("session invalid, please run `roti login`: %w", err)
	}
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in, run `roti login` first")
	}
	return nil
}
