package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"conbi/internal/auth"
	"conbi/internal/config"
	"conbi/internal/store"
	"conbi/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "conbi",
	Short: "A personal task manager for the terminal",
	Long: `conbi is a terminal task manager with accounts, categories and due dates.
Running it with no arguments opens the full-screen interface.`,
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *appEnv) error {
		return tui.Run(env.auth, env.store)
	}),
}

// appEnv bundles the shared runtime pieces every command needs.
type appEnv struct {
	cfg   config.Config
	auth  *auth.Service
	store *store.Store
}

// withEnv wraps a command function, wiring config, database, store and auth
// before it runs and closing the database after.
func withEnv(fn func(*cobra.Command, []string, *appEnv) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := store.Open(cfg.DatabasePath())
		if err != nil {
			return err
		}
		defer store.Close(db)

		authSvc, err := auth.New(db, cfg)
		if err != nil {
			return err
		}

		return fn(cmd, args, &appEnv{
			cfg:   cfg,
			auth:  authSvc,
			store: store.New(db),
		})
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conbi %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(versionCmd)
}
