package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/drydock/internal/config"
	"github.com/zulandar/drydock/internal/db"
	"golang.org/x/term"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	cmd.AddCommand(newDBSeedCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create and migrate the Drydock database",
		Long:  "Creates the MySQL database if needed (sqlite files are created on open) and migrates all tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded %s config from %s\n", cfg.Database.Driver, configPath)

	if cfg.Database.Driver == config.DriverMySQL {
		if err := createMySQLDatabase(out, cfg.Database); err != nil {
			return err
		}
	}
	if err := migrate(out, cfg.Database); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nDrydock database initialized successfully.")
	return nil
}

func createMySQLDatabase(out io.Writer, cfg config.DatabaseConfig) error {
	adminDB, err := db.ConnectAdmin(cfg)
	if err != nil {
		return err
	}
	defer db.Close(adminDB)
	fmt.Fprintf(out, "Connected to MySQL at %s:%d\n", cfg.Host, cfg.Port)

	if err := db.CreateDatabase(adminDB, cfg.Name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Database %s ready\n", cfg.Name)
	return nil
}

func migrate(out io.Writer, cfg config.DatabaseConfig) error {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-initialize the Drydock database",
		Long: `Drops the Drydock database (or deletes the sqlite file) and re-creates
an empty schema. Asks for confirmation unless --yes is given; refuses to run
unattended without --yes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	target := cfg.Database.Name
	if cfg.Database.Driver == config.DriverSQLite {
		target = cfg.Database.Path
	}

	if !skipConfirm {
		if !interactive(cmd.InOrStdin()) {
			return fmt.Errorf("refusing to reset %s without --yes: stdin is not a terminal", target)
		}
		if !confirmReset(cmd, target) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if err := os.Remove(cfg.Database.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", cfg.Database.Path, err)
		}
		fmt.Fprintf(out, "Removed %s\n", cfg.Database.Path)
	default:
		adminDB, err := db.ConnectAdmin(cfg.Database)
		if err != nil {
			return err
		}
		err = db.DropDatabase(adminDB, cfg.Database.Name)
		if err == nil {
			err = db.CreateDatabase(adminDB, cfg.Database.Name)
		}
		db.Close(adminDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Dropped and re-created database %s\n", cfg.Database.Name)
	}

	if err := migrate(out, cfg.Database); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nDrydock database reset successfully.")
	return nil
}

// interactive reports whether in can prompt a person. Non-file readers
// (tests, pipes wired through cobra) are treated as scripted input.
func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

func confirmReset(cmd *cobra.Command, target string) bool {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "WARNING: This will permanently delete all data in %s.\n", target)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}

func newDBSeedCmd() *cobra.Command {
	var (
		configPath  string
		fixturePath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture into the database",
		Long: `Upserts the rows of a YAML fixture keyed by table name (clients, vessels,
projects, work_orders, disciplines, staff, timesheets). Field names match the
JSON API. Rows are matched on id, so seeding twice is harmless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSeed(cmd, configPath, fixturePath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	cmd.Flags().StringVarP(&fixturePath, "file", "f", "", "fixture file to load (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runDBSeed(cmd *cobra.Command, configPath, fixturePath string) error {
	fixture, err := db.LoadFixture(fixturePath)
	if err != nil {
		return err
	}
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Seed(gormDB, fixture); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d rows from %s\n", fixture.Count(), fixturePath)
	return nil
}
