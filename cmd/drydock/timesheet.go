package main

import (
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/drydock/internal/db"
	"github.com/zulandar/drydock/internal/export"
	"github.com/zulandar/drydock/internal/logging"
	"github.com/zulandar/drydock/internal/timesheet"
)

func newTimesheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timesheet",
		Aliases: []string{"ts"},
		Short:   "Timesheet reporting commands",
	}

	cmd.AddCommand(newTimesheetListCmd())
	cmd.AddCommand(newTimesheetExportCmd())
	cmd.AddCommand(newTimesheetImportCmd())
	return cmd
}

// listFlags are the filter and sort flags shared by list and export.
type listFlags struct {
	staff     string
	project   string
	workOrder string
	from      string
	to        string
	sortField string
	sortOrder string
}

func (l *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&l.staff, "staff", "", "filter by staff id")
	cmd.Flags().StringVar(&l.project, "project", "", "filter by project id")
	cmd.Flags().StringVar(&l.workOrder, "work-order", "", "filter by work order id")
	cmd.Flags().StringVar(&l.from, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&l.to, "to", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&l.sortField, "sort", "", "sort field, e.g. date, staffName, hours")
	cmd.Flags().StringVar(&l.sortOrder, "order", "", "sort order: asc or desc")
}

// parse validates the flags the same way the API validates query parameters.
func (l *listFlags) parse() (timesheet.Filter, timesheet.Sort, error) {
	return timesheet.ParseQuery(url.Values{
		"staffId":     {l.staff},
		"projectId":   {l.project},
		"workOrderId": {l.workOrder},
		"startDate":   {l.from},
		"endDate":     {l.to},
		"sortField":   {l.sortField},
		"sortOrder":   {l.sortOrder},
	})
}

func newTimesheetListCmd() *cobra.Command {
	var (
		configPath string
		flags      listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timesheets",
		Long:  "Lists timesheets joined to staff, work order, project, vessel and client. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimesheetList(cmd, configPath, flags)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	flags.register(cmd)
	return cmd
}

func runTimesheetList(cmd *cobra.Command, configPath string, flags listFlags) error {
	f, s, err := flags.parse()
	if err != nil {
		return err
	}
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	rows, err := timesheet.New(gormDB).List(cmd.Context(), f, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No timesheets found.")
		return nil
	}

	var total float64
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTAFF\tTASK\tDESCRIPTION\tPROJECT\tVESSEL\tCLIENT\tHOURS")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.TimesheetID, r.Date, dash(r.StaffName), r.TaskNumber, dash(truncate(r.Description, 30)),
			dash(r.ProjectName), dash(r.VesselName), dash(r.ClientName), formatHours(r.Hours))
		total += r.Hours
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d timesheets, %s hours\n", len(rows), formatHours(total))
	return nil
}

func newTimesheetExportCmd() *cobra.Command {
	var (
		configPath string
		output     string
		job        string
		flags      listFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export timesheets to an XLSX workbook",
		Long: `Writes the filtered timesheet listing to an XLSX workbook. With --job,
runs the named export from the config immediately instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if job != "" {
				return runTimesheetExportJob(cmd, configPath, job)
			}
			return runTimesheetExport(cmd, configPath, output, flags)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	cmd.Flags().StringVarP(&output, "output", "o", "timesheets.xlsx", "workbook to write")
	cmd.Flags().StringVar(&job, "job", "", "run a configured export job by name")
	flags.register(cmd)
	return cmd
}

func runTimesheetExport(cmd *cobra.Command, configPath, output string, flags listFlags) error {
	f, s, err := flags.parse()
	if err != nil {
		return err
	}
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	rows, err := timesheet.New(gormDB).List(cmd.Context(), f, s)
	if err != nil {
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := export.WriteXLSX(file, rows); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d timesheets to %s\n", len(rows), output)
	return nil
}

func runTimesheetExportJob(cmd *cobra.Command, configPath, job string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sched, err := export.NewScheduler(cfg.Exports, timesheet.New(gormDB), logger.Named("export"))
	if err != nil {
		return err
	}
	path, err := sched.RunJob(cmd.Context(), job)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Export %s written to %s\n", job, path)
	return nil
}

func newTimesheetImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import timesheets from an XLSX workbook",
		Long: `Reads the first worksheet of a workbook whose header names the columns
Staff ID, Work Order ID, Date and Hours, and inserts every row in one
transaction. Nothing is written if any row is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimesheetImport(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	return cmd
}

func runTimesheetImport(cmd *cobra.Command, configPath, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sheets, err := export.ReadXLSX(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	n, err := timesheet.New(gormDB).Import(cmd.Context(), sheets)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d timesheets from %s\n", n, path)
	return nil
}
