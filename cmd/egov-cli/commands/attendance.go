package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"egovassist-backend/lib/attendstore"
	"egovassist-backend/lib/configutil"
	"egovassist-backend/lib/restyutil"
	"egovassist-backend/services/attendance"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	StudentId string `json:"student_id"`
	Password  string `json:"password"`
}

const defaultBaseUrl = "https://charusat.edu.in:912/eGovernance/"

func readConfig() (Config, error) {
	return configutil.ReadConfig[Config]("config.json5")
}

var (
	attendanceDetail *bool
	attendanceJson   *bool
	attendanceStore  *string
	attendanceDump   *string
)

func init() {
	attendanceDetail = attendanceCmd.Flags().Bool("detail", false, "Fetch the per-subject breakdown even when the dashboard reports a gross figure.")
	attendanceJson = attendanceCmd.Flags().Bool("json", false, "Print the raw result as JSON instead of a table.")
	attendanceStore = attendanceCmd.Flags().String("store", "", "Record the fetched summary in the given sqlite database.")
	attendanceDump = attendanceCmd.Flags().String("dump", "", "Dump raw portal traffic to the given directory.")
	rootCmd.AddCommand(attendanceCmd)
}

func newService(cfg Config) attendance.Service {
	opts := attendance.ServiceOptions{BaseUrl: cfg.BaseUrl}
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if *attendanceDump != "" {
		output, err := restyutil.NewFilesystemOutput(*attendanceDump)
		if err != nil {
			fatal("failed to create dump directory", err)
		}
		opts.DumpOutput = output
	}
	return attendance.NewService(opts)
}

func renderResult(res attendance.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Course", "Name", "Type", "Present", "Total", "%"})
	for _, s := range res.Summary.Subjects {
		t.AppendRow(table.Row{
			s.CourseCode, s.CourseName, s.ClassType,
			s.TotalPresent, s.TotalClasses, s.Percentage,
		})
	}
	t.Render()

	fmt.Printf(
		"overall: %v%% (calculated %v%%, %d/%d classes attended)\n",
		res.Summary.OverallPercentage,
		res.Summary.CalculatedPercentage,
		res.Summary.TotalPresent,
		res.Summary.TotalClasses,
	)
	if res.Summary.GrossAttendance != nil {
		fmt.Printf("portal gross figure: %v%%\n", *res.Summary.GrossAttendance)
	}
}

func storeResult(path, student string, res attendance.Result) {
	subjects, err := json.Marshal(res.Summary.Subjects)
	if err != nil {
		fatal("failed to marshal subjects", err)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		fatal("failed to open store", err)
	}
	defer database.Close()
	_, err = database.Exec(attendstore.Schema)
	if err != nil {
		fatal("failed to apply store schema", err)
	}

	store := attendstore.NewStore(database)
	err = store.Push(rootCmd.Context(), attendstore.Snapshot{
		Student:              student,
		Time:                 time.Now(),
		OverallPercentage:    res.Summary.OverallPercentage,
		CalculatedPercentage: res.Summary.CalculatedPercentage,
		GrossAttendance:      res.Summary.GrossAttendance,
		TotalPresent:         res.Summary.TotalPresent,
		TotalClasses:         res.Summary.TotalClasses,
		Subjects:             subjects,
	})
	if err != nil {
		fatal("failed to record snapshot", err)
	}
	slog.Info("recorded snapshot", "store", path, "student", student)
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance [student-id] [--detail] [--json] [--store <path/to/history.db>]",
	Short: "Fetches attendance for the student configured in config.json5.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			fatal("failed to read config", err)
		}
		if len(args) > 0 {
			cfg.StudentId = args[0]
		}

		slog.Info("fetching attendance", "student", cfg.StudentId)
		service := newService(cfg)

		t1 := time.Now()
		res := service.FetchAttendance(cmd.Context(), attendance.FetchRequest{
			StudentId:  cfg.StudentId,
			Password:   cfg.Password,
			FullDetail: *attendanceDetail,
		})
		slog.Info("fetch time", "seconds", time.Since(t1).Seconds())

		if *attendanceJson {
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				fatal("failed to marshal result", err)
			}
			fmt.Println(string(out))
		} else if res.Success {
			renderResult(res)
		}

		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)
			os.Exit(1)
		}
		if *attendanceStore != "" {
			storeResult(*attendanceStore, cfg.StudentId, res)
		}
	},
}
