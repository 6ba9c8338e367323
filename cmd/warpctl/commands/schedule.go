package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jholhewres/warp/pkg/warp"
	"github.com/jholhewres/warp/pkg/warp/config"
	"github.com/jholhewres/warp/pkg/warp/job"
)

// newScheduleCmd builds the `warpctl schedule` command for inspecting a
// config file's declarative job list.
func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect a scheduler config's declarative job list",
	}

	cmd.AddCommand(
		newScheduleListCmd(),
		newScheduleExplainCmd(),
		newScheduleRunCmd(),
	)

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.LoadFromFile(path)
}

func newScheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every job declared in the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.Jobs) == 0 {
				fmt.Println("No jobs declared.")
				return nil
			}
			for _, j := range cfg.Jobs {
				status := "enabled"
				if !j.Enabled {
					status = "disabled"
				}
				fmt.Printf("%-20s %-12s %-8s %s\n", j.Name, j.Kind, status, scheduleSummary(j))
			}
			return nil
		},
	}
}

func scheduleSummary(j config.JobSpec) string {
	switch j.Kind {
	case "cron":
		return j.Cron
	case "descriptor":
		return j.Descriptor
	case "date":
		return j.At
	case "interval":
		return fmt.Sprintf("every %+v", j.Every)
	default:
		return "?"
	}
}

func newScheduleExplainCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "explain <name>",
		Short: "Print the next fire instants for a declared job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			zone, err := zoneFromConfig(cfg)
			if err != nil {
				return err
			}

			var spec *config.JobSpec
			for i := range cfg.Jobs {
				if cfg.Jobs[i].Name == args[0] {
					spec = &cfg.Jobs[i]
					break
				}
			}
			if spec == nil {
				return fmt.Errorf("no job named %q in config", args[0])
			}

			now := time.Now().In(zone)
			trig, err := warp.TriggerFromSpec(*spec, zone, now)
			if err != nil {
				return err
			}

			cursor := now
			for i := 0; i < count; i++ {
				next, ok := trig.Next(&cursor, now)
				if !ok {
					fmt.Println("(no further fires)")
					break
				}
				fmt.Println(next.Format(time.RFC3339))
				cursor = next
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of upcoming fires to print")
	return cmd
}

func zoneFromConfig(cfg *config.Config) (*time.Location, error) {
	if cfg.Zone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(cfg.Zone)
}

func newScheduleRunCmd() *cobra.Command {
	var startStr, endStr string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Dry-run a backtest over the config's jobs, logging each dispatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			zone, err := zoneFromConfig(cfg)
			if err != nil {
				return err
			}
			start, err := time.ParseInLocation(time.RFC3339, startStr, zone)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			end, err := time.ParseInLocation(time.RFC3339, endStr, zone)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			s := warp.New(warp.WithZone(zone))
			funcs := make(map[string]job.Func)
			for _, j := range cfg.Jobs {
				name := j.Name
				funcs[name] = func(at time.Time) error {
					fmt.Printf("[%s] would run %q\n", at.Format(time.RFC3339), name)
					return nil
				}
			}
			if err := s.LoadJobsFromConfig(cfg, funcs); err != nil {
				return err
			}

			return s.RunBacktest(context.Background(), start, end)
		},
	}
	cmd.Flags().StringVar(&startStr, "start", "", "backtest window start, RFC3339 (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "backtest window end, RFC3339 (required)")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}
