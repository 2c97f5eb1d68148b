package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rewind/internal/review"
)

// NewParseCommand builds the "parse" subcommand: report + roster in, parsed
// timeline out.
func NewParseCommand() *cobra.Command {
	var (
		reportPath string
		rosterPath string
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a report file into timeline frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, roster, err := loadInputs(reportPath, rosterPath)
			if err != nil {
				return err
			}

			rep := review.ParseReport(text, roster)
			if summary {
				printSummary(cmd, rep)
				return nil
			}
			return writeJSON(cmd, rep)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "path to the report text file (required)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to the roster YAML file (required)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print counts instead of full JSON")
	_ = cmd.MarkFlagRequired("report")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

// NewRolesCommand builds the "roles" subcommand: prints the puuid → role
// map from the report's final-stats section.
func NewRolesCommand() *cobra.Command {
	var (
		reportPath string
		rosterPath string
	)

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Extract the role map from a report file",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, roster, err := loadInputs(reportPath, rosterPath)
			if err != nil {
				return err
			}
			return writeJSON(cmd, review.ParseRoles(text, roster))
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "path to the report text file (required)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to the roster YAML file (required)")
	_ = cmd.MarkFlagRequired("report")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

func loadInputs(reportPath, rosterPath string) (string, []review.Participant, error) {
	text, err := os.ReadFile(reportPath)
	if err != nil {
		return "", nil, fmt.Errorf("read report: %w", err)
	}

	rosterRaw, err := os.ReadFile(rosterPath)
	if err != nil {
		return "", nil, fmt.Errorf("read roster: %w", err)
	}

	var roster []review.Participant
	if err := yaml.Unmarshal(rosterRaw, &roster); err != nil {
		return "", nil, fmt.Errorf("parse roster yaml: %w", err)
	}

	return string(text), roster, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(cmd *cobra.Command, rep *review.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "events:     %d\n", len(rep.Events))
	fmt.Fprintf(out, "snapshots:  %d\n", len(rep.Snapshots))
	fmt.Fprintf(out, "frames:     %d\n", len(rep.Frames))
	fmt.Fprintf(out, "roles:      %d\n", len(rep.Roles))
	fmt.Fprintf(out, "collisions: %d\n", rep.Collisions)

	byCategory := map[review.EventCategory]int{}
	for _, ev := range rep.Events {
		byCategory[ev.Category]++
	}
	for _, cat := range []review.EventCategory{
		review.CategoryKill, review.CategoryObjective, review.CategoryTurret,
		review.CategoryInhibitor, review.CategoryNexus, review.CategoryUnknown,
	} {
		if n := byCategory[cat]; n > 0 {
			fmt.Fprintf(out, "  %-10s %d\n", cat, n)
		}
	}
}
