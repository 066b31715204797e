package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/logger"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// chartLanguageCount is how many languages the language chart shows.
const chartLanguageCount = 8

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [username]",
		Short: "Aggregates a GitHub profile once and prints the result",
		Long: `Fetches the profile and repositories of a GitHub user and prints the
aggregated statistics. Without a username the configured default is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			l, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = l.Sync() }()

			fetcher, err := newFetcher(cfg, l)
			if err != nil {
				return err
			}
			aggregator := newAggregator(fetcher, cfg, l)

			var username string
			if len(args) == 1 {
				username = args[0]
			}
			report, err := aggregator.Aggregate(cmd.Context(), username)
			if err != nil {
				return fmt.Errorf("failed to aggregate stats: %w", err)
			}

			output, _ := cmd.Flags().GetString("output")
			switch output {
			case "json":
				return writeJSON(cmd.OutOrStdout(), report)
			case "text":
				return writeText(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown output format %q (want json or text)", output)
			}
		},
	}
	cmd.Flags().StringP("output", "o", "json", "Output format: json or text")
	return cmd
}

func writeJSON(w io.Writer, report *usecase.Report) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func writeText(w io.Writer, report *usecase.Report) error {
	p := report.Profile
	fmt.Fprintf(w, "%s", p.Login)
	if p.Name != nil && *p.Name != "" {
		fmt.Fprintf(w, " (%s)", *p.Name)
	}
	fmt.Fprintln(w)
	if p.Bio != nil && *p.Bio != "" {
		fmt.Fprintln(w, *p.Bio)
	}
	fmt.Fprintf(w, "Followers: %d  Following: %d  Public repos: %d\n", p.Followers, p.Following, p.PublicRepos)
	fmt.Fprintf(w, "Stars: %d  Forks: %d\n", report.Totals.TotalStars, report.Totals.TotalForks)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(report.Languages) > 0 {
		fmt.Fprintln(tw, "\nLANGUAGE\tREPOS")
		for _, lc := range domain.TopLanguages(report.Languages, chartLanguageCount) {
			fmt.Fprintf(tw, "%s\t%d\n", lc.Language, lc.Count)
		}
	}
	if len(report.TopRepos) > 0 {
		fmt.Fprintln(tw, "\nREPOSITORY\tSTARS\tFORKS\tLANGUAGE")
		for _, r := range report.TopRepos {
			lang := "-"
			if r.Language != nil && *r.Language != "" {
				lang = *r.Language
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Name, r.StargazersCount, r.ForksCount, lang)
		}
	}
	return tw.Flush()
}
