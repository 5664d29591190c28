package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/arnavshah/shift-lookup-go/internal/bootstrap"
	"github.com/arnavshah/shift-lookup-go/internal/config"
	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/arnavshah/shift-lookup-go/pkg/session"
	"github.com/arnavshah/shift-lookup-go/pkg/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type options struct {
	datasetPath string
	locale      string
	numeric     bool
	jsonOutput  bool
}

// env holds what every command needs once flags are parsed
type env struct {
	ds       *dataset.Dataset
	collator *lookup.Collator
}

// load applies the flags set on cmd over the environment configuration
func (o *options) load(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.datasetPath != "" {
		cfg.Dataset.File = o.datasetPath
	}
	if o.locale != "" {
		cfg.Collation.Locale = o.locale
	}
	if cmd.Flags().Changed("numeric") {
		cfg.Collation.Numeric = o.numeric
	}

	ds, source, err := bootstrap.LoadDataset(cfg)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", source, err)
	}
	collator, err := bootstrap.Collator(cfg)
	if err != nil {
		return nil, err
	}
	return &env{ds: ds, collator: collator}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "shiftview",
		Short:         "Look up the shifts assigned to a person",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "JSON/YAML dataset file or CSV directory (default: DATASET_FILE, database or bundled data)")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "collation locale for day labels (default: COLLATION_LOCALE)")
	root.PersistentFlags().BoolVar(&opts.numeric, "numeric", true, "compare digits in day labels by value (default: COLLATION_NUMERIC)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newNotesCmd(opts),
		newSummaryCmd(opts),
		newTUICmd(opts),
	)
	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "List the names containing query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			names := lookup.Search(query, e.ds.Roster)
			if opts.jsonOutput {
				return printJSON(cmd, map[string]any{"names": names})
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a person's shifts grouped by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			s := session.New(e.ds.Lookup(e.collator))
			s.Select(args[0])
			view := s.View()

			if opts.jsonOutput {
				return printJSON(cmd, models.ShiftsResponse{
					Person: view.Selected,
					Groups: view.Groups,
					Total:  view.Total,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGroups(view.Selected, view.Groups, view.Total, tui.PlainStyles()))
			return nil
		},
	}
}

func newNotesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "Print the operational notes of every event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd, map[string]any{"notes": e.ds.Notes})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderNotes(e.ds.Notes, tui.PlainStyles()))
			return nil
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count the people, shifts and days in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			summary := e.ds.Summarize(e.collator)
			if opts.jsonOutput {
				return printJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "People:     %d\n", summary.People)
			fmt.Fprintf(out, "Shifts:     %d\n", summary.Shifts)
			fmt.Fprintf(out, "Unassigned: %d\n", summary.UnassignedShifts)
			events := make([]string, 0, len(summary.ShiftsByEvent))
			for event := range summary.ShiftsByEvent {
				events = append(events, event)
			}
			sort.Strings(events)
			for _, event := range events {
				fmt.Fprintf(out, "  %s: %d\n", event, summary.ShiftsByEvent[event])
			}
			fmt.Fprintln(out, "Days:")
			for _, day := range summary.Days {
				fmt.Fprintf(out, "  %s\n", day)
			}
			return nil
		},
	}
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Search and browse shifts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			m := tui.NewModel(session.New(e.ds.Lookup(e.collator)), e.ds.Notes, tui.DefaultStyles())
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
