// Package main provides the riskwatch CLI, built on the Cobra framework.
// It analyzes conversation transcripts for downplayed technical risks and
// presents the results in a TUI, as JSON, or as a Markdown escalation report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"riskwatch/src/broker"
	"riskwatch/src/config"
	"riskwatch/src/contracts"
	"riskwatch/src/ingest"
	"riskwatch/src/lexicon"
	"riskwatch/src/pipeline"
	"riskwatch/src/report"
	"riskwatch/src/store"
	"riskwatch/src/tui"
)

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "riskwatch",
	Short: "riskwatch - surface downplayed technical risks in team conversations",
	Long: `riskwatch analyzes conversation transcripts (CSV or JSON) for technical
concerns that were raised and then dismissed, downplayed, or left
unacknowledged. It scores sentiment per message, clusters related risk
mentions, and flags the exchanges worth a second look.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appConfig = config.LoadFromEnv()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript]",
	Short: "Analyze a transcript and review the flags interactively",
	Long: `Runs the full analysis on a transcript file and launches the interactive
TUI for reviewing flagged messages.

With --json: prints the complete analysis result as JSON and exits.
With --publish: additionally publishes flag and stats events to the broker
configured via RISKWATCH_BROKERS.
With --lexicon: analyzes with a named lexicon set from the lexicon store
(requires RISKWATCH_PG_DSN).

Example:
  riskwatch analyze transcript.csv
  riskwatch analyze transcript.csv --json
  riskwatch analyze transcript.csv --lexicon strict --publish`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		publish, _ := cmd.Flags().GetBool("publish")
		lexName, _ := cmd.Flags().GetString("lexicon")

		result, err := runAnalysis(cmd.Context(), args[0], lexName)
		if err != nil {
			return err
		}

		if publish {
			if err := publishResult(cmd.Context(), result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d flag events for request %s\n",
				len(result.Flags), result.RequestID)
		}

		if jsonMode {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		return tui.Start(result)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [transcript]",
	Short: "Render a Markdown escalation report for a transcript",
	Long: `Runs the full analysis on a transcript file and writes a Markdown
escalation report to stdout, or to a file with --output.

Example:
  riskwatch report transcript.csv
  riskwatch report transcript.csv --output escalation.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lexName, _ := cmd.Flags().GetString("lexicon")
		output, _ := cmd.Flags().GetString("output")

		result, err := runAnalysis(cmd.Context(), args[0], lexName)
		if err != nil {
			return err
		}

		md := report.Generate(result, time.Now())
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s\n", output)
		return nil
	},
}

var lexiconsCmd = &cobra.Command{
	Use:   "lexicons",
	Short: "Manage named lexicon sets in the lexicon store",
	Long: `Named lexicon sets live in the Postgres store configured via
RISKWATCH_PG_DSN and can be referenced from analyze/report with --lexicon.`,
}

var lexiconsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored lexicon names",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		names, err := st.ListLexicons(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lexicons stored.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var lexiconsSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save a lexicon set from a YAML overrides file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file is required")
		}
		lex, err := lexicon.LoadFile(file)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveLexicon(cmd.Context(), args[0], lex); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved lexicon %q\n", args[0])
		return nil
	},
}

var lexiconsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a stored lexicon set as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		lex, err := st.GetLexicon(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := lexicon.Encode(lex)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var lexiconsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored lexicon set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteLexicon(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted lexicon %q\n", args[0])
		return nil
	},
}

// runAnalysis loads the transcript, resolves the lexicon, and runs the
// pipeline once.
func runAnalysis(ctx context.Context, path, lexName string) (contracts.AnalysisResult, error) {
	lex, err := resolveLexicon(ctx, lexName)
	if err != nil {
		return contracts.AnalysisResult{}, err
	}

	p, err := pipeline.New(lex)
	if err != nil {
		return contracts.AnalysisResult{}, err
	}

	messages, err := ingest.Load(path)
	if err != nil {
		return contracts.AnalysisResult{}, ingest.WrapError(err)
	}

	requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())
	return p.Run(requestID, messages), nil
}

// resolveLexicon picks the lexicon for a run: a named set from the store,
// the configured overrides file, or the built-in default.
func resolveLexicon(ctx context.Context, name string) (lexicon.Lexicon, error) {
	if name == "" {
		return appConfig.Lexicon()
	}
	st, err := openStore()
	if err != nil {
		return lexicon.Lexicon{}, err
	}
	defer st.Close()
	return st.GetLexicon(ctx, name)
}

func openStore() (store.Store, error) {
	if appConfig.PostgresDSN == "" {
		return nil, fmt.Errorf("lexicon store not configured: set RISKWATCH_PG_DSN")
	}
	return store.NewPostgresStore(appConfig.PostgresDSN)
}

// publishResult fans the result out on the configured broker.
func publishResult(ctx context.Context, result contracts.AnalysisResult) error {
	if len(appConfig.Brokers) == 0 {
		return fmt.Errorf("no broker configured: set RISKWATCH_BROKERS")
	}
	brk, err := broker.NewRedpandaBroker(appConfig.Brokers)
	if err != nil {
		return err
	}
	defer brk.Close()
	return pipeline.Publish(ctx, brk, result)
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the analysis result as JSON instead of launching the TUI")
	analyzeCmd.Flags().Bool("publish", false, "Publish flag and stats events to the configured broker")
	analyzeCmd.Flags().String("lexicon", "", "Named lexicon set to analyze with")

	reportCmd.Flags().String("lexicon", "", "Named lexicon set to analyze with")
	reportCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")

	lexiconsSaveCmd.Flags().StringP("file", "f", "", "YAML overrides file to read the lexicon from")

	lexiconsCmd.AddCommand(lexiconsListCmd)
	lexiconsCmd.AddCommand(lexiconsSaveCmd)
	lexiconsCmd.AddCommand(lexiconsShowCmd)
	lexiconsCmd.AddCommand(lexiconsDeleteCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(lexiconsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
