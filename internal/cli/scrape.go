package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/kamerwatch/internal/model"
	"github.com/ppiankov/kamerwatch/internal/pipeline"
	"github.com/ppiankov/kamerwatch/internal/store"
)

var fromMeeting int

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <plenary|committee>",
	Short: "Crawl and parse new meeting transcripts",
	Long: `Scrape discovers meetings published since the last run, parses every
transcript of the session and refreshes the dossiers they reference.

Downloaded documents are cached under the data directory, so re-running
only downloads what is new.

Example:
  kamerwatch scrape plenary
  kamerwatch scrape committee --session 55 --from 120
  kamerwatch scrape plenary --db out.db --json ./records`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.KindPlenary), string(model.KindCommittee)},
	RunE:      runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().Int("session", 0, "legislative session (default from config)")
	scrapeCmd.Flags().IntVar(&fromMeeting, "from", 1, "first meeting id to parse")
	scrapeCmd.Flags().String("db", "", "SQLite database path")
	scrapeCmd.Flags().String("json", "", "also write JSON records to this directory")
	scrapeCmd.Flags().String("data-dir", "", "directory for downloaded sources and crawl state")
	scrapeCmd.Flags().Bool("no-robots", false, "do not consult robots.txt")

	_ = viper.BindPFlag("session", scrapeCmd.Flags().Lookup("session"))
	_ = viper.BindPFlag("output.db_path", scrapeCmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("output.json_dir", scrapeCmd.Flags().Lookup("json"))
	_ = viper.BindPFlag("data_dir", scrapeCmd.Flags().Lookup("data-dir"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	kind := model.MeetingKind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("unknown meeting kind %q (want plenary or committee)", args[0])
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if noRobots, _ := cmd.Flags().GetBool("no-robots"); noRobots {
		cfg.HTTP.RespectRobots = false
	}

	logger := newLogger(cfg.Output.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Output.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("close database", "error", closeErr)
		}
	}()

	sinks := []pipeline.Sink{db}
	if cfg.Output.JSONDir != "" {
		sinks = append(sinks, pipeline.NewJSONSink(cfg.Output.JSONDir))
	}

	p := pipeline.NewPipeline(cfg, sinks, logger)
	summary, err := p.Run(ctx, kind, pipeline.RunOptions{Session: cfg.Session, From: fromMeeting})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("scrape interrupted, crawl state not saved: %w", err)
		}
		return fmt.Errorf("scrape failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, s *pipeline.RunSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Scrape Summary: %s, session %d\n", s.Kind, s.Session)
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Last meeting:      %d (was %d)\n", s.Bound, s.Previous)
	fmt.Fprintf(out, "  Meetings parsed:   %d\n", s.Meetings)
	fmt.Fprintf(out, "  Meetings skipped:  %d\n", s.Skipped)
	fmt.Fprintf(out, "  Not published:     %d\n", s.Missing)
	fmt.Fprintf(out, "  Dossiers parsed:   %d\n", s.Dossiers)
	fmt.Fprintf(out, "  Dossiers fetched:  %d\n", s.Refreshed)
	if s.DossierErrors > 0 {
		fmt.Fprintf(out, "  Dossier failures:  %d\n", s.DossierErrors)
	}
	fmt.Fprintf(out, "\n")
}
