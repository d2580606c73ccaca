package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kamerwatch/internal/extract"
	"github.com/ppiankov/kamerwatch/internal/model"
)

var (
	parseKind    string
	parseSession int
	parseMeeting int
	parseNotes   bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one saved transcript and print it as JSON",
	Long: `Parse runs the extraction on a transcript already on disk, without any
network access or database writes. Useful when adjusting extraction against
a single meeting.

Example:
  kamerwatch parse data/sources/sessions/56/meetings/plenary/56-12.html --meeting 12`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseKind, "kind", string(model.KindPlenary), "meeting kind (plenary, committee)")
	parseCmd.Flags().IntVar(&parseSession, "session", model.DefaultConfig().Session, "legislative session")
	parseCmd.Flags().IntVar(&parseMeeting, "meeting", 0, "meeting id")
	parseCmd.Flags().BoolVar(&parseNotes, "notes", false, "print extraction notes to stderr")
}

func runParse(cmd *cobra.Command, args []string) error {
	kind := model.MeetingKind(parseKind)
	if !kind.Valid() {
		return fmt.Errorf("unknown meeting kind %q", parseKind)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	ref := model.MeetingRef{Kind: kind, SessionID: parseSession, MeetingID: parseMeeting}
	result, err := extract.NewEngine().ParseReader(f, ref)
	if err != nil {
		return err
	}

	if parseNotes {
		logger := newLogger(true)
		for _, note := range result.Notes {
			logger.Info("extraction note", "note", note.String())
		}
	}

	return printJSON(cmd, result.Meeting)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
