package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kamerwatch/internal/extract"
	"github.com/ppiankov/kamerwatch/internal/model"
)

var (
	dossierID      string
	dossierSession int
)

// dossierCmd represents the dossier command
var dossierCmd = &cobra.Command{
	Use:   "dossier <file>",
	Short: "Parse one saved dossier page and print it as JSON",
	Long: `Dossier parses a legislative dossier page already on disk.

Example:
  kamerwatch dossier data/sources/sessions/56/dossiers/56_1234_2024-03-14.html --id 1234`,
	Args: cobra.ExactArgs(1),
	RunE: runDossier,
}

func init() {
	rootCmd.AddCommand(dossierCmd)

	dossierCmd.Flags().StringVar(&dossierID, "id", "", "dossier id")
	dossierCmd.Flags().IntVar(&dossierSession, "session", model.DefaultConfig().Session, "legislative session")
	_ = dossierCmd.MarkFlagRequired("id")
}

func runDossier(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open dossier: %w", err)
	}
	defer func() { _ = f.Close() }()

	root, err := extract.ParseHTML(f)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	d, err := extract.ParseDossier(dossierSession, dossierID, root)
	if err != nil {
		return err
	}

	return printJSON(cmd, d)
}
