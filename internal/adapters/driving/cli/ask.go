package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askDocument string
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Build retrieval context for a question",
	Long: `Routes the question to the best-matching catalog document (or the
one named with --document), loads it if necessary, and prints the
assembled, token-bounded context.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDocument, "document", "d", "", "catalog id of the primary document")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	result, err := libraryService.BuildContext(context.Background(), args[0], askDocument)
	if err != nil {
		return fmt.Errorf("building context: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Document: %s (%s, mode %s)\n", result.Primary.Title, result.Primary.ID, result.Mode)
	cmd.Printf("Used: %v\n\n", result.UsedDocIDs)
	cmd.Println(result.Context)
	return nil
}
