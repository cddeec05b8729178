package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List the document catalog",
	RunE:  runDocuments,
}

func init() {
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	catalog := libraryService.Catalog()
	for _, e := range catalog.Entries {
		state := "unloaded"
		if _, ok := libraryService.Loaded(e.ID); ok {
			state = "loaded"
		}
		marker := " "
		if e.ID == catalog.DefaultID {
			marker = "*"
		}
		cmd.Printf("%s %-8s %-10s %s\n", marker, e.ID, state, e.Title)
		cmd.Printf("           keywords: %s\n", strings.Join(e.Keywords, ", "))
	}
	return nil
}
