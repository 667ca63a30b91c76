package keygrep

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update keygrep to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Println("keygrep is up to date")
			return nil
		},
	}
	rootCmd.AddCommand(updateCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the keygrep version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("keygrep", version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}
