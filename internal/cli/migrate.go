package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações pendentes no store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		a.Close()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
