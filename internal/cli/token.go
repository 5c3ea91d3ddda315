package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/authenticating"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Gera um token de acesso para a API administrativa",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("role", domain.RoleAdmin, "Papel do token: admin ou viewer")
	tokenCmd.Flags().Duration("ttl", authenticating.DefaultTokenTTL, "Validade do token")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	role, _ := cmd.Flags().GetString("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := authenticating.NewService(cfg.Auth).GenerateToken(args[0], role, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
