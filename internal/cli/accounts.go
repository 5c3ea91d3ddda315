package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/account"
)

var syncAccountsCmd = &cobra.Command{
	Use:   "sync-accounts",
	Short: "Sincroniza as contas de anúncio dos Business Managers do Meta",
	RunE:  runSyncAccounts,
}

var labelAccountCmd = &cobra.Command{
	Use:   "label-account <external-id>",
	Short: "Altera rótulos, apelido ou status de uma conta sincronizada",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelAccount,
}

func init() {
	rootCmd.AddCommand(syncAccountsCmd)
	rootCmd.AddCommand(labelAccountCmd)

	registerUpdateFlags(labelAccountCmd)
}

func registerUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("labels", nil, "Rótulos da conta, separados por vírgula (substitui os atuais)")
	cmd.Flags().String("nickname", "", "Apelido exibido no email")
	cmd.Flags().String("status", "", "ACTIVE ou INACTIVE")
}

func runSyncAccounts(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.tokenManager.InitToken(ctx)

	resp, err := account.NewService(a.accounts, a.meta).SyncAccounts(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}

func runLabelAccount(cmd *cobra.Command, args []string) error {
	request, err := updateRequestFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := account.NewService(a.accounts, a.meta).UpdateAccount(ctx, request)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) rótulos=%v status=%s\n", resp.Name, resp.ExternalID, resp.Labels, resp.Status)
	return nil
}

// updateRequestFromFlags só preenche os campos cujas flags foram informadas
func updateRequestFromFlags(cmd *cobra.Command, externalID string) (*domain.UpdateAdAccountRequest, error) {
	request := &domain.UpdateAdAccountRequest{ExternalID: externalID}
	flags := cmd.Flags()

	if flags.Changed("labels") {
		labels, _ := flags.GetStringSlice("labels")
		request.Labels = &labels
	}
	if flags.Changed("nickname") {
		nickname, _ := flags.GetString("nickname")
		request.Nickname = &nickname
	}
	if flags.Changed("status") {
		value, _ := flags.GetString("status")
		status := domain.AdAccountStatus(value)
		request.Status = &status
	}

	if request.Labels == nil && request.Nickname == nil && request.Status == nil {
		return nil, errors.New("informe ao menos uma de --labels, --nickname ou --status")
	}

	return request, nil
}
