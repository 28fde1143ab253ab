package main

import (
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func expireCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "expire-confirmations",
		Short: "Expire pending agreement confirmations past their deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(); err != nil {
				return err
			}
			n, err := e.container.AgreementService.ExpireOldConfirmations(cmd.Context())
			if err != nil {
				return err
			}
			color.Green("Expired %d confirmation(s)", n)
			return nil
		},
	}
}

func retryContractsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "retry-contracts",
		Short: "Re-send leases whose e-signature dispatch failed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(); err != nil {
				return err
			}
			res, err := e.container.ContractService.RetryFailedDispatches(cmd.Context())
			if err != nil {
				return err
			}
			color.Cyan("Attempted: %d", res.Attempted)
			color.Green("Sent:      %d", res.Sent)
			if res.Failed > 0 {
				color.Red("Failed:    %d", res.Failed)
			}
			return nil
		},
	}
}

func reconcilePaymentCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-payment [payment-id]",
		Short: "Re-apply the effects of a completed payment that did not fully land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			if err := e.load(); err != nil {
				return err
			}
			res, err := e.container.PaymentService.ReconcilePayment(cmd.Context(), id)
			if err != nil {
				return err
			}
			color.Cyan("Payment %s", res.PaymentId)
			printFlag("room occupied", res.RoomOccupied)
			printFlag("agreement updated", res.AgreementUpdated)
			printFlag("wallet credited", res.WalletCredited)
			printFlag("contract sent", res.ContractSent)
			return nil
		},
	}
}

func reconcileWalletCmd(e *env) *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "reconcile-wallet [user-id]",
		Short: "Compare a stored wallet balance against its ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			if err := e.load(); err != nil {
				return err
			}
			res, err := e.container.WalletService.ReconcileBalance(cmd.Context(), id, repair)
			if err != nil {
				return err
			}
			color.Cyan("Stored: %d  Ledger: %d", res.StoredBalance, res.LedgerBalance)
			switch {
			case res.Drift == 0:
				color.Green("Balanced")
			case res.Repaired:
				color.Yellow("Drift %d repaired", res.Drift)
			default:
				color.Red("Drift %d (run with --repair to fix)", res.Drift)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "Overwrite the stored balance with the ledger sum")
	return cmd
}

func printFlag(label string, done bool) {
	if done {
		color.Green("  %-18s yes", label)
		return
	}
	color.Yellow("  %-18s no", label)
}
