package service

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
)

func toRentalRequestResponse(r *entity.RentalRequest) dto.RentalRequestResponse {
	return dto.RentalRequestResponse{
		Id:                      r.Id,
		TenantId:                r.TenantId,
		RoomId:                  r.RoomId,
		LandlordId:              r.LandlordId,
		ProposedStartDate:       r.ProposedStartDate,
		GuestCount:              r.GuestCount,
		Message:                 r.Message,
		ResponseMessage:         r.ResponseMessage,
		Status:                  string(r.Status),
		AcceptedAt:              r.AcceptedAt,
		RespondedAt:             r.RespondedAt,
		AgreementConfirmationId: r.AgreementConfirmationId,
		PaymentCompletedAt:      r.PaymentCompletedAt,
		CreatedAt:               r.CreatedAt,
	}
}

func toTermsResponse(t entity.AgreementTerms) dto.AgreementTermsResponse {
	fees := make([]dto.AdditionalFeeDTO, 0, len(t.AdditionalFees))
	for _, f := range t.AdditionalFees {
		fees = append(fees, dto.AdditionalFeeDTO{Name: f.Name, Amount: f.Amount})
	}
	return dto.AgreementTermsResponse{
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		MonthlyRent:     t.MonthlyRent,
		Deposit:         t.Deposit,
		ElectricityRate: t.ElectricityRate,
		WaterRate:       t.WaterRate,
		AdditionalFees:  fees,
		Notes:           t.Notes,
	}
}

func toAgreementResponse(a *entity.AgreementConfirmation) dto.AgreementResponse {
	return dto.AgreementResponse{
		Id:              a.Id,
		RentalRequestId: a.RentalRequestId,
		TenantId:        a.TenantId,
		LandlordId:      a.LandlordId,
		RoomId:          a.RoomId,
		Terms:           toTermsResponse(a.Terms),
		Status:          string(a.Status),
		SignatureStatus: string(a.SignatureStatus),
		PaymentStatus:   string(a.PaymentStatus),
		RejectionReason: a.RejectionReason,
		SignedDocument:  a.SignedDocument,
		ExpiresAt:       a.ExpiresAt,
		ConfirmedAt:     a.ConfirmedAt,
		SignedAt:        a.SignedAt,
		CreatedAt:       a.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		Id:                      p.Id,
		AgreementConfirmationId: p.AgreementConfirmationId,
		TenantId:                p.TenantId,
		LandlordId:              p.LandlordId,
		RoomId:                  p.RoomId,
		Purpose:                 string(p.Purpose),
		Amount:                  p.Amount,
		PaymentMethod:           string(p.PaymentMethod),
		Status:                  string(p.Status),
		TransactionId:           p.TransactionId,
		ExternalTransactionId:   p.ExternalTransactionId,
		FailureReason:           p.FailureReason,
		PaidAt:                  p.PaidAt,
		CreatedAt:               p.CreatedAt,
	}
}

func toTenancyResponse(t *entity.TenancyAgreement) dto.TenancyResponse {
	return dto.TenancyResponse{
		Id:                      t.Id,
		AgreementConfirmationId: t.AgreementConfirmationId,
		PaymentId:               t.PaymentId,
		TenantId:                t.TenantId,
		LandlordId:              t.LandlordId,
		RoomId:                  t.RoomId,
		Terms:                   toTermsResponse(t.Terms),
		SignedDocument:          t.SignedDocument,
		Status:                  string(t.Status),
		SignedAt:                t.SignedAt,
		EndedAt:                 t.EndedAt,
	}
}

func toWithdrawalResponse(w *entity.WithdrawalRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		Id:                      w.Id,
		TenantId:                w.TenantId,
		LandlordId:              w.LandlordId,
		AgreementConfirmationId: w.AgreementConfirmationId,
		PaymentId:               w.PaymentId,
		RoomId:                  w.RoomId,
		Amount:                  w.Amount,
		DeductionAmount:         w.DeductionAmount,
		DeductionReason:         w.DeductionReason,
		NetAmount:               w.NetAmount,
		Reason:                  w.Reason,
		Bank: dto.BankDetailsDTO{
			BankCode:      w.Bank.BankCode,
			BankName:      w.Bank.BankName,
			AccountNumber: w.Bank.AccountNumber,
			AccountHolder: w.Bank.AccountHolder,
		},
		Status:          string(w.Status),
		RejectionReason: w.RejectionReason,
		PayoutReference: w.PayoutReference,
		PayoutMessage:   w.PayoutMessage,
		ApprovedAt:      w.ApprovedAt,
		CompletedAt:     w.CompletedAt,
		CreatedAt:       w.CreatedAt,
	}
}

func toWalletTransactionResponse(tx *entity.WalletTransaction) *dto.WalletTransactionResponse {
	return &dto.WalletTransactionResponse{
		Id:           tx.Id,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		ReferenceId:  tx.ReferenceId,
		BalanceAfter: tx.BalanceAfter,
		Description:  tx.Description,
		CreatedAt:    tx.CreatedAt,
	}
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Id:        n.Id,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
