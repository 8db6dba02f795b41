package mapper

import (
	"time"

	"github.com/bigs-im/pg-gateway/app/entity"
	"github.com/bigs-im/pg-gateway/app/provider"
	"github.com/bigs-im/pg-gateway/app/types"
)

func PaymentToResponse(item *entity.Payment) *types.Payment {
	if item == nil {
		return nil
	}

	return &types.Payment{
		ID:             item.ID,
		PartnerID:      item.PartnerID,
		Amount:         item.Amount,
		AppliedFeeRate: item.AppliedFeeRate,
		FeeAmount:      item.FeeAmount,
		NetAmount:      item.NetAmount,
		CardBin:        item.CardBin,
		CardLast4:      item.CardLast4,
		ApprovalCode:   item.ApprovalCode,
		ApprovedAt:     item.ApprovedAt.UTC().Format(time.RFC3339),
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func PaymentsToResponse(items []*entity.Payment) []*types.Payment {
	result := make([]*types.Payment, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToResponse(item))
	}
	return result
}

func SummaryToResponse(summary *entity.PaymentSummary) *types.PaymentSummary {
	if summary == nil {
		return nil
	}
	return &types.PaymentSummary{
		Count:          summary.Count,
		TotalAmount:    summary.TotalAmount,
		TotalNetAmount: summary.TotalNetAmount,
	}
}

func DeclineToResponse(decline *provider.DeclinedError) *types.DeclineDetail {
	if decline == nil {
		return nil
	}
	return &types.DeclineDetail{
		Code:        decline.Code,
		ErrorCode:   decline.ErrorCode,
		Message:     decline.Message,
		ReferenceID: decline.ReferenceID,
	}
}
