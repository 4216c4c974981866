package mapper

import (
	"time"

	"github.com/engagesphere/engagesphere-backend/app/entity"
	"github.com/engagesphere/engagesphere-backend/app/types"
)

func PaymentToView(item *entity.Payment) *types.Payment {
	if item == nil {
		return nil
	}

	return &types.Payment{
		PaymentID:       item.PaymentID,
		OrderID:         item.OrderID,
		TransactionID:   item.TransactionID,
		UserID:          item.UserID,
		UserName:        item.UserName,
		Status:          string(item.Status),
		PayerEmail:      item.PayerEmail,
		PayerName:       item.PayerName,
		PackageName:     item.PackageName,
		PackageFeatures: cloneFeatures(item.PackageFeatures),
		Amount:          item.Amount.InexactFloat64(),
		Currency:        item.Currency,
		CreateTime:      item.CreateTime.UTC().Format(time.RFC3339),
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func PaymentsToView(items []*entity.Payment) []*types.Payment {
	result := make([]*types.Payment, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToView(item))
	}
	return result
}

func StatsToView(stats *entity.PaymentStats) *types.PaymentStats {
	if stats == nil {
		return nil
	}

	return &types.PaymentStats{
		TotalPayments:    stats.TotalPayments,
		TotalAmount:      stats.TotalAmount.InexactFloat64(),
		CapturedPayments: stats.CapturedPayments,
		CapturedAmount:   stats.CapturedAmount.InexactFloat64(),
		CreatedPayments:  stats.CreatedPayments,
		FailedPayments:   stats.FailedPayments,
	}
}

func cloneFeatures(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
