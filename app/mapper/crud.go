package mapper

import (
	"time"

	"github.com/engagesphere/engagesphere-backend/app/entity"
	"github.com/engagesphere/engagesphere-backend/app/types"
)

func UserToView(item *entity.User) *types.User {
	if item == nil {
		return nil
	}
	return &types.User{
		UserID:    item.UserID,
		Name:      item.Name,
		Email:     item.Email,
		Company:   item.Company,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func UsersToView(items []*entity.User) []*types.User {
	result := make([]*types.User, 0, len(items))
	for _, item := range items {
		result = append(result, UserToView(item))
	}
	return result
}

func ContactToView(item *entity.Contact) *types.Contact {
	if item == nil {
		return nil
	}
	return &types.Contact{
		ContactID: item.ContactID,
		Name:      item.Name,
		Email:     item.Email,
		Subject:   item.Subject,
		Message:   item.Message,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ContactsToView(items []*entity.Contact) []*types.Contact {
	result := make([]*types.Contact, 0, len(items))
	for _, item := range items {
		result = append(result, ContactToView(item))
	}
	return result
}

func PlanToView(item *entity.Plan) *types.Plan {
	if item == nil {
		return nil
	}
	return &types.Plan{
		PlanID:   item.PlanID,
		Name:     item.Name,
		Features: cloneFeatures(item.Features),
		Price:    item.Price.InexactFloat64(),
		Currency: item.Currency,
	}
}

func PlansToView(items []*entity.Plan) []*types.Plan {
	result := make([]*types.Plan, 0, len(items))
	for _, item := range items {
		result = append(result, PlanToView(item))
	}
	return result
}

func ReceiptToView(item *entity.Receipt) *types.Receipt {
	if item == nil {
		return nil
	}
	return &types.Receipt{
		ReceiptID:   item.ReceiptID,
		PaymentID:   item.PaymentID,
		UserID:      item.UserID,
		PackageName: item.PackageName,
		Amount:      item.Amount.InexactFloat64(),
		Currency:    item.Currency,
		IssuedAt:    item.IssuedAt.UTC().Format(time.RFC3339),
	}
}

func ReceiptsToView(items []*entity.Receipt) []*types.Receipt {
	result := make([]*types.Receipt, 0, len(items))
	for _, item := range items {
		result = append(result, ReceiptToView(item))
	}
	return result
}
