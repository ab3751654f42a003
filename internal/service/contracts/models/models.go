package models

import (
	"errors"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе договора
	ErrInvalidStatus = errors.New("invalid contract status")
)

// Request модели

// UpdateStatusRequest запрос оператора на смену статуса договора
type UpdateStatusRequest struct {
	TenantID int64  `json:"-"`
	Status   string `json:"status"`
}

// Response модели

// ContractResponse ответ с данными договора
type ContractResponse struct {
	ID       int64 `json:"id"`
	ClientID int64 `json:"clientId"`

	StartDate string `json:"startDate"` // "2026-01-15"
	EndDate   string `json:"endDate"`

	AgreementStatus string  `json:"agreementStatus"`
	TotalAmount     float64 `json:"totalAmount"`
	Discount        float64 `json:"discount"`
	FinalAmount     float64 `json:"finalAmount"`

	Billboards []ContractBillboardResponse `json:"billboards"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContractBillboardResponse pivot-запись щита внутри договора
type ContractBillboardResponse struct {
	BillboardID   int64   `json:"billboardId"`
	BookingStatus string  `json:"bookingStatus"`
	BasePrice     float64 `json:"basePrice"`
	Discount      float64 `json:"discount"`
	FinalPrice    float64 `json:"finalPrice"`
}

// Методы конвертации

// FromDomainContract конвертирует domain модель в DTO
func FromDomainContract(c *domain.Contract) *ContractResponse {
	if c == nil {
		return nil
	}

	resp := &ContractResponse{
		ID:              c.ID,
		ClientID:        c.ClientID,
		StartDate:       c.StartDate.Format(domain.DateFormat),
		EndDate:         c.EndDate.Format(domain.DateFormat),
		AgreementStatus: string(c.AgreementStatus),
		TotalAmount:     c.TotalAmount,
		Discount:        c.Discount,
		FinalAmount:     c.FinalAmount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	for _, cb := range c.Billboards {
		resp.Billboards = append(resp.Billboards, ContractBillboardResponse{
			BillboardID:   cb.BillboardID,
			BookingStatus: string(cb.BookingStatus),
			BasePrice:     cb.BillboardBasePrice,
			Discount:      cb.BillboardDiscountAmount,
			FinalPrice:    cb.BillboardFinalPrice,
		})
	}

	return resp
}

// ToDomainAgreementStatus валидирует и конвертирует строковый статус договора
func ToDomainAgreementStatus(status string) (domain.AgreementStatus, error) {
	switch domain.AgreementStatus(status) {
	case domain.AgreementDraft, domain.AgreementActive,
		domain.AgreementCompleted, domain.AgreementCancelled:
		return domain.AgreementStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
