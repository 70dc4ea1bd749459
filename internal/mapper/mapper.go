package mapper

import (
	"time"

	"github.com/hexaparts/procurement-api/internal/domain"
)

// ToSupplierDTO maps a supplier entity to its dashboard projection
func ToSupplierDTO(s *domain.Supplier) *domain.SupplierDTO {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return &domain.SupplierDTO{
		ID:                 s.ID,
		Name:               s.Name,
		ContactName:        s.ContactName,
		Phone:              s.Phone,
		Categories:         categories,
		Location:           s.Location,
		IsActive:           s.IsActive,
		AvgResponseMinutes: s.AvgResponseMinutes,
		CreatedAt:          s.CreatedAt.Format(time.RFC3339),
	}
}

// ToSupplierDTOs maps a slice of supplier entities
func ToSupplierDTOs(suppliers []domain.Supplier) []domain.SupplierDTO {
	dtos := make([]domain.SupplierDTO, 0, len(suppliers))
	for i := range suppliers {
		dtos = append(dtos, *ToSupplierDTO(&suppliers[i]))
	}
	return dtos
}

// ToRequestDTO maps a parts request with its inquiry counts
func ToRequestDTO(r *domain.PartsRequest, total, responded int) *domain.RequestDTO {
	return &domain.RequestDTO{
		ID:                 r.ID,
		PartDescription:    r.PartDescription,
		VehicleInfo:        r.VehicleInfo,
		Quantity:           r.Quantity,
		Urgency:            r.Urgency,
		Deadline:           r.Deadline,
		Notes:              r.Notes,
		Status:             r.Status,
		SuppliersTotal:     total,
		SuppliersResponded: responded,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}

// ToOrderDTO maps a purchase order with resolved display names
func ToOrderDTO(o *domain.PurchaseOrder, partDescription, supplierName string) *domain.OrderDTO {
	return &domain.OrderDTO{
		ID:               o.ID,
		PONumber:         o.PONumber,
		PartDescription:  partDescription,
		SupplierName:     supplierName,
		Amount:           o.Amount,
		Currency:         o.Currency,
		Status:           o.Status,
		ExpectedDelivery: o.ExpectedDelivery,
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
}

// ToMessageRecordDTO maps a logged message to its dashboard projection
func ToMessageRecordDTO(m *domain.MessageRecord) *domain.MessageRecordDTO {
	return &domain.MessageRecordDTO{
		ID:                m.ID,
		Direction:         m.Direction,
		FromNumber:        m.FromNumber,
		ToNumber:          m.ToNumber,
		Body:              m.Body,
		ExternalMessageID: m.ExternalMessageID,
		DeliveryStatus:    m.DeliveryStatus,
		Source:            m.Source,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}
}

// ToMessageRecordDTOs maps a slice of message records
func ToMessageRecordDTOs(records []domain.MessageRecord) []domain.MessageRecordDTO {
	dtos := make([]domain.MessageRecordDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *ToMessageRecordDTO(&records[i]))
	}
	return dtos
}
