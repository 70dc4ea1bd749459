package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key client-side so the same model works
// against both PostgreSQL and the SQLite driver used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Organization is the tenant root. Every other entity hangs off one.
type Organization struct {
	BaseModel
	Name           string `gorm:"type:varchar(200);not null"`
	WhatsAppNumber string `gorm:"type:varchar(50);column:whatsapp_number"`
}

// PartyRole classifies internal people who interact with the system
type PartyRole string

const (
	PartyRoleRequester PartyRole = "requester"
	PartyRoleBuyer     PartyRole = "buyer"
	PartyRoleApprover  PartyRole = "approver"
)

// IsValid checks if the PartyRole is a valid enum value
func (r PartyRole) IsValid() bool {
	switch r {
	case PartyRoleRequester, PartyRoleBuyer, PartyRoleApprover:
		return true
	}
	return false
}

// Party is an internal person: a requester asking for parts, a buyer, or an
// approver with a spending ceiling. Suppliers are modelled separately.
type Party struct {
	BaseModel
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index;column:organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID"`
	Name           string        `gorm:"type:varchar(200);not null"`
	Role           PartyRole     `gorm:"type:varchar(50);not null;index"`
	Phone          string        `gorm:"type:varchar(50);index"`
	// ApprovalLimit is only meaningful for approvers; 0 means unlimited.
	ApprovalLimit float64 `gorm:"type:decimal(15,2);not null;default:0;column:approval_limit"`
}

// Supplier is an external vendor that receives inquiries over WhatsApp
type Supplier struct {
	BaseModel
	OrganizationID     uuid.UUID     `gorm:"type:uuid;not null;index;column:organization_id"`
	Organization       *Organization `gorm:"foreignKey:OrganizationID"`
	Name               string        `gorm:"type:varchar(200);not null;index"`
	ContactName        string        `gorm:"type:varchar(200);column:contact_name"`
	Phone              string        `gorm:"type:varchar(50);not null;index"`
	Categories         []string      `gorm:"serializer:json"`
	Location           string        `gorm:"type:varchar(200)"`
	IsActive           bool          `gorm:"not null;default:true;column:is_active"`
	AvgResponseMinutes *int          `gorm:"column:avg_response_minutes"`
}

// RequestUrgency represents how quickly a part is needed
type RequestUrgency string

const (
	UrgencyNormal    RequestUrgency = "normal"
	UrgencyUrgent    RequestUrgency = "urgent"
	UrgencyEmergency RequestUrgency = "emergency"
)

// IsValid checks if the RequestUrgency is a valid enum value
func (u RequestUrgency) IsValid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

// RequestStatus is the lifecycle of a parts request.
// draft -> rfq_sent -> quotes_received -> ordered, with cancelled reachable
// from any non-terminal state.
type RequestStatus string

const (
	RequestStatusDraft          RequestStatus = "draft"
	RequestStatusRFQSent        RequestStatus = "rfq_sent"
	RequestStatusQuotesReceived RequestStatus = "quotes_received"
	RequestStatusOrdered        RequestStatus = "ordered"
	RequestStatusCancelled      RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusOrdered || s == RequestStatusCancelled
}

// PartsRequest is a single part-sourcing need raised by a requester.
// Mutated only by the procurement service; never deleted.
type PartsRequest struct {
	BaseModel
	OrganizationID  uuid.UUID      `gorm:"type:uuid;not null;index;column:organization_id"`
	Organization    *Organization  `gorm:"foreignKey:OrganizationID"`
	RequestedByID   *uuid.UUID     `gorm:"type:uuid;index;column:requested_by_id"`
	RequestedBy     *Party         `gorm:"foreignKey:RequestedByID"`
	PartDescription string         `gorm:"type:varchar(500);not null;column:part_description"`
	VehicleInfo     string         `gorm:"type:varchar(200);column:vehicle_info"`
	Quantity        int            `gorm:"not null;default:1"`
	Urgency         RequestUrgency `gorm:"type:varchar(20);not null;default:'normal'"`
	Deadline        string         `gorm:"type:varchar(100)"`
	Notes           string         `gorm:"type:text"`
	Status          RequestStatus  `gorm:"type:varchar(30);not null;default:'draft';index"`
	Inquiries       []Inquiry      `gorm:"foreignKey:PartsRequestID"`
}

// InquiryStatus is the lifecycle of a single outbound supplier inquiry
type InquiryStatus string

const (
	InquiryStatusSent       InquiryStatus = "sent"
	InquiryStatusResponded  InquiryStatus = "responded"
	InquiryStatusNoResponse InquiryStatus = "no_response"
)

// Inquiry is one outbound ask to one supplier for one parts request.
// Exactly one per (request, supplier) pair, created at fan-out time.
type Inquiry struct {
	BaseModel
	PartsRequestID    uuid.UUID     `gorm:"type:uuid;not null;index;column:parts_request_id"`
	PartsRequest      *PartsRequest `gorm:"foreignKey:PartsRequestID"`
	SupplierID        uuid.UUID     `gorm:"type:uuid;not null;index;column:supplier_id"`
	Supplier          *Supplier     `gorm:"foreignKey:SupplierID"`
	ExternalMessageID string        `gorm:"type:varchar(100);index;column:external_message_id"`
	DeliveryStatus    string        `gorm:"type:varchar(50);column:delivery_status"`
	Status            InquiryStatus `gorm:"type:varchar(20);not null;default:'sent';index"`
	SentAt            time.Time     `gorm:"not null;column:sent_at;index"`
	RespondedAt       *time.Time    `gorm:"column:responded_at"`
	Quote             *Quote        `gorm:"foreignKey:InquiryID"`
}

// QuoteAvailability represents stock availability reported by a supplier
type QuoteAvailability string

const (
	AvailabilityInStock      QuoteAvailability = "in_stock"
	AvailabilityOutOfStock   QuoteAvailability = "out_of_stock"
	AvailabilityCanOrder     QuoteAvailability = "can_order"
	AvailabilityChecking     QuoteAvailability = "checking"
	AvailabilityDiscontinued QuoteAvailability = "discontinued"
)

// Quote is a supplier's structured answer to one inquiry, extracted from a
// free-form message. At most one per inquiry; a second reply overwrites the
// stored quote and flags it for review.
type Quote struct {
	BaseModel
	InquiryID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex;column:inquiry_id"`
	Inquiry      *Inquiry          `gorm:"foreignKey:InquiryID"`
	SupplierID   uuid.UUID         `gorm:"type:uuid;not null;index;column:supplier_id"`
	Supplier     *Supplier         `gorm:"foreignKey:SupplierID"`
	Price        *float64          `gorm:"type:decimal(15,2)"`
	Currency     string            `gorm:"type:varchar(3);not null;default:'QAR'"`
	TotalPrice   *float64          `gorm:"type:decimal(15,2);column:total_price"`
	ShippingCost *float64          `gorm:"type:decimal(15,2);column:shipping_cost"`
	Availability QuoteAvailability `gorm:"type:varchar(20)"`
	DeliveryDays *int              `gorm:"column:delivery_days"`
	Condition    string            `gorm:"type:varchar(100)"`
	Notes        string            `gorm:"type:text"`
	RawMessage   string            `gorm:"type:text;column:raw_message"`
	Confidence   float64           `gorm:"type:decimal(4,3);not null;default:0"`
	NeedsReview  bool              `gorm:"not null;default:false;column:needs_review"`
	IsSelected   bool              `gorm:"not null;default:false;column:is_selected"`
}

// OrderStatus is the lifecycle of a purchase order
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PurchaseOrder is the commitment created when a quote is approved.
// Created exactly once per request, at approval time.
type PurchaseOrder struct {
	BaseModel
	PONumber           string        `gorm:"type:varchar(50);not null;unique;column:po_number"`
	OrganizationID     uuid.UUID     `gorm:"type:uuid;not null;index;column:organization_id"`
	PartsRequestID     uuid.UUID     `gorm:"type:uuid;not null;index;column:parts_request_id"`
	PartsRequest       *PartsRequest `gorm:"foreignKey:PartsRequestID"`
	QuoteID            uuid.UUID     `gorm:"type:uuid;not null;column:quote_id"`
	Quote              *Quote        `gorm:"foreignKey:QuoteID"`
	SupplierID         uuid.UUID     `gorm:"type:uuid;not null;index;column:supplier_id"`
	Supplier           *Supplier     `gorm:"foreignKey:SupplierID"`
	ApprovedByID       *uuid.UUID    `gorm:"type:uuid;column:approved_by_id"`
	ApprovedBy         *Party        `gorm:"foreignKey:ApprovedByID"`
	Amount             float64       `gorm:"type:decimal(15,2);not null"`
	Currency           string        `gorm:"type:varchar(3);not null;default:'QAR'"`
	Status             OrderStatus   `gorm:"type:varchar(20);not null;default:'confirmed';index"`
	ExpectedDelivery   string        `gorm:"type:varchar(100);column:expected_delivery"`
	ActualDeliveryDate *time.Time    `gorm:"column:actual_delivery_date"`
}

// PONumberSequence backs sequential purchase order numbering. The single
// row is locked and incremented inside the order issue transaction so
// concurrent approvals never draw the same number.
type PONumberSequence struct {
	ID           int       `gorm:"primaryKey"`
	LastSequence int       `gorm:"not null;column:last_sequence"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName overrides the default table name to match the migration
func (PONumberSequence) TableName() string {
	return "po_number_sequences"
}

// MessageDirection indicates whether a message was sent or received
type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

// MessageSource identifies what produced a logged message
type MessageSource string

const (
	SourceAPI      MessageSource = "api"
	SourceSupplier MessageSource = "supplier"
	SourceParty    MessageSource = "party"
)

// MessageRecord is an append-only audit log of every message in or out.
// Never mutated (delivery status excepted) and never deleted.
type MessageRecord struct {
	BaseModel
	OrganizationID    *uuid.UUID       `gorm:"type:uuid;index;column:organization_id"`
	Direction         MessageDirection `gorm:"type:varchar(10);not null"`
	FromNumber        string           `gorm:"type:varchar(50);column:from_number"`
	ToNumber          string           `gorm:"type:varchar(50);column:to_number"`
	Body              string           `gorm:"type:text"`
	ExternalMessageID string           `gorm:"type:varchar(100);index;column:external_message_id"`
	DeliveryStatus    string           `gorm:"type:varchar(50);column:delivery_status"`
	InquiryID         *uuid.UUID       `gorm:"type:uuid;index;column:inquiry_id"`
	PurchaseOrderID   *uuid.UUID       `gorm:"type:uuid;column:purchase_order_id"`
	Source            MessageSource    `gorm:"type:varchar(20)"`
}

// TableName overrides the default table name to match the migration
func (MessageRecord) TableName() string {
	return "message_log"
}
