package domain

import "github.com/google/uuid"

// MessageCategory is the routing decision for an inbound message
type MessageCategory string

const (
	CategoryNewRequest     MessageCategory = "new_request"
	CategoryInquiryReply   MessageCategory = "inquiry_reply"
	CategoryStatusInquiry  MessageCategory = "status_inquiry"
	CategoryUnclassifiable MessageCategory = "unclassifiable"
)

// RouteDecision is the read-only result of routing an inbound message.
// Party and supplier may both be resolved when a phone number is shared
// between the two tables; the category decides which one acts.
type RouteDecision struct {
	Category       MessageCategory `json:"category"`
	PartyID        *uuid.UUID      `json:"partyId,omitempty"`
	SupplierID     *uuid.UUID      `json:"supplierId,omitempty"`
	OrganizationID *uuid.UUID      `json:"organizationId,omitempty"`
	HasOpenInquiry bool            `json:"hasOpenInquiry"`
	OpenInquiryID  *uuid.UUID      `json:"openInquiryId,omitempty"`
}

// InboundMessage is a message event delivered by the transport webhook
type InboundMessage struct {
	From              string `json:"from"`
	Body              string `json:"body"`
	ExternalMessageID string `json:"externalMessageId"`
	ProfileName       string `json:"profileName,omitempty"`
}

// CreateRequestRequest is the dashboard payload for raising a parts request
type CreateRequestRequest struct {
	RequestedByID   *uuid.UUID     `json:"requestedById"`
	PartDescription string         `json:"partDescription" validate:"required,max=500"`
	VehicleInfo     string         `json:"vehicleInfo" validate:"max=200"`
	Quantity        int            `json:"quantity" validate:"gte=0"`
	Urgency         RequestUrgency `json:"urgency" validate:"omitempty,oneof=normal urgent emergency"`
	Deadline        string         `json:"deadline" validate:"max=100"`
	Notes           string         `json:"notes"`
}

// InquiryOutcome reports the per-supplier result of a fan-out
type InquiryOutcome struct {
	InquiryID    *uuid.UUID `json:"inquiryId,omitempty"`
	SupplierID   uuid.UUID  `json:"supplierId"`
	SupplierName string     `json:"supplierName"`
	Phone        string     `json:"phone"`
	Sent         bool       `json:"sent"`
	Error        string     `json:"error,omitempty"`
}

// CreateRequestResult is returned after a request has been created and
// inquiries fanned out to suppliers
type CreateRequestResult struct {
	RequestID     uuid.UUID        `json:"requestId"`
	Status        RequestStatus    `json:"status"`
	Inquiries     []InquiryOutcome `json:"inquiries"`
	SupplierCount int              `json:"supplierCount"`
	FailedCount   int              `json:"failedCount"`
}

// IngestStatus summarizes what happened to an inbound message
type IngestStatus string

const (
	IngestStatusRequestCreated IngestStatus = "request_created"
	IngestStatusQuoteStored    IngestStatus = "quote_stored"
	IngestStatusQuestion       IngestStatus = "question_needs_review"
	IngestStatusAcknowledged   IngestStatus = "acknowledged"
	IngestStatusStatusHandled  IngestStatus = "status_inquiry_acknowledged"
	IngestStatusNoMatch        IngestStatus = "no_matching_inquiry"
	IngestStatusDuplicate      IngestStatus = "duplicate_message"
	IngestStatusUnclassified   IngestStatus = "unclassified"
)

// IngestResult is returned after processing one inbound message
type IngestResult struct {
	Status         IngestStatus  `json:"status"`
	RequestID      *uuid.UUID    `json:"requestId,omitempty"`
	SupplierName   string        `json:"supplierName,omitempty"`
	Price          *float64      `json:"price,omitempty"`
	Currency       string        `json:"currency,omitempty"`
	Confidence     float64       `json:"confidence,omitempty"`
	RespondedCount int           `json:"respondedCount,omitempty"`
	TotalCount     int           `json:"totalCount,omitempty"`
	RequestStatus  RequestStatus `json:"requestStatus,omitempty"`
}

// ApproveQuoteRequest is the dashboard payload for approving a quote
type ApproveQuoteRequest struct {
	QuoteID      uuid.UUID  `json:"quoteId" validate:"required"`
	ApprovedByID *uuid.UUID `json:"approvedById"`
}

// ApproveQuoteResult is returned after a purchase order has been issued
type ApproveQuoteResult struct {
	PONumber        string   `json:"poNumber"`
	SupplierName    string   `json:"supplierName"`
	Amount          float64  `json:"amount"`
	Currency        string   `json:"currency"`
	Status          string   `json:"status"`
	DeclinesSent    int      `json:"declinesSent"`
	FailedRecipient []string `json:"failedRecipients,omitempty"`
}

// QuoteComparisonRow is one supplier's row in the comparison view.
// Quote fields are nil until the supplier has actually quoted.
type QuoteComparisonRow struct {
	InquiryID           uuid.UUID          `json:"inquiryId"`
	SupplierID          uuid.UUID          `json:"supplierId"`
	SupplierName        string             `json:"supplierName"`
	SupplierLocation    string             `json:"supplierLocation,omitempty"`
	InquiryStatus       InquiryStatus      `json:"inquiryStatus"`
	SentAt              string             `json:"sentAt"`
	QuoteID             *uuid.UUID         `json:"quoteId,omitempty"`
	Price               *float64           `json:"price,omitempty"`
	Currency            string             `json:"currency,omitempty"`
	TotalPrice          *float64           `json:"totalPrice,omitempty"`
	ShippingCost        *float64           `json:"shippingCost,omitempty"`
	Availability        QuoteAvailability  `json:"availability,omitempty"`
	DeliveryDays        *int               `json:"deliveryDays,omitempty"`
	Condition           string             `json:"condition,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	RawMessage          string             `json:"rawMessage,omitempty"`
	Confidence          *float64           `json:"confidence,omitempty"`
	NeedsReview         *bool              `json:"needsReview,omitempty"`
	ResponseTimeMinutes *int               `json:"responseTimeMinutes,omitempty"`
}

// ComparisonSummary holds aggregate statistics across one request's quotes
type ComparisonSummary struct {
	TotalSuppliers   int      `json:"totalSuppliers"`
	Responded        int      `json:"responded"`
	BestPrice        *float64 `json:"bestPrice,omitempty"`
	FastestDelivery  *int     `json:"fastestDelivery,omitempty"`
}

// QuoteComparison is the full dashboard view for one request
type QuoteComparison struct {
	Request RequestDTO           `json:"partsRequest"`
	Quotes  []QuoteComparisonRow `json:"quotes"`
	Summary ComparisonSummary    `json:"summary"`
}

// RequestDTO is the list/detail projection of a parts request
type RequestDTO struct {
	ID                 uuid.UUID      `json:"id"`
	PartDescription    string         `json:"partDescription"`
	VehicleInfo        string         `json:"vehicleInfo,omitempty"`
	Quantity           int            `json:"quantity"`
	Urgency            RequestUrgency `json:"urgency"`
	Deadline           string         `json:"deadline,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Status             RequestStatus  `json:"status"`
	SuppliersTotal     int            `json:"suppliersTotal"`
	SuppliersResponded int            `json:"suppliersResponded"`
	CreatedAt          string         `json:"createdAt"`
}

// OrderDTO is the list projection of a purchase order
type OrderDTO struct {
	ID               uuid.UUID   `json:"id"`
	PONumber         string      `json:"poNumber"`
	PartDescription  string      `json:"part"`
	SupplierName     string      `json:"supplier"`
	Amount           float64     `json:"amount"`
	Currency         string      `json:"currency"`
	Status           OrderStatus `json:"status"`
	ExpectedDelivery string      `json:"expectedDelivery,omitempty"`
	CreatedAt        string      `json:"createdAt"`
}

// SupplierDTO is the dashboard projection of a supplier
type SupplierDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	ContactName        string    `json:"contactName,omitempty"`
	Phone              string    `json:"phone"`
	Categories         []string  `json:"categories"`
	Location           string    `json:"location,omitempty"`
	IsActive           bool      `json:"isActive"`
	AvgResponseMinutes *int      `json:"avgResponseMinutes,omitempty"`
	CreatedAt          string    `json:"createdAt"`
}

// CreateSupplierRequest is the payload for registering a supplier
type CreateSupplierRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	ContactName string   `json:"contactName" validate:"max=200"`
	Phone       string   `json:"phone" validate:"required,max=50"`
	Categories  []string `json:"categories"`
	Location    string   `json:"location" validate:"max=200"`
}

// UpdateSupplierRequest is the payload for updating a supplier
type UpdateSupplierRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	ContactName *string   `json:"contactName" validate:"omitempty,max=200"`
	Phone       *string   `json:"phone" validate:"omitempty,max=50"`
	Categories  *[]string `json:"categories"`
	Location    *string   `json:"location" validate:"omitempty,max=200"`
	IsActive    *bool     `json:"isActive"`
}

// MessageRecordDTO is the dashboard projection of a logged message
type MessageRecordDTO struct {
	ID                uuid.UUID        `json:"id"`
	Direction         MessageDirection `json:"direction"`
	FromNumber        string           `json:"fromNumber,omitempty"`
	ToNumber          string           `json:"toNumber,omitempty"`
	Body              string           `json:"body"`
	ExternalMessageID string           `json:"externalMessageId,omitempty"`
	DeliveryStatus    string           `json:"deliveryStatus,omitempty"`
	Source            MessageSource    `json:"source,omitempty"`
	CreatedAt         string           `json:"createdAt"`
}

// DashboardMetrics holds the headline numbers for the dashboard
type DashboardMetrics struct {
	ActiveRequests int `json:"activeRequests"`
	QuotesReceived int `json:"quotesReceived"`
	OrdersIssued   int `json:"ordersIssued"`
	NeedsReview    int `json:"needsReview"`
}

// PaginatedResponse wraps a paginated list result
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
