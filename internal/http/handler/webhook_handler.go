package handler

import (
	"net/http"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
)

// emptyTwiML is the response Twilio expects when no reply message is queued.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// WebhookHandler receives inbound WhatsApp messages and delivery status
// callbacks from Twilio
type WebhookHandler struct {
	procurementService *service.ProcurementService
	logger             *zap.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(
	procurementService *service.ProcurementService,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		procurementService: procurementService,
		logger:             logger,
	}
}

// Inbound godoc
// @Summary WhatsApp inbound webhook
// @Description Receives inbound WhatsApp messages from Twilio and routes them
// @Tags Webhooks
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Sender number"
// @Param Body formData string true "Message body"
// @Param MessageSid formData string false "Twilio message SID"
// @Param ProfileName formData string false "WhatsApp profile name"
// @Success 200 {string} string "Empty TwiML response"
// @Router /webhook/whatsapp [post]
func (h *WebhookHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse webhook form", zap.Error(err))
		respondTwiML(w)
		return
	}

	msg := &domain.InboundMessage{
		From:              r.PostFormValue("From"),
		Body:              r.PostFormValue("Body"),
		ExternalMessageID: r.PostFormValue("MessageSid"),
		ProfileName:       r.PostFormValue("ProfileName"),
	}

	if msg.From == "" || msg.Body == "" {
		h.logger.Warn("webhook message missing sender or body")
		respondTwiML(w)
		return
	}

	result, err := h.procurementService.IngestMessage(r.Context(), msg)
	if err != nil {
		// Twilio retries on non-2xx. Processing failures are logged and
		// acknowledged so the same message is not redelivered.
		h.logger.Error("failed to process inbound message",
			zap.String("from", msg.From),
			zap.Error(err),
		)
		respondTwiML(w)
		return
	}

	h.logger.Info("inbound message processed",
		zap.String("from", msg.From),
		zap.String("status", string(result.Status)),
	)
	respondTwiML(w)
}

// Status godoc
// @Summary WhatsApp delivery status callback
// @Description Records Twilio delivery status updates for outbound messages
// @Tags Webhooks
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param MessageSid formData string true "Twilio message SID"
// @Param MessageStatus formData string true "Delivery status"
// @Success 200 {string} string "Empty TwiML response"
// @Router /webhook/whatsapp/status [post]
func (h *WebhookHandler) Status(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse status callback form", zap.Error(err))
		respondTwiML(w)
		return
	}

	sid := r.PostFormValue("MessageSid")
	status := r.PostFormValue("MessageStatus")
	if sid == "" || status == "" {
		respondTwiML(w)
		return
	}

	if err := h.procurementService.RecordDeliveryStatus(r.Context(), sid, status); err != nil {
		h.logger.Warn("failed to record delivery status",
			zap.String("message_sid", sid),
			zap.String("status", status),
			zap.Error(err),
		)
	}
	respondTwiML(w)
}

func respondTwiML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(emptyTwiML))
}
