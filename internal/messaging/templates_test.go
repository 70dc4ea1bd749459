package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRFQBody(t *testing.T) {
	body := RFQBody("Cedars Motors", "Front brake pads", "Toyota Hilux 2020", 2, "Thursday")

	assert.Contains(t, body, "Cedars Motors")
	assert.Contains(t, body, "Part: Front brake pads")
	assert.Contains(t, body, "Vehicle: Toyota Hilux 2020")
	assert.Contains(t, body, "Quantity: 2")
	assert.Contains(t, body, "Needed by: Thursday")
}

func TestRFQBody_Defaults(t *testing.T) {
	body := RFQBody("Cedars Motors", "Oil filter", "", 1, "")

	assert.Contains(t, body, "Vehicle: N/A")
	assert.Contains(t, body, "Needed by: as soon as possible")
}

func TestPOConfirmationBody(t *testing.T) {
	body := POConfirmationBody("Cedars Motors", "PO-0007", "Front brake pads", "450", "QAR", "2 days")

	assert.Contains(t, body, "PO: PO-0007")
	assert.Contains(t, body, "Price: 450 QAR")
	assert.Contains(t, body, "Delivery by: 2 days")
}

func TestPOConfirmationBody_DeliveryDefault(t *testing.T) {
	body := POConfirmationBody("Cedars Motors", "PO-0007", "Front brake pads", "450", "QAR", "")

	assert.Contains(t, body, "Delivery by: to be confirmed")
}

func TestDeclineBody(t *testing.T) {
	body := DeclineBody("Front brake pads")

	assert.Contains(t, body, "Front brake pads")
	assert.Contains(t, body, "another supplier")
}
