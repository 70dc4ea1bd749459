package messaging

import "fmt"

// RFQBody builds the request-for-quote message sent to each supplier
func RFQBody(orgName, partDescription, vehicleInfo string, quantity int, deadline string) string {
	if vehicleInfo == "" {
		vehicleInfo = "N/A"
	}
	if deadline == "" {
		deadline = "as soon as possible"
	}
	return fmt.Sprintf(
		"Good morning. This is a parts inquiry from %s.\n\n"+
			"Part: %s\n"+
			"Vehicle: %s\n"+
			"Quantity: %d\n"+
			"Needed by: %s\n\n"+
			"Please reply with your price and availability. Thank you.",
		orgName, partDescription, vehicleInfo, quantity, deadline,
	)
}

// POConfirmationBody builds the order confirmation sent to the winning supplier
func POConfirmationBody(orgName, poNumber, partDescription, price, currency, deliveryDate string) string {
	if deliveryDate == "" {
		deliveryDate = "to be confirmed"
	}
	return fmt.Sprintf(
		"Order confirmed from %s.\n\n"+
			"PO: %s\n"+
			"Part: %s\n"+
			"Price: %s %s\n"+
			"Delivery by: %s\n\n"+
			"Please confirm receipt of this order. Thank you.",
		orgName, poNumber, partDescription, price, currency, deliveryDate,
	)
}

// DeclineBody builds the courtesy message sent to suppliers who quoted but lost
func DeclineBody(partDescription string) string {
	return fmt.Sprintf(
		"Thank you for your quote on our recent inquiry (%s). "+
			"We have placed this order with another supplier. "+
			"We appreciate your time and will be in touch with future inquiries.",
		partDescription,
	)
}

// DeliveryFollowupBody builds the delivery status reminder for a confirmed order
func DeliveryFollowupBody(orgName, poNumber, partDescription string) string {
	return fmt.Sprintf(
		"Hi, this is a delivery reminder from %s.\n\n"+
			"PO: %s - %s\n"+
			"Expected delivery: today\n\n"+
			"Could you confirm the delivery status? Thank you.",
		orgName, poNumber, partDescription,
	)
}

// StatusInquiryAckBody is the holding reply for status questions
func StatusInquiryAckBody() string {
	return "Let me check on that for you. Please check the dashboard for the latest status, " +
		"or I'll get back to you shortly."
}
