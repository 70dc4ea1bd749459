package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_RequestKeywordFromParty(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	party := env.createParty(t, org, "Ahmed", "+97455001111", domain.PartyRoleBuyer)

	decision, err := env.routing.Route(context.Background(), "whatsapp:+97455001111", "Need brake pads for Hilux 2020")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryNewRequest, decision.Category)
	require.NotNil(t, decision.PartyID)
	assert.Equal(t, party.ID, *decision.PartyID)
}

func TestRoute_RequestKeywordOverridesOpenInquiry(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009999")
	request := env.createRequest(t, org, "oil filter", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	decision, err := env.routing.Route(context.Background(), "whatsapp:+97455009999", "need brake pads for hilux")
	require.NoError(t, err)

	// Even with an inquiry open, a request keyword wins
	assert.Equal(t, domain.CategoryNewRequest, decision.Category)
	assert.True(t, decision.HasOpenInquiry)
}

func TestRoute_StatusPhrase(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createParty(t, org, "Khalid", "+97455003333", domain.PartyRoleRequester)

	decision, err := env.routing.Route(context.Background(), "whatsapp:+97455003333", "Any update on my brake pads?")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryStatusInquiry, decision.Category)
}

func TestRoute_SupplierReplyToOpenInquiry(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009999")
	request := env.createRequest(t, org, "oil filter", domain.RequestStatusRFQSent)
	inquiry := env.createInquiry(t, request, supplier, time.Now().UTC())

	decision, err := env.routing.Route(context.Background(), "whatsapp:+97455009999", "Yes we have it, 450 QAR, in stock")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryInquiryReply, decision.Category)
	require.NotNil(t, decision.OpenInquiryID)
	assert.Equal(t, inquiry.ID, *decision.OpenInquiryID)
}

func TestRoute_MostRecentOpenInquiryWins(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009999")

	older := env.createRequest(t, org, "oil filter", domain.RequestStatusRFQSent)
	env.createInquiry(t, older, supplier, time.Now().UTC().Add(-2*time.Hour))
	newer := env.createRequest(t, org, "brake pads", domain.RequestStatusRFQSent)
	latest := env.createInquiry(t, newer, supplier, time.Now().UTC())

	decision, err := env.routing.Route(context.Background(), "+97455009999", "450 QAR in stock")
	require.NoError(t, err)

	require.NotNil(t, decision.OpenInquiryID)
	assert.Equal(t, latest.ID, *decision.OpenInquiryID)
}

func TestRoute_ClosedRequestInquiryIgnored(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009999")
	request := env.createRequest(t, org, "oil filter", domain.RequestStatusOrdered)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.intent = extraction.IntentSupplierResponse

	decision, err := env.routing.Route(context.Background(), "+97455009999", "450 QAR in stock")
	require.NoError(t, err)

	assert.False(t, decision.HasOpenInquiry)
	// Known supplier but no live inquiry: classifier decides
	assert.Equal(t, domain.CategoryInquiryReply, decision.Category)
	assert.Nil(t, decision.OpenInquiryID)
}

func TestRoute_KnownPartyFreeTextIsNewRequest(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createParty(t, org, "Ahmed", "+97455001111", domain.PartyRoleBuyer)

	decision, err := env.routing.Route(context.Background(), "+97455001111", "brake pads hilux 2020 front set")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryNewRequest, decision.Category)
}

func TestRoute_UnknownSenderFallsBackToClassifier(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t)

	env.extractor.intent = extraction.IntentPartsRequest
	decision, err := env.routing.Route(context.Background(), "+15550001111", "hello do you have gearbox for camry")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryNewRequest, decision.Category)

	env.extractor.intent = extraction.IntentUnknown
	decision, err = env.routing.Route(context.Background(), "+15550001111", "asdf")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUnclassifiable, decision.Category)
}
