package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEvent() EventRecord {
	return EventRecord{
		ID:          "WK1",
		Title:       "Workshop",
		Date:        "2025-01-01",
		EduCode:     "EDU50",
		PartnerCode: "PART25",
		GeneralURL:  "https://g",
		EduURL:      "https://e",
		PartnerURL:  "https://p",
	}
}

func TestResolveEdu(t *testing.T) {
	resolution := Resolve(testEvent(), CategoryEdu)
	assert.Equal(t, "EDU50", resolution.PromoCode)
	assert.Equal(t, "https://e", resolution.RegistrationURL)
}

func TestResolveEduFallsBackToGeneralURL(t *testing.T) {
	event := testEvent()
	event.EduURL = "   "
	event.EduCode = ""

	resolution := Resolve(event, CategoryEdu)
	assert.Equal(t, "https://g", resolution.RegistrationURL)
	// An empty promo code is valid output: no code for this tier
	assert.Equal(t, "", resolution.PromoCode)
}

func TestResolvePartner(t *testing.T) {
	resolution := Resolve(testEvent(), CategoryPartner)
	assert.Equal(t, "PART25", resolution.PromoCode)
	assert.Equal(t, "https://p", resolution.RegistrationURL)

	event := testEvent()
	event.PartnerURL = ""
	assert.Equal(t, "https://g", Resolve(event, CategoryPartner).RegistrationURL)
}

func TestResolveGeneral(t *testing.T) {
	resolution := Resolve(testEvent(), CategoryGeneral)
	assert.Equal(t, "", resolution.PromoCode)
	assert.Equal(t, "https://g", resolution.RegistrationURL)
}
