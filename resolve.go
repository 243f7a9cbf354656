package main

import "strings"

// Resolution is the code/URL pair presented and logged for one submission.
// PromoCode may be empty, meaning no code exists for the tier.
type Resolution struct {
	PromoCode       string
	RegistrationURL string
}

// Resolve picks the promo code and registration URL for a category. Tier
// URLs that are blank after trimming fall back to the event's General URL.
func Resolve(event EventRecord, category Category) Resolution {
	switch category {
	case CategoryEdu:
		return Resolution{
			PromoCode:       event.EduCode,
			RegistrationURL: fallbackURL(event.EduURL, event.GeneralURL),
		}
	case CategoryPartner:
		return Resolution{
			PromoCode:       event.PartnerCode,
			RegistrationURL: fallbackURL(event.PartnerURL, event.GeneralURL),
		}
	default:
		return Resolution{
			PromoCode:       "",
			RegistrationURL: event.GeneralURL,
		}
	}
}

func fallbackURL(tier, general string) string {
	if strings.TrimSpace(tier) == "" {
		return general
	}
	return tier
}
