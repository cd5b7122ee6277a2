package impl

import "strings"

// ctaVariantMarkers are the CTA variant families whose members see onboarding.
// Matching is by substring so versioned variants ("in-feed-cta-v2") qualify.
var ctaVariantMarkers = []string{"notifications", "welcome-widget", "in-feed-cta"}

// seesOnboarding reports whether the signup CTA variant opts the new account
// into the onboarding flow. The empty variant never does; "navbar_basic"
// matches exactly, the marker families by substring.
func seesOnboarding(ctaVariant string) bool {
	if ctaVariant == "" {
		return false
	}
	if ctaVariant == "navbar_basic" {
		return true
	}
	for _, marker := range ctaVariantMarkers {
		if strings.Contains(ctaVariant, marker) {
			return true
		}
	}

	return false
}
