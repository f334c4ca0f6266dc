// Package chatlink builds click-to-chat links that open a WhatsApp
// conversation with the dive center from websites and marketing material.
package chatlink

import (
	"fmt"
	"net/url"
	"strings"

	"diveops-console/internal/leadimport"
)

const baseURL = "https://wa.me/"

// Build returns a wa.me link for the given phone number with an optional
// prefilled message. The number is validated with the same rules the lead
// extractor applies to inbound text.
func Build(phone, prefill string) (string, error) {
	normalized, _, ok := leadimport.NormalizePhone(phone)
	if !ok {
		return "", fmt.Errorf("invalid phone number %q", phone)
	}

	// wa.me wants bare digits with the country code, no plus sign.
	link := baseURL + strings.TrimPrefix(normalized, "+")
	if prefill != "" {
		link += "?text=" + url.QueryEscape(prefill)
	}
	return link, nil
}
