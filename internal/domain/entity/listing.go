package entity

import "phone_hunter/internal/domain/value"

// Listing is a normalized marketplace ad, constructed per scrape. It has no
// persistent identity beyond its content: the same real ad reappears under
// different URLs across scans, so the URL is carried only as metadata for the
// notification link, never as identity.
type Listing struct {
	Title       string       `json:"title"`
	Price       int64        `json:"price"`
	Description string       `json:"description"`
	Location    string       `json:"location,omitempty"`
	Source      value.Source `json:"source"`
	URL         string       `json:"url,omitempty"`
}
