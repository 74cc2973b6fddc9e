package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
)

// Allegro scrapes the Allegro Lokalnie search results page.
type Allegro struct {
	browser   *Browser
	searchURL string
}

func NewAllegro(browser *Browser, searchURL string) *Allegro {
	return &Allegro{
		browser:   browser,
		searchURL: searchURL,
	}
}

func (s *Allegro) Name() value.Source { return value.SourceAllegro }

func (s *Allegro) Fetch(ctx context.Context) ([]entity.Listing, error) {
	var cards []scrapedCard
	if err := s.browser.evaluate(ctx, s.searchURL, allegroExtractScript, &cards); err != nil {
		return nil, fmt.Errorf("browser.evaluate: %w", err)
	}

	listings := make([]entity.Listing, 0, len(cards))
	for _, card := range cards {
		if strings.TrimSpace(card.Title) == "" || card.URL == "" {
			continue
		}

		listings = append(listings, entity.Listing{
			Title:    strings.TrimSpace(card.Title),
			Price:    parsePrice(card.Price),
			Location: strings.TrimSpace(card.Location),
			Source:   value.SourceAllegro,
			URL:      card.URL,
		})
	}

	logger(ctx).Debug("allegro page scraped", slog.Int("cards", len(cards)), slog.Int("listings", len(listings)))

	return listings, nil
}

const allegroExtractScript = `
	(function() {
		var out = [];
		var cards = document.querySelectorAll('a[href*="/oferta/"]');
		var seen = {};
		for (var i = 0; i < cards.length; i++) {
			var link = cards[i];
			var href = link.href || '';
			if (!href || seen[href]) continue;
			var card = link.closest('article') || link.closest('li') || link;
			var title = card.querySelector('h2, h3') || link;
			var priceEl = card.querySelector('[class*="price"], [data-testid*="price"]');
			var locEl = card.querySelector('[class*="location"], [data-testid*="location"]');
			var titleText = (title.textContent || '').trim();
			if (!titleText) continue;
			seen[href] = true;
			out.push({
				title: titleText,
				price: priceEl ? priceEl.textContent : '',
				location: locEl ? locEl.textContent : '',
				url: href
			});
		}
		return out;
	})()
`
