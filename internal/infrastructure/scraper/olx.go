package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
)

type scrapedCard struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// OLX scrapes the OLX.pl search results page.
type OLX struct {
	browser   *Browser
	searchURL string
}

func NewOLX(browser *Browser, searchURL string) *OLX {
	return &OLX{
		browser:   browser,
		searchURL: searchURL,
	}
}

func (s *OLX) Name() value.Source { return value.SourceOLX }

func (s *OLX) Fetch(ctx context.Context) ([]entity.Listing, error) {
	var cards []scrapedCard
	if err := s.browser.evaluate(ctx, s.searchURL, olxExtractScript, &cards); err != nil {
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
			Source:   value.SourceOLX,
			URL:      card.URL,
		})
	}

	logger(ctx).Debug("olx page scraped", slog.Int("cards", len(cards)), slog.Int("listings", len(listings)))

	return listings, nil
}

const olxExtractScript = `
	(function() {
		var out = [];
		var cards = document.querySelectorAll('div[data-cy="l-card"], div[data-testid="l-card"]');
		for (var i = 0; i < cards.length; i++) {
			var card = cards[i];
			var link = card.querySelector('a[href]');
			var title = card.querySelector('h4, h6, a > div');
			var price = card.querySelector('p[data-testid="ad-price"]');
			var loc = card.querySelector('p[data-testid="location-date"]');
			if (!link || !title) continue;
			var href = link.href || '';
			if (href.indexOf('http') !== 0) href = 'https://www.olx.pl' + href;
			out.push({
				title: title.textContent || '',
				price: price ? price.textContent : '',
				location: loc ? (loc.textContent || '').split(' - ')[0] : '',
				url: href
			});
		}
		return out;
	})()
`
