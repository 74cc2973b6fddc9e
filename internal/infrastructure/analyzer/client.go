package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"

	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/pkg/errcodes"
	"phone_hunter/pkg/httpx"
)

const (
	verdictCacheTTL     = 24 * time.Hour
	verdictCacheCleanup = time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type apiKeyAuthenticator struct {
	apiKey string
}

func (a apiKeyAuthenticator) Authenticate(context.Context) error { return nil }
func (a apiKeyAuthenticator) BearerToken() string                { return a.apiKey }

// Client talks to an OpenAI-compatible chat-completions endpoint and turns a
// scored deal into a structured second opinion.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	cache      *gocache.Cache
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, opts ...httpx.Option) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(http.DefaultTransport, opts...),
		apiKeyAuthenticator{apiKey: apiKey},
	)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		cache:   gocache.New(verdictCacheTTL, verdictCacheCleanup),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze returns the LLM verdict for a deal. Verdicts are cached by
// fingerprint so re-scans of the same listing never pay a second request.
func (c *Client) Analyze(ctx context.Context, deal entity.Deal) (entity.AIVerdict, error) {
	cacheKey := deal.Fingerprint.String()

	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(entity.AIVerdict), nil //nolint:forcetypeassert
	}

	verdict, err := c.complete(ctx, deal)
	if err != nil {
		return entity.AIVerdict{}, err
	}

	c.cache.SetDefault(cacheKey, verdict)

	return verdict, nil
}

func (c *Client) complete(ctx context.Context, deal entity.Deal) (entity.AIVerdict, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: dealPrompt(deal)},
		},
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		return entity.AIVerdict{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return entity.AIVerdict{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.AIVerdict{}, domain.WrapError(err, errcodes.AnalyzerFailure, "chat completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.AIVerdict{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.AIVerdict{}, domain.NewError(
			errcodes.AnalyzerFailure,
			fmt.Sprintf("chat completion returned status %d", resp.StatusCode),
		)
	}

	var parsed chatResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return entity.AIVerdict{}, domain.WrapError(err, errcodes.AnalyzerFailure, "malformed completion response")
	}

	if len(parsed.Choices) == 0 {
		return entity.AIVerdict{}, domain.NewError(errcodes.AnalyzerFailure, "completion returned no choices")
	}

	return parseVerdict(parsed.Choices[0].Message.Content)
}

// parseVerdict extracts the JSON verdict from a completion. Models often wrap
// JSON in markdown fences or chat filler, so it cuts to the outermost object.
func parseVerdict(content string) (entity.AIVerdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return entity.AIVerdict{}, domain.NewError(errcodes.AnalyzerFailure, "completion contains no JSON object")
	}

	var verdict entity.AIVerdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &verdict); err != nil {
		return entity.AIVerdict{}, domain.WrapError(err, errcodes.AnalyzerFailure, "malformed verdict JSON")
	}

	return verdict, nil
}

const systemPrompt = `Jesteś ekspertem od skupu używanych iPhone'ów w Polsce. ` +
	`Oceniasz ogłoszenia pod kątem opłacalności zakupu do odsprzedaży. ` +
	`Odpowiadasz WYŁĄCZNIE poprawnym JSON-em o polach: ` +
	`is_good_deal (bool), condition_score (int 1-10), is_scam (bool), ` +
	`estimated_profit (int, zł), worth_buying (bool), reasoning (string, po polsku, max 2 zdania).`

func dealPrompt(deal entity.Deal) string {
	d := deal.Decision

	return fmt.Sprintf(
		"Ogłoszenie:\nTytuł: %s\nCena: %d zł\nOpis: %s\nLokalizacja: %s\n\n"+
			"Moja wycena:\nModel: %s\nStan: %s\nUszkodzenia: %s\n"+
			"Koszt naprawy: %d zł\nCena rynkowa po naprawie: %d zł\nSzacowany zysk: %d zł\n\n"+
			"Czy to dobra okazja?",
		d.Listing.Title,
		d.BuyPrice,
		d.Listing.Description,
		d.Listing.Location,
		d.Model,
		d.Condition,
		strings.Join(d.Damages, ", "),
		d.RepairCost,
		d.MarketPrice,
		d.PotentialProfit,
	)
}
