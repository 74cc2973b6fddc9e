// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

type Listing struct {
	Title       string `json:"title" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Source      string `json:"source"`
	URL         string `json:"url"`
}

type Decision struct {
	Model           string   `json:"model"`
	Condition       string   `json:"condition"`
	Damages         []string `json:"damages"`
	BuyPrice        int64    `json:"buyPrice"`
	MarketPrice     int64    `json:"marketPrice"`
	RepairCost      int64    `json:"repairCost"`
	TotalCost       int64    `json:"totalCost"`
	PotentialProfit int64    `json:"potentialProfit"`
	ProfitMargin    float64  `json:"profitMargin"`
	MaxBuyPrice     int64    `json:"maxBuyPrice"`
	IsProfitable    bool     `json:"isProfitable"`
	Recommendation  string   `json:"recommendation"`
	Summary         string   `json:"summary"`
}

type LedgerEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	RecordedAt  time.Time `json:"recordedAt"`
}

type Status struct {
	ScannerRunning bool             `json:"scannerRunning"`
	CatalogVersion int64            `json:"catalogVersion"`
	MaxBudget      int64            `json:"maxBudget"`
	EnabledModels  []string         `json:"enabledModels"`
	LedgerBySource map[string]int64 `json:"ledgerBySource"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
