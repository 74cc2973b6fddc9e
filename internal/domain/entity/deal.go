package entity

import "phone_hunter/internal/domain/value"

// Deal is a scored listing that survived the dedup gate and is worth telling
// the operator about.
type Deal struct {
	Decision    ProfitDecision
	Fingerprint value.Fingerprint
}

// AIVerdict is the optional LLM sanity check of a deal. It is consulted after
// the rule-based verdict, never required for it.
type AIVerdict struct {
	IsGoodDeal      bool   `json:"is_good_deal"`
	ConditionScore  int    `json:"condition_score"`
	IsScam          bool   `json:"is_scam"`
	EstimatedProfit int64  `json:"estimated_profit"`
	WorthBuying     bool   `json:"worth_buying"`
	Reasoning       string `json:"reasoning"`
}
