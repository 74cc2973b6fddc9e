package main

import (
	"flag"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"phone_hunter/internal/config"
	"phone_hunter/internal/domain"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/service/profit"
	"phone_hunter/internal/domain/value"
)

//	go run cmd/score/main.go -config config.yaml -title "iPhone 12 64GB pękniety ekran" -price 800
//
// Scores a single listing offline against the catalog, without touching the
// database or Telegram. Handy for tuning the price table.
func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to hunting config")
		title       = flag.String("title", "", "listing title")
		price       = flag.Int64("price", 0, "listing price, zł")
		description = flag.String("desc", "", "listing description")
		asJSON      = flag.Bool("json", false, "print the full decision as JSON")
	)
	flag.Parse()

	if *title == "" {
		fmt.Fprintln(os.Stderr, "usage: score -config config.yaml -title \"iPhone 12 pękniety\" -price 800")
		os.Exit(2)
	}

	hunting, err := config.LoadHunting(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	engine := profit.NewEngine(hunting.Catalog())

	decision, err := engine.Score(entity.Listing{
		Title:       *title,
		Price:       *price,
		Description: *description,
		Source:      value.SourceOLX,
	})
	if err != nil {
		if code, ok := domain.GetCode(err); ok {
			fmt.Fprintf(os.Stderr, "%s: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "score: %v\n", err)
		}
		os.Exit(1)
	}

	if *asJSON {
		out, _ := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(decision, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("model:      %s\n", decision.Model)
	fmt.Printf("condition:  %s\n", decision.Condition)
	if len(decision.Damages) > 0 {
		fmt.Printf("damages:    %v\n", decision.Damages)
	}
	fmt.Printf("total cost: %d zł (cena %d + naprawa %d)\n", decision.TotalCost, decision.BuyPrice, decision.RepairCost)
	fmt.Printf("profit:     %d zł (%.1f%%)\n", decision.PotentialProfit, decision.ProfitMargin)
	fmt.Println(decision.Summary)
}
