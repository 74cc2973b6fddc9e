package handler

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"phone_hunter/internal/transport/bot/view"
	"phone_hunter/pkg/lox"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	scannerStatus := "🔴 zatrzymany"
	if h.scanner.IsRunning() {
		scannerStatus = "🟢 działa"
	}

	catalog := h.store.Snapshot()

	matching := "❌ wył"
	if catalog.SmartMatching.Enabled {
		matching = "✅ wł"
	}

	text := fmt.Sprintf(`📊 <b>Status</b>

🔍 <b>Skaner:</b> %s
⚙️ <b>Konfiguracja:</b> v%d
💰 <b>Budżet:</b> %d zł
📱 <b>Modele:</b> %s
💡 <b>Łączenie ofert:</b> %s
`,
		scannerStatus,
		catalog.Version,
		catalog.MaxBudget,
		strings.Join(catalog.EnabledModels, ", "),
		matching,
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnStartScan(ctx *th.Context, msg telego.Message) error {
	if h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerAlreadyRunning)
	}

	if err := h.scanner.Start(context.WithoutCancel(ctx)); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf("Błąd uruchomienia skanera: %v", err))
	}

	return h.send(ctx, msg.Chat.ID, view.ScannerStarted)
}

func (h *Handler) OnStopScan(ctx *th.Context, msg telego.Message) error {
	if !h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerNotRunning)
	}

	h.scanner.Stop()

	return h.send(ctx, msg.Chat.ID, view.ScannerStopped)
}

func (h *Handler) OnSetBudget(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return h.send(ctx, msg.Chat.ID, view.SetBudgetMissingArgument)
	}

	amount, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || amount <= 0 {
		return h.send(ctx, msg.Chat.ID, view.SetBudgetInvalidFormat)
	}

	catalog, err := h.store.SetBudget(amount)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, view.SetBudgetInvalidFormat)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SetBudgetSuccess, catalog.MaxBudget, catalog.Version))
}

func (h *Handler) OnSetMinProfit(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return h.send(ctx, msg.Chat.ID, view.SetMinProfitMissingArgument)
	}

	amount, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || amount < 0 {
		return h.send(ctx, msg.Chat.ID, view.SetMinProfitInvalidFormat)
	}

	catalog, err := h.store.SetMinProfit(amount)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, view.SetMinProfitInvalidFormat)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SetMinProfitSuccess, amount, catalog.Version))
}

func (h *Handler) OnCatalog(ctx *th.Context, msg telego.Message) error {
	catalog := h.store.Snapshot()

	if len(catalog.Pricing) == 0 {
		return h.send(ctx, msg.Chat.ID, view.CatalogEmpty)
	}

	models := make([]string, 0, len(catalog.Pricing))
	for model := range catalog.Pricing {
		models = append(models, model)
	}
	sort.Strings(models)

	lines := lox.Map(models, func(model string) string {
		rule := catalog.Pricing[model]
		return fmt.Sprintf(
			view.CatalogItem,
			model,
			rule.MarketPrice,
			rule.BuyMaxWorking,
			rule.BuyMaxBroken,
			rule.BuyMaxLocked,
			rule.RepairCost,
			rule.MinProfit,
		)
	})

	text := fmt.Sprintf(view.CatalogHeader, catalog.Version) + strings.Join(lines, "")

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnReload(ctx *th.Context, msg telego.Message) error {
	fresh, err := h.reload()
	if err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.ReloadError, err))
	}

	catalog := h.store.Replace(fresh)

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.ReloadSuccess, catalog.Version, len(catalog.Pricing)))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
