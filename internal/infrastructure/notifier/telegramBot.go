package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/pkg/logx"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run consumes deals and smart matches until both channels close or the
// context is cancelled. Send failures are logged, never propagated: a flaky
// chat API must not stall the scan loop.
func (b *TelegramBot) Run(ctx context.Context, deals <-chan entity.Deal, matches <-chan entity.SmartMatch) error {
	for deals != nil || matches != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case deal, ok := <-deals:
			if !ok {
				deals = nil
				continue
			}
			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal", logx.Error(err))
			}

		case match, ok := <-matches:
			if !ok {
				matches = nil
				continue
			}
			if err := b.SendMatch(ctx, match); err != nil {
				logger(ctx).Error("failed to send match", logx.Error(err))
			}
		}
	}

	return nil
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	d := deal.Decision

	damages := "—"
	if len(d.Damages) > 0 {
		damages = strings.Join(d.Damages, ", ")
	}

	text := fmt.Sprintf(
		"📱 <b>%s</b>\n\n"+
			"🏷 <b>Model:</b> %s\n"+
			"🔧 <b>Stan:</b> %s (%s)\n"+
			"💰 <b>Cena:</b> %d zł\n"+
			"🛠 <b>Naprawa:</b> %d zł\n"+
			"📈 <b>Zysk:</b> %d zł (%.1f%%)\n\n"+
			"%s\n\n"+
			"🔗 <a href=\"%s\">Zobacz ogłoszenie</a>",
		escapeHTML(d.Listing.Title),
		d.Model,
		d.Condition,
		damages,
		d.BuyPrice,
		d.RepairCost,
		d.PotentialProfit,
		d.ProfitMargin,
		d.Summary,
		d.Listing.URL,
	)

	return b.sendHTML(ctx, text)
}

func (b *TelegramBot) SendMatch(ctx context.Context, match entity.SmartMatch) error {
	text := fmt.Sprintf(
		"💡 <b>POŁĄCZ 2 OFERTY!</b> (%s)\n\n"+
			"🏷 <b>Model:</b> %s\n"+
			"1️⃣ %s — %d zł\n"+
			"2️⃣ %s — %d zł\n\n"+
			"💸 <b>Koszt razem:</b> %d zł\n"+
			"📈 <b>Zysk:</b> %d zł (%.1f%%)",
		match.CombinationType,
		match.Model,
		escapeHTML(match.First.Listing.Title),
		match.First.BuyPrice,
		escapeHTML(match.Second.Listing.Title),
		match.Second.BuyPrice,
		match.CombinedCost,
		match.PotentialProfit,
		match.ProfitMargin,
	)

	return b.sendHTML(ctx, text)
}

// SendVerdict posts the follow-up LLM sanity check for a deal.
func (b *TelegramBot) SendVerdict(ctx context.Context, deal entity.Deal, verdict entity.AIVerdict) error {
	worth := "❌ NIE"
	if verdict.WorthBuying {
		worth = "✅ TAK"
	}

	scam := ""
	if verdict.IsScam {
		scam = "\n🚨 <b>Możliwe oszustwo!</b>"
	}

	text := fmt.Sprintf(
		"🤖 <b>AI o ofercie:</b> %s\n\n"+
			"⭐ <b>Stan:</b> %d/10\n"+
			"🛒 <b>Warto:</b> %s%s\n"+
			"💬 %s",
		escapeHTML(deal.Decision.Listing.Title),
		verdict.ConditionScore,
		worth,
		scam,
		escapeHTML(verdict.Reasoning),
	)

	return b.sendHTML(ctx, text)
}

// SendText sends a plain text message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

func (b *TelegramBot) sendHTML(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func escapeHTML(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
