package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"phone_hunter/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnStartScan, th.CommandEqual("startscan"))
	adminGroup.HandleMessage(h.OnStopScan, th.CommandEqual("stopscan"))
	adminGroup.HandleMessage(h.OnSetBudget, th.CommandEqual("setbudget"))
	adminGroup.HandleMessage(h.OnSetMinProfit, th.CommandEqual("setminprofit"))
	adminGroup.HandleMessage(h.OnCatalog, th.CommandEqual("catalog"))
	adminGroup.HandleMessage(h.OnReload, th.CommandEqual("reload"))
}
