package config

type Bot struct {
	Token   string `env:"BOT_TOKEN,required" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID,required"`
	AdminID int64  `env:"BOT_ADMIN_ID,required"`
}
