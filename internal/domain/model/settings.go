package model

// TelegramConfig identifies the bot and chat receiving alerts.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Configured reports whether both bot token and chat id are set.
func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}
