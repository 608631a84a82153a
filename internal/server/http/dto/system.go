package dto

import "time"

// TelegramSettings holds the alert channel credentials.
type TelegramSettings struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

type ImportResponse struct {
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
	Skipped   int `json:"skipped"`
}

// BackupStatusResponse reports when the last backup was taken and whether a new one is due.
type BackupStatusResponse struct {
	LastBackup *time.Time `json:"lastBackup"`
	Due        bool       `json:"due"`
}

// RestoreResponse counts what a restore replaced.
type RestoreResponse struct {
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
	Gluing    int `json:"gluingRecords"`
	Users     int `json:"users"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
