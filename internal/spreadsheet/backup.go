package spreadsheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
)

const (
	BackupVersion = "1.0"
	AppName       = "Quản Lý Xưởng May"

	sheetMeta      = "Meta"
	sheetCustomers = "Customers"
	sheetGluing    = "GluingRecords"
	sheetUsers     = "Users"
	sheetTelegram  = "TelegramConfig"
)

// ErrNotBackup is wrapped in ImportFormatError when a workbook has neither Meta nor Orders.
var ErrNotBackup = errors.New("workbook has no backup data sheet")

// BackupFileName names a backup taken at t.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("QuanLyXuong_Backup_%s.xlsx", t.Format(time.DateOnly))
}

type backupItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Color       string `json:"color,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type backupDelivery struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Quantity        int       `json:"quantity"`
	PaymentReceived int64     `json:"paymentReceived,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

var (
	metaColumns     = []column{{"version", 10}, {"exportDate", 25}, {"appName", 25}}
	customerColumns = []column{{"id", 20}, {"name", 25}, {"phone", 15}, {"email", 25}, {"address", 30}, {"notes", 30}, {"createdAt", 25}}
	backupOrderCols = []column{
		{"id", 12}, {"customerId", 20}, {"items", 50}, {"totalAmount", 15}, {"depositAmount", 15},
		{"status", 14}, {"statusReason", 20}, {"deadline", 25}, {"createdAt", 25}, {"notes", 30},
		{"aiAnalysis", 30}, {"actualDeliveryQuantity", 10}, {"deliveryHistory", 50},
	}
	backupGluingCols = []column{
		{"id", 20}, {"orderId", 12}, {"productName", 25}, {"gluingType", 15}, {"quantity", 10},
		{"failQuantity", 10}, {"date", 25}, {"workerName", 20}, {"notes", 30},
		{"temperature", 10}, {"pressure", 10}, {"duration", 10},
	}
	userColumns     = []column{{"username", 15}, {"name", 25}, {"role", 10}, {"password", 20}}
	telegramColumns = []column{{"botToken", 50}, {"chatId", 20}}
)

// Backup writes every table of snapshot into one workbook.
func Backup(snapshot repository.Snapshot, exportedAt time.Time) ([]byte, error) {
	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	if err := writeBackup(w, snapshot, exportedAt); err != nil {
		_ = w.f.Close()
		return nil, err
	}
	return w.bytes()
}

func writeBackup(w *workbook, s repository.Snapshot, exportedAt time.Time) error {
	meta := [][]any{{BackupVersion, exportedAt.UTC().Format(time.RFC3339), AppName}}
	if err := w.addTable(sheetMeta, metaColumns, meta); err != nil {
		return err
	}

	customers := make([][]any, 0, len(s.Customers))
	for _, c := range s.Customers {
		customers = append(customers, []any{c.ID, c.Name, c.Phone, c.Email, c.Address, c.Notes, isoTime(c.CreatedAt)})
	}
	if err := w.addTable(sheetCustomers, customerColumns, customers); err != nil {
		return err
	}

	orders := make([][]any, 0, len(s.Orders))
	for _, o := range s.Orders {
		items, history, err := encodeNested(o)
		if err != nil {
			return fmt.Errorf("encode order %s: %w", o.ID, err)
		}
		orders = append(orders, []any{
			o.ID, o.CustomerID, items, o.TotalAmount, o.DepositAmount, string(o.Status), o.StatusReason,
			isoTime(o.Deadline), isoTime(o.CreatedAt), o.Notes, o.AIAnalysis, o.ActualDeliveryQuantity, history,
		})
	}
	if err := w.addTable(ordersSheet, backupOrderCols, orders); err != nil {
		return err
	}

	gluing := make([][]any, 0, len(s.Gluing))
	for _, g := range s.Gluing {
		gluing = append(gluing, []any{
			g.ID, g.OrderID, g.ProductName, g.GluingType, g.Quantity, g.FailQuantity, isoTime(g.Date),
			g.WorkerName, g.Notes, g.Temperature, g.Pressure, g.Duration,
		})
	}
	if err := w.addTable(sheetGluing, backupGluingCols, gluing); err != nil {
		return err
	}

	users := make([][]any, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, []any{u.Username, u.Name, string(u.Role), u.Password})
	}
	if err := w.addTable(sheetUsers, userColumns, users); err != nil {
		return err
	}

	if s.Telegram.Configured() {
		tg := [][]any{{s.Telegram.BotToken, s.Telegram.ChatID}}
		if err := w.addTable(sheetTelegram, telegramColumns, tg); err != nil {
			return err
		}
	}
	return nil
}

func encodeNested(o model.Order) (items, history string, err error) {
	itemDocs := make([]backupItem, 0, len(o.Items))
	for _, it := range o.Items {
		itemDocs = append(itemDocs, backupItem(it))
	}
	historyDocs := make([]backupDelivery, 0, len(o.DeliveryHistory))
	for _, h := range o.DeliveryHistory {
		historyDocs = append(historyDocs, backupDelivery{ID: h.ID, Date: h.Date, Quantity: h.Quantity, PaymentReceived: h.Payment, Notes: h.Note})
	}
	rawItems, err := json.Marshal(itemDocs)
	if err != nil {
		return "", "", err
	}
	rawHistory, err := json.Marshal(historyDocs)
	if err != nil {
		return "", "", err
	}
	return string(rawItems), string(rawHistory), nil
}

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Restore reads a backup workbook into a snapshot. Sheets that are absent restore as empty tables.
// Malformed nested cells decode as empty lists.
func Restore(r io.Reader, loc *time.Location) (repository.Snapshot, error) {
	f, err := openWorkbook(r)
	if err != nil {
		return repository.Snapshot{}, err
	}
	defer f.Close()

	if !hasSheet(f, sheetMeta) && !hasSheet(f, ordersSheet) {
		return repository.Snapshot{}, &domainErrors.ImportFormatError{Err: ErrNotBackup}
	}

	var snap repository.Snapshot
	read := func(sheet string, fn func(record)) error {
		if !hasSheet(f, sheet) {
			return nil
		}
		recs, err := readTable(f, sheet)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fn(rec)
		}
		return nil
	}

	steps := []struct {
		sheet string
		fn    func(record)
	}{
		{sheetCustomers, func(rec record) {
			snap.Customers = append(snap.Customers, model.Customer{
				ID: rec["id"], Name: rec["name"], Phone: rec["phone"], Email: rec["email"],
				Address: rec["address"], Notes: rec["notes"], CreatedAt: restoreTime(rec["createdAt"], loc),
			})
		}},
		{ordersSheet, func(rec record) {
			snap.Orders = append(snap.Orders, restoreOrder(rec, loc))
		}},
		{sheetGluing, func(rec record) {
			snap.Gluing = append(snap.Gluing, model.GluingRecord{
				ID: rec["id"], OrderID: rec["orderId"], ProductName: rec["productName"], GluingType: rec["gluingType"],
				Quantity: restoreInt(rec["quantity"]), FailQuantity: restoreInt(rec["failQuantity"]),
				Date: restoreTime(rec["date"], loc), WorkerName: rec["workerName"], Notes: rec["notes"],
				Temperature: rec["temperature"], Pressure: rec["pressure"], Duration: rec["duration"],
			})
		}},
		{sheetUsers, func(rec record) {
			snap.Users = append(snap.Users, model.User{
				Username: rec["username"], Name: rec["name"], Role: model.UserRole(rec["role"]), Password: rec["password"],
			})
		}},
		{sheetTelegram, func(rec record) {
			if !snap.Telegram.Configured() {
				snap.Telegram = model.TelegramConfig{BotToken: rec["botToken"], ChatID: rec["chatId"]}
			}
		}},
	}
	for _, st := range steps {
		if err := read(st.sheet, st.fn); err != nil {
			return repository.Snapshot{}, err
		}
	}
	return snap, nil
}

func restoreOrder(rec record, loc *time.Location) model.Order {
	status, ok := model.ParseOrderStatus(rec["status"])
	if !ok {
		status = parseStatus(rec["status"])
	}
	o := model.Order{
		ID:                     rec["id"],
		CustomerID:             rec["customerId"],
		TotalAmount:            restoreInt64(rec["totalAmount"]),
		DepositAmount:          restoreInt64(rec["depositAmount"]),
		Status:                 status,
		StatusReason:           rec["statusReason"],
		Deadline:               restoreTime(rec["deadline"], loc),
		CreatedAt:              restoreTime(rec["createdAt"], loc),
		Notes:                  rec["notes"],
		AIAnalysis:             rec["aiAnalysis"],
		ActualDeliveryQuantity: restoreInt(rec["actualDeliveryQuantity"]),
	}

	var items []backupItem
	if err := json.Unmarshal([]byte(rec["items"]), &items); err != nil {
		items = nil
	}
	for _, it := range items {
		o.Items = append(o.Items, model.OrderItem(it))
	}

	var history []backupDelivery
	if err := json.Unmarshal([]byte(rec["deliveryHistory"]), &history); err != nil {
		history = nil
	}
	for _, h := range history {
		o.DeliveryHistory = append(o.DeliveryHistory, model.DeliveryRecord{
			ID: h.ID, Date: h.Date, Quantity: h.Quantity, Payment: h.PaymentReceived, Note: h.Notes,
		})
	}
	if len(o.DeliveryHistory) > 0 {
		o = ledger.Normalize(o)
	}
	return o
}

func restoreTime(raw string, loc *time.Location) time.Time {
	t, _ := parseDate(raw, loc)
	return t
}

func restoreInt(raw string) int {
	return int(restoreInt64(raw))
}

func restoreInt64(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return parseWhole(raw).IntPart()
}
