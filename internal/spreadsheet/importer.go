package spreadsheet

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phan14/du-an-ss2/internal/domain/deadline"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Header aliases tried in order for each imported field.
var (
	aliasCustomerName = []string{"Khách Hàng", "Tên khách hàng", "Họ tên", "Tên KH", "Customer Name", "Full Name", "Customer"}
	aliasPhone        = []string{"Số Điện Thoại", "SĐT", "Điện thoại", "Phone"}
	aliasOrderID      = []string{"Mã Đơn", "Mã đơn hàng", "ID", "Order ID"}
	aliasProduct      = []string{"Sản Phẩm", "Tên hàng", "Hàng hóa", "Product"}
	aliasQuantity     = []string{"Tổng SL", "Số lượng", "SL", "Quantity", "Qty"}
	aliasAmount       = []string{"Tổng Tiền", "Thành tiền", "Doanh thu", "Total", "Amount"}
	aliasDeposit      = []string{"Đã Cọc", "Cọc", "Tiền cọc", "Deposit"}
	aliasDelivered    = []string{"Thực Giao", "Đã giao", "Delivered"}
	aliasStatus       = []string{"Trạng Thái", "Tình trạng", "Status"}
	aliasNotes        = []string{"Ghi Chú", "Note", "Notes"}
	aliasCreated      = []string{"Ngày Đặt", "Ngày tạo", "Created"}
	aliasDeadline     = []string{"Hạn Giao", "Deadline"}
)

const (
	ordersSheet          = "Orders"
	walkInCustomer       = "Khách Vãng Lai"
	importedProductName  = "Sản phẩm nhập excel"
	importedSize         = "M"
	importedDeliveryNote = "Số lượng đã giao khi nhập Excel"
)

// ImportOptions controls defaults applied to imported rows.
type ImportOptions struct {
	Now           time.Time
	Location      *time.Location
	DeadlineDays  int
	NewCustomerID func() string
	NewOrderID    func() string
	NewEventID    func() string
}

// ImportResult holds rows ready to be persisted. Customers must be stored before Orders.
type ImportResult struct {
	Customers []model.Customer
	Orders    []model.Order
	Skipped   int
}

// ImportOrders parses an order workbook. Customers are matched by trimmed,
// case-insensitive name against existing and earlier rows.
func ImportOrders(r io.Reader, existing []model.Customer, opts ImportOptions) (ImportResult, error) {
	f, err := openWorkbook(r)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sheet := ordersSheet
	if !hasSheet(f, ordersSheet) && len(sheets) > 0 {
		sheet = sheets[0]
	}
	records, err := readTable(f, sheet)
	if err != nil {
		return ImportResult{}, err
	}

	known := make(map[string]string, len(existing))
	for _, c := range existing {
		known[customerKey(c.Name)] = c.ID
	}

	var res ImportResult
	for _, rec := range records {
		idVal := rec.first(aliasOrderID...)
		nameVal := rec.first(aliasCustomerName...)
		if idVal == "" && nameVal == "" {
			res.Skipped++
			continue
		}

		customerName := nameVal
		if customerName == "" {
			customerName = walkInCustomer
		}
		customerID, ok := known[customerKey(customerName)]
		if !ok {
			customerID = opts.NewCustomerID()
			known[customerKey(customerName)] = customerID
			res.Customers = append(res.Customers, model.Customer{
				ID:        customerID,
				Name:      customerName,
				Phone:     rec.first(aliasPhone...),
				CreatedAt: opts.Now,
			})
		}

		res.Orders = append(res.Orders, buildOrder(rec, idVal, customerID, opts))
	}
	return res, nil
}

func buildOrder(rec record, id, customerID string, opts ImportOptions) model.Order {
	product := rec.first(aliasProduct...)
	if product == "" {
		product = importedProductName
	}
	quantity := int(parseWhole(rec.first(aliasQuantity...)).IntPart())
	if quantity == 0 {
		quantity = 1
	}
	total := parseWhole(rec.first(aliasAmount...))
	var unitPrice int64
	if quantity > 0 {
		unitPrice = total.Div(decimal.NewFromInt(int64(quantity))).Floor().IntPart()
	}

	createdAt, ok := parseDate(rec.first(aliasCreated...), opts.Location)
	if !ok {
		createdAt = opts.Now
	}
	due, ok := parseDate(rec.first(aliasDeadline...), opts.Location)
	if !ok {
		due = opts.Now.In(opts.Location).AddDate(0, 0, opts.DeadlineDays)
	}

	if id == "" {
		id = opts.NewOrderID()
	}

	order := model.Order{
		ID:         id,
		CustomerID: customerID,
		Items: []model.OrderItem{{
			ProductName: product,
			Quantity:    quantity,
			Size:        importedSize,
			UnitPrice:   unitPrice,
		}},
		TotalAmount:   total.IntPart(),
		DepositAmount: parseWhole(rec.first(aliasDeposit...)).IntPart(),
		Status:        parseStatus(rec.first(aliasStatus...)),
		Deadline:      deadline.Date(due.In(opts.Location)),
		CreatedAt:     createdAt,
		Notes:         rec.first(aliasNotes...),
	}

	// The delivered count is carried as a single ledger entry so it stays the sum of history.
	if delivered := int(parseWhole(rec.first(aliasDelivered...)).IntPart()); delivered > 0 {
		order.DeliveryHistory = []model.DeliveryRecord{{
			ID:       opts.NewEventID(),
			Date:     createdAt,
			Quantity: delivered,
			Note:     importedDeliveryNote,
		}}
	}
	return ledger.Normalize(order)
}

func customerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseStatus maps free text onto a status by keyword, defaulting to pending.
func parseStatus(raw string) model.OrderStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return model.OrderStatusPending
	}
	if st, ok := model.ParseOrderStatus(strings.ToUpper(s)); ok {
		return st
	}
	switch {
	case strings.Contains(s, "hoàn thành"), strings.Contains(s, "xong"),
		strings.Contains(s, "complete"), strings.Contains(s, "done"):
		return model.OrderStatusCompleted
	case strings.Contains(s, "hủy"), strings.Contains(s, "cancel"):
		return model.OrderStatusCancelled
	case strings.Contains(s, "sản xuất"), strings.Contains(s, "đang làm"),
		strings.Contains(s, "production"), strings.Contains(s, "progress"):
		return model.OrderStatusInProgress
	}
	return model.OrderStatusPending
}

var groupedThousands = regexp.MustCompile(`^-?\d{1,3}([.,]\d{3})+$`)

// parseWhole reads a money or count cell such as "1.500.000", "1,500,000 đ" or "12.5",
// truncating any fraction. Unparseable text yields zero.
func parseWhole(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	for _, suffix := range []string{"₫", "đ", "VND", "vnd"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	s = strings.ReplaceAll(s, " ", "")
	if groupedThousands.MatchString(s) {
		s = strings.NewReplacer(".", "", ",", "").Replace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Truncate(0)
}
