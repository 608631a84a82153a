package spreadsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
)

const unknownCustomer = "Khách lẻ"

var orderColumns = []column{
	{"Mã Đơn", 10}, {"Khách Hàng", 20}, {"Số Điện Thoại", 12}, {"Sản Phẩm", 40},
	{"Tổng SL", 8}, {"Thực Giao", 10}, {"Tổng Tiền", 15}, {"Đã Cọc", 15}, {"Còn Lại", 15},
	{"Ngày Đặt", 12}, {"Hạn Giao", 12}, {"Trạng Thái", 15}, {"Ghi Chú", 20},
}

// ExportOrders renders the staff order list. Còn Lại is the reconciled balance.
func ExportOrders(orders []model.Order, customers []model.Customer, loc *time.Location) ([]byte, error) {
	byID := make(map[string]model.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		name, phone := unknownCustomer, ""
		if c, ok := byID[o.CustomerID]; ok {
			name, phone = c.Name, c.Phone
		}
		rows = append(rows, []any{
			o.ID, name, phone, itemsSummary(o.Items),
			o.TotalQuantity(), o.ActualDeliveryQuantity, o.TotalAmount, o.DepositAmount,
			ledger.Reconcile(o).Remaining,
			formatDate(o.CreatedAt, loc), formatDate(o.Deadline, loc), o.Status.Label(), o.Notes,
		})
	}

	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	if err := w.addTable(ordersSheet, orderColumns, rows); err != nil {
		_ = w.f.Close()
		return nil, err
	}
	return w.bytes()
}

func itemsSummary(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.ProductName, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

var gluingColumns = []column{
	{"Mã", 15}, {"Mã Đơn Hàng", 15}, {"Ngày Thực Hiện", 12}, {"Sản Phẩm", 30}, {"Loại Keo", 20},
	{"Người Làm", 20}, {"Tổng Số Lượng", 10}, {"Đạt (OK)", 10}, {"Lỗi (NG)", 10},
	{"Nhiệt Độ", 10}, {"Áp Suất", 10}, {"Thời Gian", 10}, {"Ghi Chú", 30},
}

// ExportGluing renders the lamination log with pass and fail counts.
func ExportGluing(records []model.GluingRecord, loc *time.Location) ([]byte, error) {
	rows := make([][]any, 0, len(records))
	for _, g := range records {
		rows = append(rows, []any{
			g.ID, g.OrderID, formatDate(g.Date, loc), g.ProductName, g.GluingType, g.WorkerName,
			g.Quantity, g.PassQuantity(), g.FailQuantity, g.Temperature, g.Pressure, g.Duration, g.Notes,
		})
	}

	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	if err := w.addTable("GluingRecords", gluingColumns, rows); err != nil {
		_ = w.f.Close()
		return nil, err
	}
	return w.bytes()
}

var customerStatsColumns = []column{
	{"Tháng/Năm", 12}, {"Khách Hàng", 20}, {"Tên Sản Phẩm", 30},
	{"Số Đơn Hàng", 12}, {"Tổng Số Lượng", 15}, {"Tổng Doanh Thu", 18},
}

// ExportCustomerStats flattens a customer's monthly product rollup, newest month first.
func ExportCustomerStats(customerName string, timeline []stats.Period) ([]byte, error) {
	var rows [][]any
	for _, p := range timeline {
		for _, pr := range p.Products {
			rows = append(rows, []any{p.Key, customerName, pr.Name, pr.OrderCount, pr.Quantity, pr.Revenue})
		}
	}

	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	if err := w.addTable("ThongKe", customerStatsColumns, rows); err != nil {
		_ = w.f.Close()
		return nil, err
	}
	return w.bytes()
}
