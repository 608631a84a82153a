package spreadsheet

import (
	"fmt"
	"strings"
	"time"
)

// nameSlug joins the words of s with underscores.
func nameSlug(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// OrdersFileName names an order export. A search term wins over a customer name.
func OrdersFileName(search, customerName string, t time.Time) string {
	switch {
	case strings.TrimSpace(search) != "":
		return fmt.Sprintf("don_hang_%s.xlsx", nameSlug(search))
	case strings.TrimSpace(customerName) != "":
		return fmt.Sprintf("DonHang_%s.xlsx", nameSlug(customerName))
	default:
		return fmt.Sprintf("danh_sach_don_hang_%d.xlsx", t.Year())
	}
}

func GluingFileName(t time.Time) string {
	return fmt.Sprintf("ui_keo_ep_keo_%s.xlsx", t.Format(time.DateOnly))
}

func CustomerStatsFileName(customerName string) string {
	return fmt.Sprintf("ThongKe_%s.xlsx", nameSlug(customerName))
}
