package usecase

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
)

const unknownCustomerName = "N/A"

var vietnamese = message.NewPrinter(language.Vietnamese)

// alertFacts is everything an alert message shows about an order.
type alertFacts struct {
	order    model.Order
	customer string
	days     int
	loc      *time.Location
}

func (f alertFacts) header(b *strings.Builder) {
	fmt.Fprintf(b, "<b>Mã đơn:</b> #%s\n", html.EscapeString(f.order.ID))
	fmt.Fprintf(b, "<b>Khách hàng:</b> %s\n", html.EscapeString(f.customer))
	fmt.Fprintf(b, "<b>Sản phẩm:</b> %s\n", html.EscapeString(productNames(f.order.Items)))
	fmt.Fprintf(b, "<b>Hạn giao:</b> %s\n", shortDate(f.order.Deadline, f.loc))
}

func (f alertFacts) progress(b *strings.Builder) {
	fmt.Fprintf(b, "<b>Tiến độ:</b> %s/%s\n",
		vietnamese.Sprintf("%d", f.order.ActualDeliveryQuantity),
		vietnamese.Sprintf("%d", f.order.TotalQuantity()))
	fmt.Fprintf(b, "<b>Trạng thái:</b> %s\n", f.order.Status.Label())
}

// threeDayMessage is sent once when an order has three days left.
func threeDayMessage(f alertFacts) string {
	var b strings.Builder
	b.WriteString("📌 <b>NHẮC NHỞ ĐƠN HÀNG - CÒN 3 NGÀY</b>\n\n")
	f.header(&b)
	f.progress(&b)
	b.WriteString("\n⏰ Bạn còn 3 ngày để chuẩn bị giao hàng!")
	return b.String()
}

// urgentMessage is sent for orders under three days or past their deadline.
func urgentMessage(f alertFacts) string {
	var b strings.Builder
	b.WriteString("🚨 <b>CẢNH BÁO ĐƠN HÀNG GẤP</b> 🚨\n\n")
	f.header(&b)
	fmt.Fprintf(&b, "<b>Tình trạng:</b> <b>%s</b>\n", urgencyText(f.days))
	f.progress(&b)
	reason := strings.TrimSpace(f.order.StatusReason)
	if reason == "" {
		reason = "Không có"
	}
	fmt.Fprintf(&b, "<b>Ghi chú:</b> %s\n", html.EscapeString(reason))
	b.WriteString("\n⚠️ Cần xử lý ngay!")
	return b.String()
}

func alertMessage(tier urgency.Tier, f alertFacts) string {
	if tier == urgency.TierThreeDay {
		return threeDayMessage(f)
	}
	return urgentMessage(f)
}

func urgencyText(days int) string {
	if days < 0 {
		return fmt.Sprintf("QUÁ HẠN %d NGÀY", -days)
	}
	return fmt.Sprintf("CÒN %d NGÀY", days)
}

func productNames(items []model.OrderItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.ProductName)
	}
	return strings.Join(names, ", ")
}

func shortDate(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
