package notify

import (
	"fmt"
	"strings"

	"github.com/phenrril/codstore/internal/domain"
)

var statusLabels = map[domain.OrderStatus]string{
	domain.OrderStatusProcessing: "قيد المعالجة",
	domain.OrderStatusReady:      "جاهز",
	domain.OrderStatusReturned:   "مرتجع",
}

func orderCreatedText(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "طلب جديد %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "الاسم: %s\nالهاتف: %s\n", o.CustomerName, o.CustomerPhone)
	fmt.Fprintf(&b, "العنوان: %s، %s\n", o.Province, o.Address)
	if o.Note != "" {
		fmt.Fprintf(&b, "ملاحظة: %s\n", o.Note)
	}
	b.WriteString("المنتجات:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d: %s\n", it.Name, it.Quantity, it.Total.StringFixed(0))
	}
	fmt.Fprintf(&b, "المجموع: %s د.ع (الدفع عند الاستلام)\n", o.Total.StringFixed(0))
	return b.String()
}

func statusChangedText(o *domain.Order, prev domain.OrderStatus) string {
	return fmt.Sprintf("الطلب %s: %s ← %s", o.OrderNumber, statusLabels[prev], statusLabels[o.Status])
}
