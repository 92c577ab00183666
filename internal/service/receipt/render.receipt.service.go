package receipt

import (
	"fmt"
	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/logger"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const receiptWidth = 40

type Line struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Amount   string `json:"amount"`
}

// Receipt is a finalized order formatted for display and printing.
type Receipt struct {
	OrderID       string                 `json:"orderId"`
	CustomerName  string                 `json:"customerName"`
	PhoneNumber   string                 `json:"phoneNumber"`
	Lines         []Line                 `json:"lines"`
	Subtotal      string                 `json:"subtotal"`
	Tax           string                 `json:"tax"`
	GrandTotal    string                 `json:"grandTotal"`
	PaymentMethod enum.PaymentMethodEnum `json:"paymentMethod"`
	PaymentID     string                 `json:"paymentId,omitempty"`
	CreatedAt     *time.Time             `json:"createdAt,omitempty"`
	Text          string                 `json:"text"`
}

// Formatter renders amounts in one currency for one locale.
type Formatter struct {
	code    string
	printer *message.Printer
}

// NewFormatter accepts an ISO 4217 code in any case. An unknown code is
// still printed, just without validation.
func NewFormatter(code string, tag language.Tag) *Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if unit, err := currency.ParseISO(code); err == nil {
		code = unit.String()
	} else {
		logger.Warning.Printf("receipt: unknown currency %q: %v", code, err)
	}
	return &Formatter{code: code, printer: message.NewPrinter(tag)}
}

func (f *Formatter) Money(amount float64) string {
	return f.printer.Sprintf("%s %.2f", f.code, amount)
}

// Render builds the receipt of order.
func (f *Formatter) Render(order *types.Order) *Receipt {
	r := &Receipt{
		OrderID:       order.OrderID,
		CustomerName:  order.CustomerName,
		PhoneNumber:   order.PhoneNumber,
		Subtotal:      f.Money(order.Subtotal),
		Tax:           f.Money(order.Tax),
		GrandTotal:    f.Money(order.GrandTotal),
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
		Lines: lo.Map(order.Items, func(it types.OrderItem, _ int) Line {
			return Line{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    f.Money(it.Price),
				Amount:   f.Money(it.Price * float64(it.Quantity)),
			}
		}),
	}
	if order.PaymentDetails != nil {
		r.PaymentID = order.PaymentDetails.StripePaymentID
	}
	r.Text = f.text(r)
	return r
}

func (f *Formatter) text(r *Receipt) string {
	double := strings.Repeat("=", receiptWidth)
	single := strings.Repeat("-", receiptWidth)

	lines := []string{
		double,
		center("RECEIPT"),
		double,
		fmt.Sprintf("Order: %s", r.OrderID),
		fmt.Sprintf("Customer: %s", r.CustomerName),
		fmt.Sprintf("Phone: %s", r.PhoneNumber),
	}
	if r.CreatedAt != nil {
		lines = append(lines, fmt.Sprintf("Date: %s", r.CreatedAt.Format("02 Jan 2006 15:04")))
	}
	lines = append(lines, single)
	for _, l := range r.Lines {
		lines = append(lines, fmt.Sprintf("%d x %s @ %s = %s", l.Quantity, l.Name, l.Price, l.Amount))
	}
	lines = append(lines,
		single,
		column("Subtotal:", r.Subtotal),
		column("Tax (5%):", r.Tax),
		single,
		column("TOTAL:", r.GrandTotal),
		fmt.Sprintf("Payment: %s", r.PaymentMethod),
	)
	if r.PaymentID != "" {
		lines = append(lines, fmt.Sprintf("Payment ID: %s", r.PaymentID))
	}
	lines = append(lines, double, center("Thank you for your purchase!"), double)

	return strings.Join(lines, "\n")
}

func center(s string) string {
	pad := (receiptWidth - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func column(label, value string) string {
	gap := receiptWidth - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
