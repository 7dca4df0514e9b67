package email

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// DispatchNotice is everything a delivery runner needs for one order
type DispatchNotice struct {
	OrderID    string
	FullName   string
	Block      string
	DoorNo     string
	Address    string
	VendorID   string
	Quantity   int
	TotalPrice int
	PlacedAt   time.Time
}

// BuildDispatchNoticeBody builds the HTML body for a dispatch notice
func BuildDispatchNoticeBody(n DispatchNotice) string {
	var rows strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		rows.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee; color: #666;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; font-weight: bold;">%s</td>
			</tr>`,
			label, html.EscapeString(value),
		))
	}

	row("Order", n.OrderID)
	row("Customer", n.FullName)
	row("Block", n.Block)
	row("Door No", n.DoorNo)
	row("Address", n.Address)
	row("Vendor", n.VendorID)
	row("Cans", strconv.Itoa(n.Quantity))
	row("Amount due", formatNumber(n.TotalPrice))
	row("Placed at", n.PlacedAt.UTC().Format("2006-01-02 15:04 MST"))

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px; border-bottom: 2px solid #2b8a3e; padding-bottom: 10px;">New can delivery</h1>
	<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
		%s
	</table>
</body>
</html>`, rows.String())
}

// formatNumber formats a number with thousand separators
func formatNumber(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		result.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
