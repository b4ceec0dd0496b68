package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

const (
	EmptyCartText      = "Your cart is empty. Add services to get started."
	ExportDisabledText = "CSV download disabled: cart is empty"
	ExportEnabledText  = "CSV download available: run export"
)

// DrawCartTable renders the cart mirror, or the empty placeholder
func DrawCartTable(w io.Writer, items []model.CartItem, total decimal.Decimal) {
	if model.CartStateOf(items) == model.CartEmpty {
		fmt.Fprintln(w, text.FgHiBlack.Sprint(EmptyCartText))
		fmt.Fprintln(w, text.FgHiBlack.Sprint(ExportDisabledText))
		return
	}

	tw := table.Table{}
	tw.AppendHeader(table.Row{
		"ID",
		"Service",
		"Resource",
		"Specifications",
		"Region",
		"Qty",
		"Hourly",
		"Monthly",
	})

	for _, item := range items {
		tw.AppendRow(populateCartRow(item))
	}

	tw.AppendFooter(table.Row{"", "", "", "", "", "", "Total", text.FgHiGreen.Sprintf("$%s", total.StringFixed(2))})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{
			Number:   4,
			WidthMax: 48,
		},
		{
			Number: 6,
			Align:  text.AlignRight,
		},
		{
			Number: 7,
			Align:  text.AlignRight,
		},
		{
			Number:      8,
			Align:       text.AlignRight,
			AlignFooter: text.AlignRight,
		},
	})

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w, text.FgGreen.Sprint(ExportEnabledText))
}

func populateCartRow(item model.CartItem) table.Row {
	return table.Row{
		text.FgHiBlack.Sprint(item.ID),
		text.FgBlue.Sprint(item.Service),
		item.ResourceType,
		item.Specifications,
		item.Region,
		item.Quantity,
		FormatHourly(item.HourlyCost),
		text.FgGreen.Sprint(FormatMonthly(item.MonthlyCost)),
	}
}

// FormatHourly shows an hourly rate with four decimals
func FormatHourly(d decimal.Decimal) string {
	return fmt.Sprintf("$%s/hr", d.StringFixed(4))
}

// FormatMonthly shows a monthly cost with two decimals
func FormatMonthly(d decimal.Decimal) string {
	return fmt.Sprintf("$%s/mo", d.StringFixed(2))
}
