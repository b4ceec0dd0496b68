package utils

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawForm renders the active service form with its current values and the
// choices each field offers
func DrawForm(w io.Writer, spec model.ServiceSpec, fields []model.FieldSpec, state model.FormState) {
	fmt.Fprintf(w, "%s  %s\n", text.FgHiWhite.Sprintf(" %s", spec.Label), text.FgHiBlack.Sprintf("(%s)", state.Region))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Field", "Key", "Value", "Choices"})
	for _, f := range fields {
		tw.AppendRow(table.Row{
			f.Label,
			text.FgHiBlack.Sprint(f.Key),
			text.FgYellow.Sprint(state.Value(f.Key, f.Default)),
			fieldChoices(f),
		})
	}
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{
			Number:   4,
			WidthMax: 60,
		},
	})

	fmt.Fprintln(w, tw.Render())
}

func fieldChoices(f model.FieldSpec) string {
	if len(f.Options) > 0 {
		return strings.Join(f.Options, ", ")
	}
	if f.Kind != model.FieldNumber {
		return ""
	}

	var hints []string
	if f.Min != nil {
		hints = append(hints, "min "+formatHint(*f.Min))
	}
	if f.Max != nil {
		hints = append(hints, "max "+formatHint(*f.Max))
	}
	if f.Step != nil {
		hints = append(hints, "step "+formatHint(*f.Step))
	}
	return strings.Join(hints, ", ")
}

func formatHint(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DrawQuote renders the first pricing entry and, when available, the cart
// item it would become
func DrawQuote(w io.Writer, q model.Quote, preview *model.CartItem) {
	if !q.HasData() {
		fmt.Fprintln(w, text.FgHiYellow.Sprint(" No pricing data for this configuration"))
		return
	}

	e := q.Entry
	tw := table.Table{}
	tw.AppendHeader(table.Row{"Attribute", "Value"})
	appendAttribute(&tw, "Instance Type", e.InstanceType)
	appendAttribute(&tw, "vCPU", e.VCPU)
	appendAttribute(&tw, "Memory", e.Memory)
	appendAttribute(&tw, "Storage", e.Storage)
	appendAttribute(&tw, "Storage Class", e.StorageClass)
	appendAttribute(&tw, "Product Family", e.ProductFamily)
	appendAttribute(&tw, "Description", e.Description)
	appendAttribute(&tw, "Location", e.Location)

	for i, p := range e.Prices {
		label := fmt.Sprintf("Price %d", i+1)
		value := fmt.Sprintf("%s per %s", p.Amount.String(), p.Unit)
		if !p.MonthlyCost.IsZero() {
			value += fmt.Sprintf(" (%s/mo)", p.MonthlyCost.StringFixed(2))
		}
		tw.AppendRow(table.Row{label, value})
	}

	if preview != nil {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{"Hourly", text.FgGreen.Sprint(FormatHourly(preview.HourlyCost))})
		tw.AppendRow(table.Row{"Monthly", text.FgGreen.Sprint(FormatMonthly(preview.MonthlyCost))})
	}
	if q.Count > 1 {
		tw.AppendFooter(table.Row{"", fmt.Sprintf("first of %d entries", q.Count)})
	}
	tw.SetStyle(table.StyleRounded)

	fmt.Fprintln(w, tw.Render())
}

func appendAttribute(tw *table.Table, label string, value model.Attribute) {
	if value == "" {
		return
	}
	tw.AppendRow(table.Row{label, string(value)})
}
