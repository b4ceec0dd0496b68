package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawServiceChart renders the monthly cost of the cart split by service.
// Nothing is drawn for an empty cart.
func DrawServiceChart(w io.Writer, items []model.CartItem) {
	costs := model.CostsByService(items)
	if len(costs) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" Monthly cost by service"))
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(20*len(costs)+10, 14)

	indexedColors := assignRankedColors(costs)

	for idx, cost := range costs {
		data := barchart.BarData{
			Label: getBarLabel(cost),
			Values: []barchart.BarValue{
				{
					Value: cost.Amount.InexactFloat64(),
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(indexedColors[idx])),
				},
			},
		}

		bc.Push(data)
	}

	bc.Draw()
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		defaultStyle.Render(bc.View()),
	))
}

func getBarLabel(cost model.ServiceCost) string {
	return fmt.Sprintf("%s: %s", cost.Name, cost.Amount.StringFixed(2))
}

func assignRankedColors(costs []model.ServiceCost) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type costWithIndex struct {
		index int
		value float64
	}

	costsToSort := make([]costWithIndex, len(costs))
	for i, cost := range costs {
		costsToSort[i] = costWithIndex{
			index: i,
			value: cost.Amount.InexactFloat64(),
		}
	}

	sort.SliceStable(costsToSort, func(i, j int) bool {
		return costsToSort[i].value > costsToSort[j].value
	})

	resultColors := make([]string, len(costs))
	for rank, sortedCost := range costsToSort {
		if rank < len(palette) {
			resultColors[sortedCost.index] = palette[rank]
		}
	}

	return resultColors
}
