package utils

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Commands lists the interactive commands in display order
var Commands = [][2]string{
	{"service <ec2|rds|s3|vpc|alb|route53>", "switch the form to another service"},
	{"region <name>", "change the pricing region"},
	{"set <field> <value>", "set a form field"},
	{"form", "show the current form"},
	{"quote", "fetch pricing for the form"},
	{"add", "add the quoted configuration to the cart"},
	{"remove <id>", "remove a cart item"},
	{"clear", "empty the cart"},
	{"cart", "reload and show the cart"},
	{"export [dir]", "download the CSV report"},
	{"instances", "list EC2 instance types for the region"},
	{"ping", "check the pricing backend"},
	{"help", "show this help"},
	{"quit", "leave the shell"},
}

func DrawHelp(w io.Writer) {
	tw := table.Table{}
	tw.AppendHeader(table.Row{"Command", "Description"})
	for _, c := range Commands {
		tw.AppendRow(table.Row{text.FgYellow.Sprint(c[0]), c[1]})
	}
	tw.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, tw.Render())
}

// DrawInstances lists instance types for a region
func DrawInstances(w io.Writer, region string, instances []string) {
	fmt.Fprintf(w, " %s %s\n", text.FgHiWhite.Sprint("Instance types in"), text.FgBlue.Sprint(region))
	if len(instances) == 0 {
		fmt.Fprintln(w, text.FgHiBlack.Sprint(" none"))
		return
	}
	for _, i := range instances {
		fmt.Fprintf(w, "  %s\n", i)
	}
}
