package utils

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/aws-pricing-cart/model"
)

var (
	messageBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	messageStyles = map[model.MessageLevel]lipgloss.Style{
		model.MessageSuccess: messageBase.Foreground(lipgloss.Color("#1a9850")),
		model.MessageInfo:    messageBase.Foreground(lipgloss.Color("#4575b4")),
		model.MessageError:   messageBase.Foreground(lipgloss.Color("#d73027")),
	}

	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a9850"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d73027"))
)

// DrawMessage renders the message area; nil draws nothing
func DrawMessage(w io.Writer, msg *model.Message) {
	if msg == nil {
		return
	}
	fmt.Fprintln(w, messageStyles[msg.Level].Render(msg.Text))
}

// DrawConnection renders the backend status indicator
func DrawConnection(w io.Writer, status *model.ConnectionStatus) {
	switch {
	case status == nil:
		fmt.Fprintln(w, disconnectedStyle.Render("● Disconnected"))
	case status.Connected:
		fmt.Fprintln(w, connectedStyle.Render("● Connected")+" "+status.Message)
	default:
		fmt.Fprintln(w, disconnectedStyle.Render("● Error")+" "+status.Message)
	}
}
