package model

// Action is one user interaction with the client
type Action string

const (
	ActionSelectService Action = "service"
	ActionSetRegion     Action = "region"
	ActionSetField      Action = "set"
	ActionShowForm      Action = "form"
	ActionQuote         Action = "quote"
	ActionAdd           Action = "add"
	ActionRemove        Action = "remove"
	ActionClear         Action = "clear"
	ActionList          Action = "cart"
	ActionExport        Action = "export"
	ActionInstances     Action = "instances"
	ActionPing          Action = "ping"
	ActionHelp          Action = "help"
)

// Command carries an action and its arguments into the view state
type Command struct {
	Action Action
	// Arg is the service, region, item id or export directory
	Arg   string
	Field string
	Value string
	// Confirm is asked before destructive actions; nil means confirmed
	Confirm func(prompt string) bool
}
