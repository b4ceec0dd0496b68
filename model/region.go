package model

// DefaultRegion is the region preselected when the client starts
const DefaultRegion = "US East (N. Virginia)"

// Regions are the pricing location names the backend understands
var Regions = []string{
	"US East (N. Virginia)",
	"US East (Ohio)",
	"US West (N. California)",
	"US West (Oregon)",
	"Canada (Central)",
	"EU (Ireland)",
	"EU (London)",
	"EU (Frankfurt)",
	"EU (Paris)",
	"EU (Stockholm)",
	"Asia Pacific (Mumbai)",
	"Asia Pacific (Singapore)",
	"Asia Pacific (Sydney)",
	"Asia Pacific (Tokyo)",
	"Asia Pacific (Seoul)",
	"South America (Sao Paulo)",
}
