package model

type Flags struct {
	// Backend
	APIURL  string
	Session string

	// Output
	Verbose  bool
	NoBanner bool

	// Command options
	Service   string
	Region    string
	Fields    []string
	ExportDir string
	Yes       bool
}
