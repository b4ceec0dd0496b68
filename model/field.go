package model

import (
	"math"
	"strconv"
	"strings"
)

// Field keys shared by the form, the request payloads and the adapter
const (
	FieldInstanceType     = "instanceType"
	FieldOperatingSystem  = "operatingSystem"
	FieldTenancy          = "tenancy"
	FieldDatabaseEngine   = "databaseEngine"
	FieldDeploymentOption = "deploymentOption"
	FieldStorageClass     = "storageClass"
	FieldStorageGB        = "storageGB"
	FieldComponent        = "component"
	FieldQuantity         = "quantity"
)

// FieldKind is how a form input is presented
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
	FieldNumber FieldKind = "number"
)

// FieldSpec describes one form input. Min, Max and Step are display hints
// only; values outside them are accepted.
type FieldSpec struct {
	Key     string
	Label   string
	Kind    FieldKind
	Default string
	Options []string
	Min     *float64
	Max     *float64
	Step    *float64
	// Dynamic options are replaced by /api/available-instances results
	Dynamic bool
}

// FormState is a snapshot of the form at the moment it is submitted
type FormState struct {
	Service ServiceKind
	Region  string
	Values  map[string]string
}

// Value returns the field value or fallback when unset or blank
func (f FormState) Value(key, fallback string) string {
	if v, ok := f.Values[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Int parses a numeric field, truncating fractions and trailing garbage
// ("2.5" and "2 units" are 2). Fallback is used when no leading number exists.
func (f FormState) Int(key string, fallback int) int {
	raw := strings.TrimSpace(f.Values[key])
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return int(v)
	}

	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return fallback
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil {
		return fallback
	}
	return v
}

// Float parses a numeric field, using fallback when it is blank or malformed
func (f FormState) Float(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Values[key]), 64)
	if err != nil {
		return fallback
	}
	return v
}

func floatPtr(v float64) *float64 {
	return &v
}
