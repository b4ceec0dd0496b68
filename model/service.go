package model

import (
	"fmt"
	"strings"
)

// ServiceKind identifies one of the AWS services the cart can price
type ServiceKind string

const (
	ServiceEC2     ServiceKind = "ec2"
	ServiceRDS     ServiceKind = "rds"
	ServiceS3      ServiceKind = "s3"
	ServiceVPC     ServiceKind = "vpc"
	ServiceALB     ServiceKind = "alb"
	ServiceRoute53 ServiceKind = "route53"
)

// AllServices lists every service in display order
var AllServices = []ServiceKind{ServiceEC2, ServiceRDS, ServiceS3, ServiceVPC, ServiceALB, ServiceRoute53}

// ParseServiceKind accepts a service name in any case ("EC2", "route53", ...)
func ParseServiceKind(name string) (ServiceKind, error) {
	kind := ServiceKind(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range AllServices {
		if s == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown service %q", name)
}

// CostDerivation tells the cart item adapter which cost the backend quotes
type CostDerivation int

const (
	// DeriveFromHourly: hourly = price amount x quantity, monthly = hourly x 730
	DeriveFromHourly CostDerivation = iota
	// DeriveFromMonthly: monthly = monthly_cost, hourly = monthly / 730
	DeriveFromMonthly
)

// HoursPerMonth is the billing month used by every cost conversion
const HoursPerMonth = 730

// ServiceSpec carries everything that differs between services: the form
// fields, the pricing endpoint and the cost derivation rule.
type ServiceSpec struct {
	Kind          ServiceKind
	Label         string
	Endpoint      string
	Fields        []FieldSpec
	Derivation    CostDerivation
	QuantityField string
}

// Field returns the field spec for key
func (s ServiceSpec) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Defaults returns a fresh value map holding every field's default
func (s ServiceSpec) Defaults() map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Key] = f.Default
	}
	return values
}

// SpecFor returns the variant for kind. Every ServiceKind must have a case.
func SpecFor(kind ServiceKind) (ServiceSpec, error) {
	switch kind {
	case ServiceEC2:
		return ec2Spec, nil
	case ServiceRDS:
		return rdsSpec, nil
	case ServiceS3:
		return s3Spec, nil
	case ServiceVPC:
		return vpcSpec, nil
	case ServiceALB:
		return albSpec, nil
	case ServiceRoute53:
		return route53Spec, nil
	}
	return ServiceSpec{}, fmt.Errorf("no spec for service %q", kind)
}

// MustSpecFor is SpecFor for kinds that come from AllServices
func MustSpecFor(kind ServiceKind) ServiceSpec {
	spec, err := SpecFor(kind)
	if err != nil {
		panic(err)
	}
	return spec
}

func quantityField() FieldSpec {
	return FieldSpec{Key: FieldQuantity, Label: "Quantity", Kind: FieldNumber, Default: "1", Min: floatPtr(1), Max: floatPtr(100), Step: floatPtr(1)}
}

var ec2Spec = ServiceSpec{
	Kind:     ServiceEC2,
	Label:    "EC2",
	Endpoint: "/api/pricing/ec2",
	Fields: []FieldSpec{
		{Key: FieldInstanceType, Label: "Instance Type", Kind: FieldSelect, Default: "t2.micro", Dynamic: true,
			Options: []string{"t2.micro", "t3.micro", "m5.large"}},
		{Key: FieldOperatingSystem, Label: "Operating System", Kind: FieldSelect, Default: "Linux",
			Options: []string{"Linux", "Windows", "RHEL", "SUSE"}},
		{Key: FieldTenancy, Label: "Tenancy", Kind: FieldSelect, Default: "Shared",
			Options: []string{"Shared", "Dedicated", "Host"}},
		quantityField(),
	},
	Derivation:    DeriveFromHourly,
	QuantityField: FieldQuantity,
}

var rdsSpec = ServiceSpec{
	Kind:     ServiceRDS,
	Label:    "RDS",
	Endpoint: "/api/pricing/rds",
	Fields: []FieldSpec{
		{Key: FieldInstanceType, Label: "Instance Type", Kind: FieldSelect, Default: "db.t3.micro",
			Options: []string{"db.t3.micro", "db.t3.small", "db.t3.medium", "db.m5.large", "db.m5.xlarge", "db.r5.large"}},
		{Key: FieldDatabaseEngine, Label: "Database Engine", Kind: FieldSelect, Default: "MySQL",
			Options: []string{"MySQL", "PostgreSQL", "MariaDB", "Oracle", "SQL Server"}},
		{Key: FieldDeploymentOption, Label: "Deployment", Kind: FieldSelect, Default: "Single-AZ",
			Options: []string{"Single-AZ", "Multi-AZ"}},
		quantityField(),
	},
	Derivation:    DeriveFromHourly,
	QuantityField: FieldQuantity,
}

var s3Spec = ServiceSpec{
	Kind:     ServiceS3,
	Label:    "S3",
	Endpoint: "/api/pricing/s3",
	Fields: []FieldSpec{
		{Key: FieldStorageClass, Label: "Storage Class", Kind: FieldSelect, Default: "General Purpose",
			Options: []string{"General Purpose", "Infrequent Access", "Archive", "Intelligent-Tiering"}},
		{Key: FieldStorageGB, Label: "Storage (GB)", Kind: FieldNumber, Default: "100", Min: floatPtr(1), Step: floatPtr(1)},
	},
	Derivation: DeriveFromMonthly,
}

var vpcSpec = ServiceSpec{
	Kind:     ServiceVPC,
	Label:    "VPC",
	Endpoint: "/api/pricing/vpc",
	Fields: []FieldSpec{
		{Key: FieldComponent, Label: "Component", Kind: FieldSelect, Default: "NatGateway",
			Options: []string{"NatGateway", "VPN"}},
		quantityField(),
	},
	Derivation:    DeriveFromMonthly,
	QuantityField: FieldQuantity,
}

var albSpec = ServiceSpec{
	Kind:     ServiceALB,
	Label:    "ALB",
	Endpoint: "/api/pricing/alb",
	Fields: []FieldSpec{
		quantityField(),
	},
	Derivation:    DeriveFromMonthly,
	QuantityField: FieldQuantity,
}

var route53Spec = ServiceSpec{
	Kind:     ServiceRoute53,
	Label:    "Route53",
	Endpoint: "/api/pricing/route53",
	Fields: []FieldSpec{
		{Key: FieldComponent, Label: "Component", Kind: FieldSelect, Default: "HostedZone",
			Options: []string{"HostedZone", "Queries"}},
		quantityField(),
	},
	Derivation:    DeriveFromMonthly,
	QuantityField: FieldQuantity,
}
