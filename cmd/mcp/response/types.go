package response

// Connection represents the pricing backend status
type Connection struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message,omitempty"`
}

// Instances represents the EC2 instance types priced in a region
type Instances struct {
	Region    string   `json:"region"`
	Instances []string `json:"instances"`
	Count     int      `json:"count"`
}

// Price represents one price dimension of a pricing entry
type Price struct {
	Amount      float64 `json:"amount"`
	MonthlyCost float64 `json:"monthly_cost,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Description string  `json:"description,omitempty"`
}

// PricingEntry represents the first entry the backend returned
type PricingEntry struct {
	InstanceType  string  `json:"instance_type,omitempty"`
	VCPU          string  `json:"vcpu,omitempty"`
	Memory        string  `json:"memory,omitempty"`
	Storage       string  `json:"storage,omitempty"`
	StorageClass  string  `json:"storage_class,omitempty"`
	ProductFamily string  `json:"product_family,omitempty"`
	Description   string  `json:"description,omitempty"`
	Location      string  `json:"location,omitempty"`
	Prices        []Price `json:"prices"`
}

// Quote represents a pricing lookup and the cart item it would produce
type Quote struct {
	Service string        `json:"service"`
	Found   bool          `json:"found"`
	Reason  string        `json:"reason,omitempty"`
	Count   int           `json:"count"`
	Entry   *PricingEntry `json:"entry,omitempty"`
	Preview *CartItem     `json:"cart_item,omitempty"`
}

// CartItem represents one priced resource in the cart
type CartItem struct {
	ID             string  `json:"id,omitempty"`
	Service        string  `json:"service"`
	ResourceType   string  `json:"resource_type"`
	Specifications string  `json:"specifications"`
	Region         string  `json:"region"`
	Quantity       int     `json:"quantity"`
	HourlyCost     float64 `json:"hourly_cost"`
	MonthlyCost    float64 `json:"monthly_cost"`
}

// ServiceCost represents the monthly cost of one service in the cart
type ServiceCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Items  int     `json:"items"`
	Unit   string  `json:"unit"`
}

// Cart represents the server-side cart
type Cart struct {
	Items         []CartItem    `json:"items"`
	Count         int           `json:"count"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	State         string        `json:"state"`
	ExportEnabled bool          `json:"export_enabled"`
	ByService     []ServiceCost `json:"by_service"`
	Session       string        `json:"session,omitempty"`
}

// Total represents the authoritative cart total
type Total struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}
