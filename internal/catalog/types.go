package catalog

// Wire types for the upstream catalog bundle. The upstream backend owns this
// data; the storefront only decodes and relays it.

type Session struct {
	ID         string `json:"id"`
	Token      string `json:"token"`
	BusinessID string `json:"business_id"`
	CatalogID  string `json:"catalog_id"`
	OrderID    string `json:"order_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Type       string `json:"type,omitempty"` // read | buy
}

type Business struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Delivery    bool   `json:"delivery"`
	PickUp      bool   `json:"pick_up"`
}

type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Opening string `json:"opening,omitempty"`
	Closing string `json:"closing,omitempty"`
}

type Branding struct {
	BusinessID     string `json:"business_id"`
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

type Catalog struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	IsActive   bool   `json:"is_active"`
}

type Product struct {
	ID          string `json:"id"`
	BusinessID  string `json:"business_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	IsActive    bool   `json:"is_active"`
}

type SubsectionItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}

type Subsection struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Type          string           `json:"type"` // single | multiple | text
	Min           int              `json:"min,omitempty"`
	Max           int              `json:"max,omitempty"`
	AllowQuantity bool             `json:"allow_quantity"`
	AllowPrice    bool             `json:"allow_price"`
	Required      bool             `json:"required"`
	Items         []SubsectionItem `json:"items,omitempty"`
}

type CatalogProduct struct {
	ID          string       `json:"id"`
	CatalogID   string       `json:"catalog_id"`
	CategoryID  string       `json:"category_id"`
	ProductID   string       `json:"product_id"`
	IsAvailable bool         `json:"is_available"`
	Product     *Product     `json:"product,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty"`
}

type Section struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Order    int              `json:"order"`
	IsActive bool             `json:"is_active"`
	Products []CatalogProduct `json:"products"`
}

type PaymentMethod struct {
	ID                  string `json:"id"`
	BusinessID          string `json:"business_id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	Available           bool   `json:"available"`
	RequireConfirmation bool   `json:"require_confirmation"`
}

// Bundle is everything the storefront needs to render one tokenized link.
type Bundle struct {
	Session        Session         `json:"session"`
	Business       Business        `json:"business"`
	Location       *Location       `json:"location"`
	Branding       Branding        `json:"branding"`
	Catalog        Catalog         `json:"catalog"`
	Sections       []Section       `json:"sections"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}
