package model

// Category groups instruments for display.
type Category string

const (
	CategoryETF   Category = "ETF"
	CategoryStock Category = "STOCK"
)

// Band is an "average down" price range with the suggested extra quantity.
type Band struct {
	Low      float64 `yaml:"low" validate:"gt=0"`
	High     float64 `yaml:"high" validate:"gtefield=Low"`
	Quantity int     `yaml:"quantity" validate:"gt=0"`
}

// Contains reports whether price lies inside the band, both ends inclusive.
func (b Band) Contains(price float64) bool {
	return b.Low <= price && price <= b.High
}

// Instrument is one monitored symbol. Bands are ordered by priority, first
// listed is evaluated first.
type Instrument struct {
	Symbol   string   `yaml:"symbol" validate:"required"`
	Name     string   `yaml:"name" validate:"required"`
	Category Category `yaml:"category" validate:"required,oneof=ETF STOCK"`
	Bands    []Band   `yaml:"bands" validate:"required,min=1,dive"`
}
