package config

import "PortfolioSentinel/internal/model"

// DefaultInstruments returns the built-in portfolio. Bands are listed nearest
// to the current price first.
func DefaultInstruments() []model.Instrument {
	return []model.Instrument{
		{Symbol: "DIVOPPBEES.NS", Name: "Nippon India ETF Dividend Opportunities", Category: model.CategoryETF,
			Bands: []model.Band{{Low: 78, High: 79, Quantity: 25}, {Low: 74, High: 75, Quantity: 35}}},
		{Symbol: "HEALTHY.NS", Name: "BSL Nifty HealthCare ETF", Category: model.CategoryETF,
			Bands: []model.Band{{Low: 13.8, High: 14.0, Quantity: 100}, {Low: 12.8, High: 13.2, Quantity: 150}}},
		{Symbol: "MAHKTECH.NS", Name: "Mahktech", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 25.5, High: 26.0, Quantity: 150}, {Low: 23.0, High: 24.0, Quantity: 200}}},
		{Symbol: "IRCTC.NS", Name: "IRCTC", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 560, High: 580, Quantity: 8}, {Low: 500, High: 520, Quantity: 10}}},
		{Symbol: "TATAGOLD.NS", Name: "Tata Gold ETF", Category: model.CategoryETF,
			Bands: []model.Band{{Low: 14.5, High: 14.6, Quantity: 300}, {Low: 13.8, High: 14.0, Quantity: 400}, {Low: 12.8, High: 13.2, Quantity: 500}}},
		{Symbol: "EVINDIA.NS", Name: "EVINDIA ETF", Category: model.CategoryETF,
			Bands: []model.Band{{Low: 28.0, High: 28.5, Quantity: 100}, {Low: 26.0, High: 26.5, Quantity: 150}, {Low: 23.5, High: 24.0, Quantity: 200}}},
		{Symbol: "GAIL.NS", Name: "GAIL", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 150, High: 152, Quantity: 50}, {Low: 138, High: 142, Quantity: 70}, {Low: 125, High: 130, Quantity: 80}}},
		{Symbol: "IOB.NS", Name: "Indian Overseas Bank", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 32, High: 33, Quantity: 40}, {Low: 28, High: 29, Quantity: 60}, {Low: 24, High: 25, Quantity: 50}}},
		{Symbol: "TMPV.NS", Name: "Tata Motors Passenger Vehicles Ltd", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 330, High: 335, Quantity: 6}, {Low: 300, High: 310, Quantity: 10}, {Low: 270, High: 280, Quantity: 10}}},
		{Symbol: "GROWWRLTY.NS", Name: "Groww Nifty Realty ETF", Category: model.CategoryETF,
			Bands: []model.Band{{Low: 8.0, High: 8.2, Quantity: 70}, {Low: 7.2, High: 7.4, Quantity: 100}, {Low: 6.2, High: 6.5, Quantity: 100}}},
		{Symbol: "CESC.NS", Name: "CESC", Category: model.CategoryStock,
			Bands: []model.Band{{Low: 132, High: 135, Quantity: 15}, {Low: 120, High: 125, Quantity: 20}, {Low: 105, High: 110, Quantity: 15}}},
	}
}
