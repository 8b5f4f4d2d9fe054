package simulate

// BasketItem is one recurring cost in an inflation basket.
type BasketItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"` // monthly price today
	Quantity float64 `json:"quantity"`
}

// BasketPoint is the projected basket cost for one year.
type BasketPoint struct {
	Year    int     `json:"year"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// BasketTotal is the basket cost at today's prices.
func BasketTotal(items []BasketItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// ProjectBasket compounds every item's price at the inflation rate and
// returns the per-year monthly and yearly basket totals, year 0
// included. Years below 1 are treated as 1.
func ProjectBasket(items []BasketItem, inflationRate float64, years int) []BasketPoint {
	if years < 1 {
		years = 1
	}

	points := make([]BasketPoint, 0, years+1)
	priceFactor := 1.0
	for year := 0; year <= years; year++ {
		var monthly float64
		for _, item := range items {
			monthly += item.Price * priceFactor * item.Quantity
		}
		points = append(points, BasketPoint{
			Year:    year,
			Monthly: monthly,
			Yearly:  monthly * 12,
		})
		priceFactor *= 1 + inflationRate
	}
	return points
}
