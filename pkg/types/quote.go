package types

// PriceQuote is a fixed-point price as published by the oracle:
// actual value = Price * 10^Expo. Transient, never persisted.
type PriceQuote struct {
	Price int64  `json:"price"`
	Conf  uint64 `json:"conf"`
	Expo  int32  `json:"expo"`

	// PublishTime is the oracle-side unix timestamp of the quote.
	PublishTime int64 `json:"publishTime"`
}

// ScaledPrice converts the quote mantissa to the engine's PriceScale
// (1e8) so it can be compared against market target prices. Quotes
// published at a coarser exponent are scaled up exactly; finer exponents
// are truncated toward zero.
func (q PriceQuote) ScaledPrice() int64 {
	const engineExpo = -8

	expo := int(q.Expo)
	price := q.Price

	for expo > engineExpo {
		price *= 10
		expo--
	}

	for expo < engineExpo {
		price /= 10
		expo++
	}

	return price
}
