package realestate

// SalesMetrics records sale outcomes
type SalesMetrics interface {
	SaleRegistered(paymentMethod string)
	SaleCancelled()
	// SaleRejected counts registrations refused because the lot was not
	// sellable or was taken by a concurrent sale
	SaleRejected(reason string)
}

// NopSalesMetrics discards everything
type NopSalesMetrics struct{}

func (NopSalesMetrics) SaleRegistered(string) {}
func (NopSalesMetrics) SaleCancelled()        {}
func (NopSalesMetrics) SaleRejected(string)   {}
