package product

import "time"

const dateLayout = "2006-01-02"

func LowStock(stock, threshold int) bool { return stock <= threshold }

// PromotionActive reports whether the flag is set and today (UTC date) lies
// within the optional [start, end] window. Bounds are YYYY-MM-DD.
func PromotionActive(isPromotion bool, start, end *string, now time.Time) bool {
	if !isPromotion {
		return false
	}
	today := now.UTC().Format(dateLayout)
	if start != nil && *start != "" && normDate(*start) > today {
		return false
	}
	if end != nil && *end != "" && normDate(*end) < today {
		return false
	}
	return true
}

func normDate(s string) string {
	if len(s) > len(dateLayout) {
		return s[:len(dateLayout)]
	}
	return s
}

func (p *Product) LowStock() bool { return LowStock(p.StockQuantity, p.LowStockThreshold) }

func (p *Product) PromotionActive(now time.Time) bool {
	return PromotionActive(p.IsPromotion, p.PromotionStartDate, p.PromotionEndDate, now)
}
