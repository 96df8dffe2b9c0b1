package checkout

import (
	"time"

	"furnistore/internal/model"
)

// The shop does not deliver on Sundays.
const nonDeliveryDay = time.Sunday

// Transit time in days by shipping method.
const (
	expressTransitDays  = 2
	standardTransitDays = 5
)

// EstimateDelivery computes the delivery window for an order placed today.
// Pure function of (today, method): delivery starts tomorrow, skipping to
// Monday when tomorrow is a Sunday, and ends after the method's transit
// time, again pushed one day when the end lands on a Sunday.
func EstimateDelivery(today time.Time, method model.ShippingMethod) model.DeliveryWindow {
	start := today.AddDate(0, 0, 1)
	if start.Weekday() == nonDeliveryDay {
		start = start.AddDate(0, 0, 1)
	}

	transit := standardTransitDays
	if method == model.ShippingExpress {
		transit = expressTransitDays
	}

	end := start.AddDate(0, 0, transit)
	if end.Weekday() == nonDeliveryDay {
		end = end.AddDate(0, 0, 1)
	}

	return model.DeliveryWindow{From: start, To: end}
}
