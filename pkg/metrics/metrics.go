package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records observability data for the pricing engine.
type PricingMetrics struct {
	duration          *prometheus.HistogramVec
	couponValidations *prometheus.CounterVec
	floorClamps       prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_compute_duration_seconds",
		Help:    "Duration of cart pricing computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"customer_type"})
	couponValidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_coupon_validations_total",
		Help: "Coupon validation outcomes.",
	}, []string{"outcome"})
	floorClamps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_margin_floor_clamps_total",
		Help: "Unit price resolutions clamped at the margin floor.",
	})
	reg.MustRegister(duration, couponValidations, floorClamps)
	return &PricingMetrics{
		duration:          duration,
		couponValidations: couponValidations,
		floorClamps:       floorClamps,
	}
}

// ObserveCompute records the duration of one cart pricing run.
func (p *PricingMetrics) ObserveCompute(customerType string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	if customerType == "" {
		customerType = "unknown"
	}
	p.duration.WithLabelValues(customerType).Observe(duration.Seconds())
}

// IncCouponValidation counts a coupon validation by outcome (valid/invalid).
func (p *PricingMetrics) IncCouponValidation(outcome string) {
	if p == nil || p.couponValidations == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	p.couponValidations.WithLabelValues(outcome).Inc()
}

// IncFloorClamp counts a margin-floor clamp.
func (p *PricingMetrics) IncFloorClamp() {
	if p == nil || p.floorClamps == nil {
		return
	}
	p.floorClamps.Inc()
}
