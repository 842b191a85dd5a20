package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPricingMetricsExport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.ObserveCompute("B2C", 5*time.Millisecond)
	m.IncCouponValidation("valid")
	m.IncCouponValidation("invalid")
	m.IncFloorClamp()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pricing_coupon_validations_total", "outcome", "valid"); err != nil {
		t.Fatalf("fetch valid: %v", err)
	} else if got != 1 {
		t.Fatalf("expected valid=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_coupon_validations_total", "outcome", "invalid"); err != nil {
		t.Fatalf("fetch invalid: %v", err)
	} else if got != 1 {
		t.Fatalf("expected invalid=1, got %f", got)
	}

	foundFloor := false
	for _, mf := range mfs {
		if mf.GetName() == "pricing_margin_floor_clamps_total" {
			foundFloor = true
			if mf.GetMetric()[0].GetCounter().GetValue() != 1 {
				t.Fatalf("expected one floor clamp")
			}
		}
	}
	if !foundFloor {
		t.Fatal("floor clamp counter not exported")
	}
}

func TestPricingMetricsNilSafe(t *testing.T) {
	var m *PricingMetrics
	m.ObserveCompute("B2B", time.Second)
	m.IncCouponValidation("valid")
	m.IncFloorClamp()

	empty := NewPricingMetrics(nil)
	empty.ObserveCompute("", 0)
	empty.IncCouponValidation("")
	empty.IncFloorClamp()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, labelKey, labelValue string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelKey && label.GetValue() == labelValue {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("metric %s{%s=%q} not found", name, labelKey, labelValue)
}
