package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kursovoi/storefront/pkg/metrics"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestUDPCommands_Inc(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.UDPCommands.WithLabelValues("getproducts", "ok"))
	metrics.UDPCommands.WithLabelValues("getproducts", "ok").Inc()

	if got := testutil.ToFloat64(metrics.UDPCommands.WithLabelValues("getproducts", "ok")); got != before+1 {
		t.Fatalf("UDPCommands: got=%v want=%v", got, before+1)
	}
}

func TestCheckoutLines_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeOK := testutil.ToFloat64(metrics.CheckoutLines.WithLabelValues("ok"))
	beforeFailed := testutil.ToFloat64(metrics.CheckoutLines.WithLabelValues("failed"))

	metrics.CheckoutLines.WithLabelValues("ok").Inc()
	metrics.CheckoutLines.WithLabelValues("failed").Inc()

	if got := testutil.ToFloat64(metrics.CheckoutLines.WithLabelValues("ok")); got != beforeOK+1 {
		t.Fatalf("CheckoutLines ok: got=%v want=%v", got, beforeOK+1)
	}
	if got := testutil.ToFloat64(metrics.CheckoutLines.WithLabelValues("failed")); got != beforeFailed+1 {
		t.Fatalf("CheckoutLines failed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestSessionCount_Set(t *testing.T) {
	metrics.MustRegister()

	metrics.SessionCount.Set(3)
	if got := testutil.ToFloat64(metrics.SessionCount); got != 3 {
		t.Fatalf("SessionCount: got=%v want=3", got)
	}
	metrics.SessionCount.Set(0)
}
