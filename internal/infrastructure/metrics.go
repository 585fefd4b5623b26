package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application metrics, registered on the default Prometheus registry.
var (
	// LicenseActivations counts activation attempts by outcome
	// (success, invalid, duplicate).
	LicenseActivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "subpix",
		Name:      "license_activations_total",
		Help:      "License activation attempts by outcome.",
	}, []string{"outcome"})

	// ChargesGenerated counts Pix charge payloads built.
	ChargesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "subpix",
		Name:      "charges_generated_total",
		Help:      "Pix charge payloads generated.",
	})

	// PaymentsRegistered counts payments recorded.
	PaymentsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "subpix",
		Name:      "payments_registered_total",
		Help:      "Payments registered.",
	})
)
