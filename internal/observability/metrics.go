package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// intakeMutations counts persisted ledger changes by kind
	// (create/update/delete).
	intakeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "water_intake_mutations_total",
			Help: "Total number of persisted intake record changes.",
		},
		[]string{"kind"},
	)

	// intakeDosage records the dosage written by creates and edits.
	intakeDosage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "water_intake_dosage_milliliters",
			Help:    "Dosage of created or edited intake records in milliliters.",
			Buckets: []float64{50, 100, 200, 250, 300, 500, 750, 1000, 1500, 2000, 3000},
		},
	)

	// normaCalculations counts target computations by outcome
	// (valid/invalid).
	normaCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "water_norma_calculations_total",
			Help: "Total number of daily target computations.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(intakeMutations, intakeDosage, normaCalculations)
}

// ObserveIntakeMutation records one persisted change. Dosage is ignored for
// deletes.
func ObserveIntakeMutation(kind string, dosage int) {
	intakeMutations.WithLabelValues(kind).Inc()
	if kind != "delete" {
		intakeDosage.Observe(float64(dosage))
	}
}

// ObserveNormaCalculation records whether a target computation produced a
// number.
func ObserveNormaCalculation(valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	normaCalculations.WithLabelValues(result).Inc()
}
