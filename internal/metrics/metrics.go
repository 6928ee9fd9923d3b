package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	CollectionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collector_run_duration_seconds",
			Help:    "Duration of each collection run in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
	CollectedVacanciesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_vacancies_collected_total",
			Help: "Total number of newly persisted vacancies.",
		},
	)
	LinkedSkillsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_skills_linked_total",
			Help: "Total number of skill associations written.",
		},
	)
	SkippedItemsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collector_items_skipped_total",
			Help: "Total number of listing items skipped due to unexpected shape.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(CollectionDuration)
	prometheus.MustRegister(CollectedVacanciesCounter)
	prometheus.MustRegister(LinkedSkillsCounter)
	prometheus.MustRegister(SkippedItemsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
