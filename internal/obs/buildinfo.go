package obs

import "github.com/prometheus/client_golang/prometheus"

// buildInfo is a constant 1 whose labels describe the running binary and the
// deployment choices made at startup.
var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "civictrack_build_info",
		Help: "Build and deployment information for the civictrack API.",
	},
	[]string{"version", "commit", "store", "transition_policy"},
)

// Build describes what is serving traffic.
type Build struct {
	Version string
	Commit  string
	// Store is "postgres" or "memory".
	Store            string
	TransitionPolicy string
}

// PublishBuild replaces any previously published build series with b.
func PublishBuild(b Build) {
	Init()
	buildInfo.Reset()
	buildInfo.WithLabelValues(b.Version, b.Commit, b.Store, b.TransitionPolicy).Set(1)
}
