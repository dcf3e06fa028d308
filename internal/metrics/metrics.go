// Package metrics exports cube blast engine events to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

const namespace = "cubeblast"

// Collector owns the game metrics and the registry they live on. One
// collector is shared by every session of a server; per-game observers
// come from ForGame.
type Collector struct {
	registry *prometheus.Registry

	blasts           *prometheus.CounterVec
	tilesCleared     *prometheus.CounterVec
	layersHit        *prometheus.CounterVec
	layeredDestroyed *prometheus.CounterVec
	spawned          *prometheus.CounterVec
	shuffles         *prometheus.CounterVec
	degraded         *prometheus.CounterVec
	groupSize        *prometheus.HistogramVec
	runs             *prometheus.CounterVec
	sessions         prometheus.Gauge
}

// New creates a collector with its own registry, so tests and embedded
// servers never collide on the global one.
func New() *Collector {
	game := []string{"game"}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		blasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blasts_total",
			Help:      "Taps resolved into a blast.",
		}, game),
		tilesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_cleared_total",
			Help:      "Cube tiles removed by blasts.",
		}, game),
		layersHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layers_hit_total",
			Help:      "Layers knocked off layered blocks, including final hits.",
		}, game),
		layeredDestroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layered_destroyed_total",
			Help:      "Layered blocks removed by their last hit.",
		}, game),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_spawned_total",
			Help:      "Tiles created above the board by refill.",
		}, game),
		shuffles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shuffles_total",
			Help:      "Dead-board reshuffles.",
		}, game),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_shuffles_total",
			Help:      "Reshuffles that built fewer matches than the shuffle table asks for.",
		}, game),
		groupSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "blast_group_size",
			Help:      "Size of blasted groups.",
			Buckets:   []float64{2, 3, 5, 7, 10, 15, 25, 50},
		}, game),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_finished_total",
			Help:      "Finished runs by outcome.",
		}, []string{"game", "outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "Open SSH game sessions.",
		}),
	}
	c.registry.MustRegister(
		c.blasts, c.tilesCleared, c.layersHit, c.layeredDestroyed, c.spawned,
		c.shuffles, c.degraded, c.groupSize, c.runs, c.sessions,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ForGame returns an engine observer that labels events with gameID.
func (c *Collector) ForGame(gameID string) core.Observer {
	return &gameObserver{c: c, game: gameID}
}

// RunFinished counts a finished run. outcome is "won", "lost" or
// "quit".
func (c *Collector) RunFinished(gameID, outcome string) {
	c.runs.WithLabelValues(gameID, outcome).Inc()
}

// SessionStarted and SessionEnded track open SSH sessions.
func (c *Collector) SessionStarted() { c.sessions.Inc() }

func (c *Collector) SessionEnded() { c.sessions.Dec() }

type gameObserver struct {
	c    *Collector
	game string
}

func (o *gameObserver) OnBlast(r core.BlastResult) {
	o.c.blasts.WithLabelValues(o.game).Inc()
	o.c.tilesCleared.WithLabelValues(o.game).Add(float64(len(r.Cleared)))
	o.c.layersHit.WithLabelValues(o.game).Add(float64(len(r.Damaged) + len(r.Destroyed)))
	o.c.layeredDestroyed.WithLabelValues(o.game).Add(float64(len(r.Destroyed)))
	o.c.groupSize.WithLabelValues(o.game).Observe(float64(r.Group.Size()))
}

func (o *gameObserver) OnShuffle(r core.ShuffleResult) {
	o.c.shuffles.WithLabelValues(o.game).Inc()
	if r.Degraded() {
		o.c.degraded.WithLabelValues(o.game).Inc()
	}
}

func (o *gameObserver) OnSpawn(n int) {
	o.c.spawned.WithLabelValues(o.game).Add(float64(n))
}

// Multi fans engine events out to several observers. Nil entries are
// skipped; it returns nil when nothing is left.
func Multi(observers ...core.Observer) core.Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

type multiObserver []core.Observer

func (m multiObserver) OnBlast(r core.BlastResult) {
	for _, o := range m {
		o.OnBlast(r)
	}
}

func (m multiObserver) OnShuffle(r core.ShuffleResult) {
	for _, o := range m {
		o.OnShuffle(r)
	}
}

func (m multiObserver) OnSpawn(n int) {
	for _, o := range m {
		o.OnSpawn(n)
	}
}
