// Package metrics exposes calendar state and activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guildcalendar/internal/domain"
)

const namespace = "calendar"

// Metrics holds the calendar collectors and the registry they are registered in.
type Metrics struct {
	registry *prometheus.Registry

	events        prometheus.Gauge
	invites       prometheus.Gauge
	maxEventID    prometheus.Gauge
	freeEventIDs  prometheus.Gauge
	maxInviteID   prometheus.Gauge
	freeInviteIDs prometheus.Gauge

	storageJobs   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	purged        prometheus.Counter
}

// New creates the calendar metrics in a fresh registry that also carries the Go and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &Metrics{
		registry:      registry,
		events:        gauge("events", "Number of live calendar events."),
		invites:       gauge("invites", "Number of live calendar invites."),
		maxEventID:    gauge("event_id_max", "Highest event id handed out."),
		freeEventIDs:  gauge("event_ids_free", "Event ids waiting to be reused."),
		maxInviteID:   gauge("invite_id_max", "Highest invite id handed out."),
		freeInviteIDs: gauge("invite_ids_free", "Invite ids waiting to be reused."),
		storageJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_jobs_total",
			Help:      "Storage jobs applied by the background worker, by result.",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Calendar messages handed to the session layer, by opcode and delivery.",
		}, []string{"opcode", "delivery"}),
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_purged_total",
			Help:      "Events removed by the old event sweep.",
		}),
	}
	registry.MustRegister(
		m.events, m.invites,
		m.maxEventID, m.freeEventIDs,
		m.maxInviteID, m.freeInviteIDs,
		m.storageJobs, m.notifications, m.purged,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveCalendar copies a calendar snapshot into the gauges.
func (m *Metrics) ObserveCalendar(s domain.CalendarStats) {
	m.events.Set(float64(s.Events))
	m.invites.Set(float64(s.Invites))
	m.maxEventID.Set(float64(s.MaxEventID))
	m.freeEventIDs.Set(float64(s.FreeEventIDs))
	m.maxInviteID.Set(float64(s.MaxInviteID))
	m.freeInviteIDs.Set(float64(s.FreeInviteIDs))
}

// StorageApplied implements async.Recorder.
func (m *Metrics) StorageApplied(_ int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storageJobs.WithLabelValues(result).Inc()
}

func (m *Metrics) EventsPurged(n int) {
	m.purged.Add(float64(n))
}

func (m *Metrics) notified(op domain.Opcode, delivery string) {
	m.notifications.WithLabelValues(string(op), delivery).Inc()
}

type countingSessions struct {
	domain.Sessions
	m *Metrics
}

// InstrumentSessions counts every message passed to next.
func (m *Metrics) InstrumentSessions(next domain.Sessions) domain.Sessions {
	return &countingSessions{Sessions: next, m: m}
}

func (s *countingSessions) SendDirect(player domain.PlayerID, msg domain.Message) {
	s.m.notified(msg.Opcode(), "direct")
	s.Sessions.SendDirect(player, msg)
}

func (s *countingSessions) BroadcastGuild(guild domain.GuildID, msg domain.Message) {
	s.m.notified(msg.Opcode(), "guild")
	s.Sessions.BroadcastGuild(guild, msg)
}
