// Package metrics exposes fleet state of the icctv backend to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

const namespace = "icctv"

// Source is the part of *client.Client the collector reads.
type Source interface {
	Health(ctx context.Context) (string, error)
	GetDeviceStats(ctx context.Context) (*client.Envelope[models.DeviceStats], error)
	ListDevices(ctx context.Context, ismartid string) (*client.Envelope[[]models.Device], error)
	ListBuildings(ctx context.Context) (*client.Envelope[[]models.Building], error)
	ListNvrs(ctx context.Context, id int64) (*client.Envelope[models.Listing[models.Nvr]], error)
}

var (
	upDesc = prometheus.NewDesc(
		namespace+"_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		namespace+"_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	healthDesc = prometheus.NewDesc(
		namespace+"_backend_healthy", "Backend health endpoint answered 2xx.", nil, nil,
	)
	devicesTotalDesc = prometheus.NewDesc(
		namespace+"_devices_total", "OrangePi devices known to the backend.", nil, nil,
	)
	devicesActiveDesc = prometheus.NewDesc(
		namespace+"_devices_active", "OrangePi devices marked active.", nil, nil,
	)
	devicesBoundDesc = prometheus.NewDesc(
		namespace+"_devices_building_bound", "OrangePi devices bound to a building.", nil, nil,
	)
	deviceActiveDesc = prometheus.NewDesc(
		namespace+"_device_active", "Device active flag.", []string{"id", "ismartid", "name"}, nil,
	)
	buildingsTotalDesc = prometheus.NewDesc(
		namespace+"_buildings_total", "Buildings known to the backend.", nil, nil,
	)
	nvrsTotalDesc = prometheus.NewDesc(
		namespace+"_nvrs_total", "NVRs known to the backend.", nil, nil,
	)
	nvrStreamsDesc = prometheus.NewDesc(
		namespace+"_nvr_streams", "RTSP stream URLs configured on an NVR.", []string{"id", "name"}, nil,
	)
)

// FleetCollector scrapes the backend on every Prometheus collection.
type FleetCollector struct {
	Source Source
	// Login is called once when a call is rejected with 401/403; the call is
	// then retried. Nil disables re-login.
	Login   func(ctx context.Context) error
	Timeout time.Duration
	Log     zerolog.Logger

	mu sync.Mutex
}

func NewFleetCollector(src Source, login func(ctx context.Context) error, log zerolog.Logger) *FleetCollector {
	return &FleetCollector{Source: src, Login: login, Timeout: client.DefaultTimeout, Log: log}
}

func (c *FleetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- healthDesc
	ch <- devicesTotalDesc
	ch <- devicesActiveDesc
	ch <- devicesBoundDesc
	ch <- deviceActiveDesc
	ch <- buildingsTotalDesc
	ch <- nvrsTotalDesc
	ch <- nvrStreamsDesc
}

func (c *FleetCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	start := time.Now()
	success := 1.0

	// 1. Health, which needs no token
	healthy := 0.0
	if _, err := c.Source.Health(ctx); err == nil {
		healthy = 1.0
	} else {
		c.Log.Warn().Err(err).Msg("health check failed")
	}
	ch <- prometheus.MustNewConstMetric(healthDesc, prometheus.GaugeValue, healthy)

	// 2. Device summary
	if stats, err := fetch(ctx, c, c.Source.GetDeviceStats); err == nil {
		ch <- prometheus.MustNewConstMetric(devicesTotalDesc, prometheus.GaugeValue, float64(stats.TotalDevices))
		ch <- prometheus.MustNewConstMetric(devicesActiveDesc, prometheus.GaugeValue, float64(stats.ActiveDevices))
		ch <- prometheus.MustNewConstMetric(devicesBoundDesc, prometheus.GaugeValue, float64(stats.BuildingBounded))
	} else {
		success = 0.0
		c.Log.Error().Err(err).Msg("scraping device stats")
	}

	// 3. Devices
	listDevices := func(ctx context.Context) (*client.Envelope[[]models.Device], error) {
		return c.Source.ListDevices(ctx, "")
	}
	if devices, err := fetch(ctx, c, listDevices); err == nil {
		for _, d := range devices {
			ch <- prometheus.MustNewConstMetric(deviceActiveDesc, prometheus.GaugeValue, boolValue(d.IsActive),
				strconv.FormatInt(d.ID, 10), d.Ismartid, d.Name)
		}
	} else {
		success = 0.0
		c.Log.Error().Err(err).Msg("scraping devices")
	}

	// 4. Buildings
	if buildings, err := fetch(ctx, c, c.Source.ListBuildings); err == nil {
		ch <- prometheus.MustNewConstMetric(buildingsTotalDesc, prometheus.GaugeValue, float64(len(buildings)))
	} else {
		success = 0.0
		c.Log.Error().Err(err).Msg("scraping buildings")
	}

	// 5. NVRs
	listNvrs := func(ctx context.Context) (*client.Envelope[models.Listing[models.Nvr]], error) {
		return c.Source.ListNvrs(ctx, 0)
	}
	if listing, err := fetch(ctx, c, listNvrs); err == nil {
		nvrs := listing.Flatten()
		ch <- prometheus.MustNewConstMetric(nvrsTotalDesc, prometheus.GaugeValue, float64(len(nvrs)))
		for _, n := range nvrs {
			ch <- prometheus.MustNewConstMetric(nvrStreamsDesc, prometheus.GaugeValue, float64(len(n.RTSPURLs)),
				strconv.FormatInt(n.ID, 10), n.Name)
		}
	} else {
		success = 0.0
		c.Log.Error().Err(err).Msg("scraping nvrs")
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// fetch runs call and unwraps the envelope, logging in again once when the
// backend rejects the token.
func fetch[T any](ctx context.Context, c *FleetCollector, call func(context.Context) (*client.Envelope[T], error)) (T, error) {
	env, err := call(ctx)
	data, err := unwrap(env, err)
	if err == nil || !client.IsAuthError(err) || c.Login == nil {
		return data, err
	}

	if lerr := c.Login(ctx); lerr != nil {
		c.Log.Warn().Err(lerr).Msg("re-login failed")
		return data, err
	}

	env, err = call(ctx)
	return unwrap(env, err)
}

func unwrap[T any](env *client.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if err := env.Check(); err != nil {
		return zero, err
	}
	return env.Data, nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Handler serves the collector on a dedicated registry.
func Handler(c prometheus.Collector) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(c)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
