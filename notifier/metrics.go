/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notifier

// File metrics contains all metrics that are pushed to Prometheus push
// gateway at the end of each run.

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
)

// Metrics names
const (
	FeedsCheckedName           = "feeds_checked"
	FeedErrorsName             = "feed_errors"
	EntityResolutionErrorsName = "entity_resolution_errors"
	AlertsDetectedName         = "alerts_detected"
	EventsSentName             = "events_sent"
	EventsFailedName           = "events_failed"
	MirrorErrorsName           = "mirror_errors"
	ProducerSetupErrorsName    = "producer_setup_errors"
)

// Metrics helps
const (
	FeedsCheckedHelp           = "The total number of status feeds (or incident lists) retrieved"
	FeedErrorsHelp             = "The total number of status feeds that could not be retrieved or parsed"
	EntityResolutionErrorsHelp = "The total number of failures when resolving entities events are attached to"
	AlertsDetectedHelp         = "The total number of feed entries or incidents classified as alert"
	EventsSentHelp             = "The total number of events accepted by event ingestion endpoint"
	EventsFailedHelp           = "The total number of events that could not be published"
	MirrorErrorsHelp           = "The total number of events that could not be mirrored to Kafka"
	ProducerSetupErrorsHelp    = "The total number of errors when setting up Kafka producer"
)

const metricsPushFailedMessage = "Couldn't push prometheus metrics"

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// FeedsChecked shows number of status feeds retrieved
var FeedsChecked = newCounter("", FeedsCheckedName, FeedsCheckedHelp)

// FeedErrors shows number of status feeds that could not be retrieved
var FeedErrors = newCounter("", FeedErrorsName, FeedErrorsHelp)

// EntityResolutionErrors shows number of failures during entity resolution
var EntityResolutionErrors = newCounter("", EntityResolutionErrorsName, EntityResolutionErrorsHelp)

// AlertsDetected shows number of entries or incidents classified as alert
var AlertsDetected = newCounter("", AlertsDetectedName, AlertsDetectedHelp)

// EventsSent shows number of events accepted by monitoring platform
var EventsSent = newCounter("", EventsSentName, EventsSentHelp)

// EventsFailed shows number of events that could not be published
var EventsFailed = newCounter("", EventsFailedName, EventsFailedHelp)

// MirrorErrors shows number of events that could not be mirrored
var MirrorErrors = newCounter("", MirrorErrorsName, MirrorErrorsHelp)

// ProducerSetupErrors shows number of errors when setting up Kafka producer
var ProducerSetupErrors = newCounter("", ProducerSetupErrorsName, ProducerSetupErrorsHelp)

func newCounter(namespace, name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		FeedsChecked,
		FeedErrors,
		EntityResolutionErrors,
		AlertsDetected,
		EventsSent,
		EventsFailed,
		MirrorErrors,
		ProducerSetupErrors,
	}
}

// AddMetricsWithNamespace register the desired metrics using a given namespace
func AddMetricsWithNamespace(namespace string) {
	// Unregister all metrics and registrer them again
	for _, collector := range collectors() {
		prometheus.Unregister(collector)
	}

	FeedsChecked = newCounter(namespace, FeedsCheckedName, FeedsCheckedHelp)
	FeedErrors = newCounter(namespace, FeedErrorsName, FeedErrorsHelp)
	EntityResolutionErrors = newCounter(namespace, EntityResolutionErrorsName, EntityResolutionErrorsHelp)
	AlertsDetected = newCounter(namespace, AlertsDetectedName, AlertsDetectedHelp)
	EventsSent = newCounter(namespace, EventsSentName, EventsSentHelp)
	EventsFailed = newCounter(namespace, EventsFailedName, EventsFailedHelp)
	MirrorErrors = newCounter(namespace, MirrorErrorsName, MirrorErrorsHelp)
	ProducerSetupErrors = newCounter(namespace, ProducerSetupErrorsName, ProducerSetupErrorsHelp)
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway
func PushMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	pusher := push.New(metricsConf.GatewayURL, metricsConf.Job).Client(&client)
	for _, collector := range collectors() {
		pusher = pusher.Collector(collector)
	}
	return pusher.Push()
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespace(metricsConfig.Namespace)
	}
}

// pushMetrics pushes metrics to the gateway. Push is retried when
// configured so.
func pushMetrics(metricsConf conf.MetricsConfiguration) error {
	if metricsConf.GatewayURL == "" {
		log.Debug().Msg("Push gateway not configured, metrics won't be pushed")
		return nil
	}

	err := PushMetrics(metricsConf)
	if err == nil {
		log.Info().Msg("Metrics pushed successfully")
		return nil
	}
	log.Err(err).Msg(metricsPushFailedMessage)

	if metricsConf.RetryAfter == 0 || metricsConf.Retries == 0 {
		return err
	}
	for i := metricsConf.Retries; i > 0; i-- {
		time.Sleep(metricsConf.RetryAfter)
		log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
		err = PushMetrics(metricsConf)
		if err == nil {
			log.Info().Msg("Metrics pushed successfully")
			return nil
		}
		log.Err(err).Msg(metricsPushFailedMessage)
	}
	return errors.Join(errors.New(metricsPushFailedMessage), err)
}
