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

package interpreter

// File metrics contains all metrics that can be pushed to Prometheus push
// gateway when the interpreter finishes.

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/utils"
)

// Metrics names
const (
	EvaluationsName         = "evaluations"
	EvaluationFailuresName  = "evaluation_failures"
	HistoryWriteErrorsName  = "history_write_errors"
	ProducerErrorsName      = "producer_errors"
	StorageSetupErrorsName  = "storage_setup_errors"
	ProducerSetupErrorsName = "producer_setup_errors"
)

// Metrics helps
const (
	EvaluationsHelp         = "The total number of evaluated expressions"
	EvaluationFailuresHelp  = "The total number of expressions that could not be evaluated"
	HistoryWriteErrorsHelp  = "The total number of errors when writing evaluation record into history"
	ProducerErrorsHelp      = "The total number of errors when producing evaluation event"
	StorageSetupErrorsHelp  = "The total number of errors when setting up storage connection"
	ProducerSetupErrorsHelp = "The total number of errors when setting up Kafka producer"
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

// Evaluations shows number of evaluated expressions
var Evaluations = promauto.NewCounter(prometheus.CounterOpts{
	Name: EvaluationsName,
	Help: EvaluationsHelp,
})

// EvaluationFailures shows number of expressions that could not be evaluated
var EvaluationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: EvaluationFailuresName,
	Help: EvaluationFailuresHelp,
})

// HistoryWriteErrors shows number of errors when writing into history
var HistoryWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: HistoryWriteErrorsName,
	Help: HistoryWriteErrorsHelp,
})

// ProducerErrors shows number of errors when producing evaluation events
var ProducerErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerErrorsName,
	Help: ProducerErrorsHelp,
})

// StorageSetupErrors shows number of errors when setting up storage
var StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: StorageSetupErrorsName,
	Help: StorageSetupErrorsHelp,
})

// ProducerSetupErrors shows number of errors when setting up Kafka producer
var ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerSetupErrorsName,
	Help: ProducerSetupErrorsHelp,
})

// AddMetricsWithNamespaceAndSubsystem register the desired metrics using a
// given namespace and subsystem
func AddMetricsWithNamespaceAndSubsystem(namespace, subsystem string) {
	// Unregister all metrics and register them again
	prometheus.Unregister(Evaluations)
	prometheus.Unregister(EvaluationFailures)
	prometheus.Unregister(HistoryWriteErrors)
	prometheus.Unregister(ProducerErrors)
	prometheus.Unregister(StorageSetupErrors)
	prometheus.Unregister(ProducerSetupErrors)

	Evaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      EvaluationsName,
		Help:      EvaluationsHelp,
	})

	EvaluationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      EvaluationFailuresName,
		Help:      EvaluationFailuresHelp,
	})

	HistoryWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      HistoryWriteErrorsName,
		Help:      HistoryWriteErrorsHelp,
	})

	ProducerErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      ProducerErrorsName,
		Help:      ProducerErrorsHelp,
	})

	StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      StorageSetupErrorsName,
		Help:      StorageSetupErrorsHelp,
	})

	ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      ProducerSetupErrorsName,
		Help:      ProducerSetupErrorsHelp,
	})
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig *conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespaceAndSubsystem(
			metricsConfig.Namespace,
			metricsConfig.Subsystem)
	}
}

// PushCollectedMetrics function pushes the metrics to the configured
// prometheus push gateway once
func PushCollectedMetrics(metricsConf *conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	return push.New(utils.SetHTTPPrefix(metricsConf.GatewayURL), metricsConf.Job).
		Collector(Evaluations).
		Collector(EvaluationFailures).
		Collector(HistoryWriteErrors).
		Collector(ProducerErrors).
		Collector(StorageSetupErrors).
		Collector(ProducerSetupErrors).
		Client(&client).
		Push()
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway. Push is retried when configured so.
func PushMetrics(metricsConf *conf.MetricsConfiguration) error {
	err := PushCollectedMetrics(metricsConf)
	if err == nil {
		log.Info().Msg("Metrics pushed successfully")
		return nil
	}
	log.Err(err).Msg(metricsPushFailedMessage)

	for i := metricsConf.Retries; i > 0 && metricsConf.RetryAfter > 0; i-- {
		time.Sleep(metricsConf.RetryAfter)
		log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
		err = PushCollectedMetrics(metricsConf)
		if err == nil {
			log.Info().Msg("Metrics pushed successfully")
			return nil
		}
		log.Err(err).Msg(metricsPushFailedMessage)
	}
	return err
}
