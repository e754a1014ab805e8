// Package observability defines the application's Prometheus metrics.
// Request-level metrics come from the fiberprometheus middleware; the
// counters here cover domain events that HTTP metrics cannot see.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MediaUploadsTotal counts object storage uploads by folder.
	MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_media_uploads_total",
		Help: "Total number of media uploads by folder",
	}, []string{"folder"})

	// MediaUploadBytes sums uploaded payload sizes by folder.
	MediaUploadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_media_upload_bytes_total",
		Help: "Total uploaded bytes by folder",
	}, []string{"folder"})

	// VideoViewsTotal counts recorded video views.
	VideoViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidtube_video_views_total",
		Help: "Total number of video views recorded",
	})
)
