package kafka

import kafkago "github.com/segmentio/kafka-go"

const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
)

func HeaderValue(headers []kafkago.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
