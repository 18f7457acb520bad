// Package metrics publishes operational counters.
// file: metrics/metrics.go
package metrics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"wanderlust/logger"
)

// Namespace for all Wanderlust metrics
const Namespace = "Wanderlust"

// Publisher records a single occurrence of a named event.
type Publisher interface {
	Count(ctx context.Context, name string, dimensions map[string]string)
}

// Noop drops every metric.
type Noop struct{}

func (Noop) Count(context.Context, string, map[string]string) {}

// CloudWatch sends each count as a PutMetricData call.
type CloudWatch struct {
	client cloudwatchiface.CloudWatchAPI
}

// NewCloudWatch builds a publisher from the default AWS credential chain.
func NewCloudWatch() (*CloudWatch, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return &CloudWatch{client: cloudwatch.New(sess)}, nil
}

// NewCloudWatchWithClient wraps an existing client.
func NewCloudWatchWithClient(client cloudwatchiface.CloudWatchAPI) *CloudWatch {
	return &CloudWatch{client: client}
}

func (p *CloudWatch) Count(ctx context.Context, name string, dimensions map[string]string) {
	_, err := p.client.PutMetricDataWithContext(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(Namespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(name),
				Dimensions: toDimensions(dimensions),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(1),
				Unit:       aws.String(cloudwatch.StandardUnitCount),
			},
		},
	})
	if err != nil {
		logger.Error.Printf("[CloudWatch.Count] metric %s failed: %v", name, err)
	}
}

func toDimensions(dimensions map[string]string) []*cloudwatch.Dimension {
	keys := make([]string, 0, len(dimensions))
	for k := range dimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*cloudwatch.Dimension, 0, len(keys))
	for _, k := range keys {
		out = append(out, &cloudwatch.Dimension{Name: aws.String(k), Value: aws.String(dimensions[k])})
	}
	return out
}

// Recorder keeps counts in memory; handy for tests and local debugging.
type Recorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]int)}
}

func (r *Recorder) Count(_ context.Context, name string, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[name]++
}

// Get returns how many times name was counted.
func (r *Recorder) Get(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}
