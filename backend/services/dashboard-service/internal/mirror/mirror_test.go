package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
	"airwatch/backend/services/dashboard-service/internal/reading"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type fakePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, message.([]byte))
	cmd.SetVal(1)
	return cmd
}

func TestMirrorPublishesSnapshotJSON(t *testing.T) {
	pub := &fakePublisher{}
	m := New(pub, "airwatch:readings", nil, nil)
	r := dashboard.NewRenderer(reading.NewGenerator(fixedSource(0)), nil, m)

	r.Tick(context.Background())

	require.Equal(t, []string{"airwatch:readings"}, pub.channels)
	var got dashboard.Snapshot
	require.NoError(t, json.Unmarshal(pub.payloads[0], &got))
	require.Equal(t, uint64(1), got.Tick)
	require.Equal(t, "20.00", got.Values["temperature"])
	require.Equal(t, "0.00", got.Values["acetone"])
	require.NotEmpty(t, got.Updated)
}

func TestMirrorReportsFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	var reported []error
	m := New(pub, "custom", nil, func(err error) { reported = append(reported, err) })

	err := m.Apply(context.Background(), dashboard.State{}.Snapshot())

	require.ErrorContains(t, err, "publish to custom")
	require.Len(t, reported, 1)
	require.Equal(t, "custom", m.Channel())
}
