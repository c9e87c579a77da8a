package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRegistry(t *testing.T) {
	registry := GetRegistry()

	PostsCreated.Inc()
	FollowEvents.WithLabelValues("follow").Inc()

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}

	assert.True(t, names["posts_created_total"])
	assert.True(t, names["follow_events_total"])
	assert.True(t, names["go_goroutines"])
}

func TestFollowEvents_Labels(t *testing.T) {
	before := testutil.ToFloat64(FollowEvents.WithLabelValues("unfollow"))

	FollowEvents.WithLabelValues("unfollow").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(FollowEvents.WithLabelValues("unfollow")))
}
