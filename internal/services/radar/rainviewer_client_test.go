package radar_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skylook/weather-lookup-api/internal/services/radar"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok {
		return nil, args.Error(1)
	}
	return resp, args.Error(1)
}

const weatherMapsBody = `{
	"host": "https://tilecache.rainviewer.com",
	"radar": {
		"past": [
			{"time": 1756400400, "path": "/v2/radar/1756400400"},
			{"time": 1756401000, "path": "/v2/radar/1756401000"}
		],
		"nowcast": [
			{"time": 1756401600, "path": "/v2/radar/nowcast_abc"}
		]
	}
}`

func TestClientRainViewer_FetchIndex(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &mockHTTPClient{}
		client.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(weatherMapsBody)),
		}, nil).Once()

		svc := radar.NewClientRainViewer("https://api.rainviewer.test/weather-maps.json", client, zerolog.Nop())

		index, err := svc.FetchIndex(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://tilecache.rainviewer.com", index.Host)
		require.Len(t, index.Past, 2)
		assert.Equal(t, int64(1756400400), index.Past[0].Time)
		require.Len(t, index.Nowcast, 1)
		assert.Equal(t, "/v2/radar/nowcast_abc", index.Nowcast[0].Path)
	})

	t.Run("APIError", func(t *testing.T) {
		client := &mockHTTPClient{}
		client.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: http.StatusBadGateway,
			Status:     http.StatusText(http.StatusBadGateway),
			Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
		}, nil).Once()

		svc := radar.NewClientRainViewer("https://api.rainviewer.test/weather-maps.json", client, zerolog.Nop())

		_, err := svc.FetchIndex(context.Background())
		assert.Error(t, err)
	})
}
