package api

import (
	"context"
	"encoding/json"
	"errors"
	"golf-journey/internal/config"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const sampleDetail = `{
  "scorecardDetails": [{
    "scorecard": {
      "id": 155069236,
      "courseGlobalId": 17772,
      "startTime": "2020-07-04T13:02:11.0",
      "holesCompleted": 2,
      "holes": [
        {"number": 1, "strokes": 5, "putts": 2, "fairwayShotOutcome": "LEFT"},
        {"number": 2, "strokes": 3}
      ]
    },
    "scorecardStats": {"round": {"putts": 2}}
  }],
  "courseSnapshots": [{"courseGlobalId": 17772, "name": "Glen Abbey", "holePars": "435"}]
}`

// newTestClient points a client at an in-memory fasthttp server.
func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *GarminClient {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(ln, handler) }()
	t.Cleanup(func() { _ = ln.Close() })

	client := NewGarminClient(&config.Config{
		GarminAPIToken:  "token-123",
		GarminBaseURL:   "http://garmin.test/proxy",
		GarminRateLimit: 100,
	})
	client.client.Dial = func(addr string) (net.Conn, error) { return ln.Dial() }
	return client
}

func TestGarminClient_GetScorecardDetail(t *testing.T) {
	var gotAuth, gotPath, gotIDs string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotAuth = string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization))
		gotPath = string(ctx.Path())
		gotIDs = string(ctx.QueryArgs().Peek("scorecard-ids"))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(sampleDetail)
	})

	detail, err := client.GetScorecardDetail(context.Background(), 155069236)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "/proxy/gcs-golfcommunity/api/v2/scorecard/detail", gotPath)
	assert.Equal(t, "155069236", gotIDs)

	require.Len(t, detail.ScorecardDetails, 1)
	sc := detail.ScorecardDetails[0].Scorecard
	assert.Equal(t, int64(155069236), sc.ID)
	assert.Equal(t, 17772, sc.CourseGlobalID)
	require.Len(t, sc.Holes, 2)
	assert.Equal(t, "LEFT", sc.Holes[0].FairwayShotOutcome)
	assert.Nil(t, sc.Holes[1].Putts)

	require.Len(t, detail.CourseSnapshots, 1)
	assert.Equal(t, HolePars{4, 3, 5}, detail.CourseSnapshots[0].HolePars)
	assert.Equal(t, fasthttp.StatusOK, client.GetRateLimitInfo().LastStatus)
}

func TestGarminClient_StatusErrors(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set(fasthttp.HeaderRetryAfter, "30")
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
	})

	_, err := client.GetScorecardDetail(context.Background(), 1)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, fasthttp.StatusTooManyRequests, statusErr.StatusCode)

	info := client.GetRateLimitInfo()
	assert.Equal(t, 1, info.Throttled)
	assert.Equal(t, 30.0, info.RetryAfter.Seconds())
}

func TestGarminClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(sampleDetail)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetScorecardDetail(ctx, 1)
	assert.Error(t, err)
}

func TestHolePars_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    HolePars
		wantErr bool
	}{
		{name: "digit string", input: `"443545"`, want: HolePars{4, 4, 3, 5, 4, 5}},
		{name: "integer list", input: `[4,3,5]`, want: HolePars{4, 3, 5}},
		{name: "null", input: `null`, want: nil},
		{name: "empty string", input: `""`, want: HolePars{}},
		{name: "bad digit", input: `"44x"`, wantErr: true},
		{name: "zero par in string", input: `"4035"`, wantErr: true},
		{name: "zero par in list", input: `[4,0,5]`, wantErr: true},
		{name: "wrong type", input: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got HolePars
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
