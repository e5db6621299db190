package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/iss-spotter/internal/config"
	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/providers/fixture"
	"github.com/preston-bernstein/iss-spotter/internal/providers/opennotify"
	"github.com/preston-bernstein/iss-spotter/internal/teststubs"
	"github.com/preston-bernstein/iss-spotter/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		PollInterval: time.Hour,
		Observatory:  testutil.SampleObservatory(),
	}
}

func stubUpstream(steps ...teststubs.FetchStep) (upstream, *teststubs.StubFetcher) {
	fetcher := &teststubs.StubFetcher{Steps: steps}
	return upstream{fetcher: fetcher, decoder: opennotify.NewDecoder(), name: "stub"}, fetcher
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Serve(h, http.MethodGet, path, nil)
}

func TestServerServesHealthAndSpots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	list := testutil.SampleSpots(time.Now())
	up, _ := stubUpstream(teststubs.FetchStep{Body: testutil.PassesBody(cfg.Observatory, list)})

	srv := newServerWithUpstream(cfg, nil, up)
	srv.poller.Start(ctx)
	srv.startConsumer(ctx)
	defer srv.poller.Stop(context.Background())

	router := srv.Handler()
	testutil.AssertStatus(t, get(t, router, "/health"), http.StatusOK)

	require.Eventually(t, func() bool {
		return get(t, router, "/spots").Code == http.StatusOK
	}, 2*time.Second, 5*time.Millisecond)

	var resp domainspots.SpotsResponse
	testutil.DecodeJSON(t, get(t, router, "/spots"), &resp)
	require.Len(t, resp.Spots, 2)
	assert.Equal(t, cfg.Observatory.Latitude, resp.Observatory.Latitude)

	testutil.AssertStatus(t, get(t, router, "/spots/current"), http.StatusOK)
	testutil.AssertStatus(t, get(t, router, "/spots/upcoming"), http.StatusOK)
	testutil.AssertStatus(t, get(t, router, "/ready"), http.StatusOK)
}

func TestServerReportsLoadingWhileUpstreamFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	up, fetcher := stubUpstream(teststubs.FetchStep{Err: errors.New("500 Internal Server Error")})
	srv := newServerWithUpstream(testConfig(), nil, up)
	srv.poller.Start(ctx)
	srv.startConsumer(ctx)
	defer srv.poller.Stop(context.Background())

	require.Eventually(t, func() bool { return fetcher.Calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	router := srv.Handler()

	rr := get(t, router, "/spots")
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, "loading...", body["error"])

	require.Eventually(t, func() bool {
		msg, _ := srv.spotsService.LastError()
		return msg == "loading..."
	}, time.Second, 5*time.Millisecond)

	rr = get(t, router, "/ready")
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, "500 Internal Server Error", body["error"])
}

func TestSelectProvider(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		want     string
	}{
		{name: "default", provider: "", want: providerFixture},
		{name: "fixture", provider: "fixture", want: providerFixture},
		{name: "opennotify", provider: "OpenNotify", want: providerOpenNotify},
		{name: "unknown", provider: "nasa", want: providerFixture},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := selectProvider(config.Config{Provider: tc.provider}, nil)
			assert.Equal(t, tc.want, up.name)
			assert.NotNil(t, up.decoder)
			switch tc.want {
			case providerFixture:
				assert.IsType(t, &fixture.Provider{}, up.fetcher)
			case providerOpenNotify:
				assert.IsType(t, &opennotify.Client{}, up.fetcher)
			}
		})
	}
}

func TestNormalizeProviderName(t *testing.T) {
	assert.Equal(t, "opennotify", normalizeProviderName("OpenNotify", nil))
	assert.Equal(t, "*fixture.provider", normalizeProviderName("", fixture.New()))
	assert.Equal(t, "provider", normalizeProviderName("", nil))
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "fixture"
	srv := New(cfg, nil)
	require.NotNil(t, srv)
	assert.NotNil(t, srv.Handler())
	assert.Nil(t, srv.broker)
	assert.Nil(t, srv.metricsServer)
}

func TestNewWiresMQTTWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MQTT = config.MQTTConfig{Enabled: true, Broker: "127.0.0.1", Port: 1, ClientID: "test", TopicPrefix: "iss"}
	srv := New(cfg, nil)
	require.NotNil(t, srv.broker)
	require.NotNil(t, srv.consumer.sink)
	srv.broker.Close()
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}
	brk := &testutil.StubBroker{}

	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv, p)
	srv.broker = brk
	srv.gracefulShutdown()

	assert.Equal(t, 1, p.StopCalls)
	assert.Equal(t, 1, httpSrv.ShutdownCalls)
	_, closes := brk.Calls()
	assert.Equal(t, 1, closes)
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	p := &testutil.StubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, svc, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	assert.Equal(t, 1, blocking.ShutdownCalls)
	assert.Equal(t, 1, p.StopCalls)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv, p)
	srv.gracefulShutdown()

	assert.Equal(t, 1, p.StopCalls)
	assert.Equal(t, 1, httpSrv.ShutdownCalls)
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	srv := newServerWithDeps(config.Config{}, nil, svc, &testutil.ErrHTTPServer{}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, _ := testutil.NewServiceWithSpots(testutil.SampleObservatory(), nil)
	plr := &testutil.StubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}
	brk := &testutil.StubBroker{ConnectErr: errors.New("refused")}

	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv, plr)
	srv.broker = brk

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	assert.Equal(t, 1, plr.StartCalls)
	assert.Equal(t, 1, plr.StopCalls)
	assert.Equal(t, 1, httpSrv.ShutdownCalls)
	connects, closes := brk.Calls()
	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, closes)
}

func TestRunServesOverRealListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	up, _ := stubUpstream(teststubs.FetchStep{Body: testutil.PassesBody(cfg.Observatory, testutil.SampleSpots(time.Now()))})
	srv := newServerWithUpstream(cfg, nil, up)

	ts := httptest.NewUnstartedServer(srv.Handler())
	base := srv.httpServer.(netHTTPServer)
	base.listener = ts.Listener
	srv.httpServer = base

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	url := "http://" + ts.Listener.Addr().String() + "/spots"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var body domainspots.SpotsResponse
		return json.NewDecoder(resp.Body).Decode(&body) == nil && len(body.Spots) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
