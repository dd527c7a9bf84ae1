//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/bodix/internal/steps"

	"github.com/gorilla/websocket"
)

func (s *IntegrationTestSuite) TestEventsStream() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	header := http.Header{}
	header.Set("User-Agent", testUserAgent)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsEndpoint+"/steps/events", header)
	s.Require().NoError(err)
	defer conn.Close()
	s.Equal(http.StatusSwitchingProtocols, resp.StatusCode)

	putResp := s.do(ctx, "PUT", "/settings/unit", map[string]string{"distanceUnit": "miles"}, true)
	putResp.Body.Close()
	s.Require().Equal(http.StatusOK, putResp.StatusCode)

	var msg struct {
		Event steps.Event `json:"event"`
	}
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal(steps.EventDistanceUnitChanged, msg.Event)

	putResp = s.do(ctx, "PUT", "/settings/unit", map[string]string{"distanceUnit": "km"}, true)
	putResp.Body.Close()
	s.Require().Equal(http.StatusOK, putResp.StatusCode)
	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal(steps.EventDistanceUnitChanged, msg.Event)
}

// runs after TestStepsFlow, the source streams only once it has data
func (s *IntegrationTestSuite) TestStepsLiveStream() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	header := http.Header{}
	header.Set("User-Agent", testUserAgent)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsEndpoint+"/steps/live", header)
	s.Require().NoError(err)
	defer conn.Close()

	var stats steps.Stats
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(10 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&stats))
	s.Positive(stats.Steps)
}
