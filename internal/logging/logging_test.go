package logging

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	eventbus "github.com/fetchlab/overgraph/internal/eventbus"
	events "github.com/fetchlab/overgraph/internal/events"
	reqid "github.com/fetchlab/overgraph/internal/reqid"
	"github.com/stretchr/testify/require"
)

func TestLogsHTTPAndGraphQLFinish(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var buf bytes.Buffer
	detach := Attach(log.New(&buf, "", 0))
	defer detach()

	ctx, rid := reqid.NewContext(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)

	eventbus.Publish(ctx, events.HTTPFinish{Request: req, Status: 200, Duration: time.Millisecond})
	eventbus.Publish(ctx, events.GraphQLFinish{
		OperationName: "GetUser",
		OperationType: "query",
		Duration:      time.Millisecond,
	})

	out := buf.String()
	require.Contains(t, out, "http ")
	require.Contains(t, out, "path=/graphql")
	require.Contains(t, out, "status=200")
	require.Contains(t, out, "op=GetUser")
	require.Contains(t, out, "errors=0")
	require.Contains(t, out, "rid="+strconv.FormatInt(rid, 10))
}

func TestLogsFirstErrorMessage(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var buf bytes.Buffer
	defer Attach(log.New(&buf, "", 0))()

	eventbus.Publish(context.Background(), events.GraphQLFinish{
		OperationType: "query",
		ErrorMessages: []string{"boom", "second"},
	})

	out := buf.String()
	require.Contains(t, out, "errors=2")
	require.Contains(t, out, `first_error="boom"`)
	require.Contains(t, out, "op=(anonymous)")
}
