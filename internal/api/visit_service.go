package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// VisitServiceName is the fully-qualified name of the visit service.
const VisitServiceName = "gpacalc.v1.VisitService"

const VisitServiceRecordVisitProcedure = "/gpacalc.v1.VisitService/RecordVisit"

// VisitServiceHandler is implemented by the server side of the visit service.
type VisitServiceHandler interface {
	RecordVisit(context.Context, *connect.Request[RecordVisitRequest]) (*connect.Response[RecordVisitResponse], error)
}

// NewVisitServiceHandler builds an HTTP handler for svc and returns its mount path.
func NewVisitServiceHandler(svc VisitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	return "/" + VisitServiceName + "/", route(map[string]http.Handler{
		VisitServiceRecordVisitProcedure: connect.NewUnaryHandler(VisitServiceRecordVisitProcedure, svc.RecordVisit, opts...),
	})
}

// VisitServiceClient is a client for the visit service.
type VisitServiceClient struct {
	recordVisit *connect.Client[RecordVisitRequest, RecordVisitResponse]
}

// NewVisitServiceClient creates a client for the service at baseURL.
func NewVisitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *VisitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &VisitServiceClient{
		recordVisit: connect.NewClient[RecordVisitRequest, RecordVisitResponse](httpClient, baseURL+VisitServiceRecordVisitProcedure, opts...),
	}
}

func (c *VisitServiceClient) RecordVisit(ctx context.Context, req *connect.Request[RecordVisitRequest]) (*connect.Response[RecordVisitResponse], error) {
	return c.recordVisit.CallUnary(ctx, req)
}
