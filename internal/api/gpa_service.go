package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// GPAServiceName is the fully-qualified name of the GPA service.
const GPAServiceName = "gpacalc.v1.GPAService"

const (
	GPAServiceCreateSessionProcedure = "/gpacalc.v1.GPAService/CreateSession"
	GPAServiceGetSessionProcedure    = "/gpacalc.v1.GPAService/GetSession"
	GPAServiceAddCourseProcedure     = "/gpacalc.v1.GPAService/AddCourse"
	GPAServiceRemoveCourseProcedure  = "/gpacalc.v1.GPAService/RemoveCourse"
	GPAServiceUpdateCourseProcedure  = "/gpacalc.v1.GPAService/UpdateCourse"
	GPAServiceCalculateProcedure     = "/gpacalc.v1.GPAService/Calculate"
	GPAServiceCalculateGPAProcedure  = "/gpacalc.v1.GPAService/CalculateGPA"
	GPAServiceDeleteSessionProcedure = "/gpacalc.v1.GPAService/DeleteSession"
)

// GPAServiceHandler is implemented by the server side of the GPA service.
type GPAServiceHandler interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error)
	AddCourse(context.Context, *connect.Request[AddCourseRequest]) (*connect.Response[SessionResponse], error)
	RemoveCourse(context.Context, *connect.Request[RemoveCourseRequest]) (*connect.Response[SessionResponse], error)
	UpdateCourse(context.Context, *connect.Request[UpdateCourseRequest]) (*connect.Response[SessionResponse], error)
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[SessionResponse], error)
	CalculateGPA(context.Context, *connect.Request[CalculateGPARequest]) (*connect.Response[CalculateGPAResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
}

// NewGPAServiceHandler builds an HTTP handler for svc. It returns the path to
// mount the handler on.
func NewGPAServiceHandler(svc GPAServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		GPAServiceCreateSessionProcedure: connect.NewUnaryHandler(GPAServiceCreateSessionProcedure, svc.CreateSession, opts...),
		GPAServiceGetSessionProcedure:    connect.NewUnaryHandler(GPAServiceGetSessionProcedure, svc.GetSession, opts...),
		GPAServiceAddCourseProcedure:     connect.NewUnaryHandler(GPAServiceAddCourseProcedure, svc.AddCourse, opts...),
		GPAServiceRemoveCourseProcedure:  connect.NewUnaryHandler(GPAServiceRemoveCourseProcedure, svc.RemoveCourse, opts...),
		GPAServiceUpdateCourseProcedure:  connect.NewUnaryHandler(GPAServiceUpdateCourseProcedure, svc.UpdateCourse, opts...),
		GPAServiceCalculateProcedure:     connect.NewUnaryHandler(GPAServiceCalculateProcedure, svc.Calculate, opts...),
		GPAServiceCalculateGPAProcedure:  connect.NewUnaryHandler(GPAServiceCalculateGPAProcedure, svc.CalculateGPA, opts...),
		GPAServiceDeleteSessionProcedure: connect.NewUnaryHandler(GPAServiceDeleteSessionProcedure, svc.DeleteSession, opts...),
	}
	return "/" + GPAServiceName + "/", route(handlers)
}

// GPAServiceClient is a client for the GPA service.
type GPAServiceClient struct {
	createSession *connect.Client[CreateSessionRequest, SessionResponse]
	getSession    *connect.Client[GetSessionRequest, SessionResponse]
	addCourse     *connect.Client[AddCourseRequest, SessionResponse]
	removeCourse  *connect.Client[RemoveCourseRequest, SessionResponse]
	updateCourse  *connect.Client[UpdateCourseRequest, SessionResponse]
	calculate     *connect.Client[CalculateRequest, SessionResponse]
	calculateGPA  *connect.Client[CalculateGPARequest, CalculateGPAResponse]
	deleteSession *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
}

// NewGPAServiceClient creates a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewGPAServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GPAServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &GPAServiceClient{
		createSession: connect.NewClient[CreateSessionRequest, SessionResponse](httpClient, baseURL+GPAServiceCreateSessionProcedure, opts...),
		getSession:    connect.NewClient[GetSessionRequest, SessionResponse](httpClient, baseURL+GPAServiceGetSessionProcedure, opts...),
		addCourse:     connect.NewClient[AddCourseRequest, SessionResponse](httpClient, baseURL+GPAServiceAddCourseProcedure, opts...),
		removeCourse:  connect.NewClient[RemoveCourseRequest, SessionResponse](httpClient, baseURL+GPAServiceRemoveCourseProcedure, opts...),
		updateCourse:  connect.NewClient[UpdateCourseRequest, SessionResponse](httpClient, baseURL+GPAServiceUpdateCourseProcedure, opts...),
		calculate:     connect.NewClient[CalculateRequest, SessionResponse](httpClient, baseURL+GPAServiceCalculateProcedure, opts...),
		calculateGPA:  connect.NewClient[CalculateGPARequest, CalculateGPAResponse](httpClient, baseURL+GPAServiceCalculateGPAProcedure, opts...),
		deleteSession: connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+GPAServiceDeleteSessionProcedure, opts...),
	}
}

func (c *GPAServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *GPAServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *GPAServiceClient) AddCourse(ctx context.Context, req *connect.Request[AddCourseRequest]) (*connect.Response[SessionResponse], error) {
	return c.addCourse.CallUnary(ctx, req)
}

func (c *GPAServiceClient) RemoveCourse(ctx context.Context, req *connect.Request[RemoveCourseRequest]) (*connect.Response[SessionResponse], error) {
	return c.removeCourse.CallUnary(ctx, req)
}

func (c *GPAServiceClient) UpdateCourse(ctx context.Context, req *connect.Request[UpdateCourseRequest]) (*connect.Response[SessionResponse], error) {
	return c.updateCourse.CallUnary(ctx, req)
}

func (c *GPAServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[SessionResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *GPAServiceClient) CalculateGPA(ctx context.Context, req *connect.Request[CalculateGPARequest]) (*connect.Response[CalculateGPAResponse], error) {
	return c.calculateGPA.CallUnary(ctx, req)
}

func (c *GPAServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
