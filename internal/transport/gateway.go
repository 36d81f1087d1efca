package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxBodyBytes = 8 << 20

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterGateway routes the REST API of srv on mux:
//
//	GET  /v1/health
//	POST /v1/transactions/decode
//	POST /v1/transactions/check
//	GET  /v1/transactions/{id}
func RegisterGateway(mux *gwruntime.ServeMux, srv TxServiceServer) error {
	routes := []struct {
		method string
		path   string
		h      gwruntime.HandlerFunc
	}{
		{method: http.MethodGet, path: "/v1/health", h: func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			resp, err := srv.Health(r.Context(), &HealthRequest{})
			writeResponse(w, resp, err)
		}},
		{method: http.MethodPost, path: "/v1/transactions/decode", h: postHandler(srv.Decode)},
		{method: http.MethodPost, path: "/v1/transactions/check", h: postHandler(srv.Check)},
		{method: http.MethodGet, path: "/v1/transactions/{id}", h: func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			resp, err := srv.Lookup(r.Context(), &LookupRequest{ID: params["id"]})
			writeResponse(w, resp, err)
		}},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.path, route.h); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.path, err)
		}
	}
	return nil
}

func postHandler[Req, Resp any](call func(context.Context, *Req) (*Resp, error)) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		in := new(Req)
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(in); err != nil {
			writeError(w, status.Errorf(codes.InvalidArgument, "request body: %v", err))
			return
		}
		resp, err := call(r.Context(), in)
		writeResponse(w, resp, err)
	}
}

func writeResponse(w http.ResponseWriter, v any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(gwruntime.HTTPStatusFromCode(st.Code()))
	_ = json.NewEncoder(w).Encode(errorBody{Code: int(st.Code()), Message: st.Message()})
}
