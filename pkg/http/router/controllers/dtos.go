package controllers

import (
	"github.com/lintang-b-s/trailnet/pkg/geo"
	"github.com/lintang-b-s/trailnet/pkg/http/usecases"
	"github.com/lintang-b-s/trailnet/pkg/track"
	"github.com/lintang-b-s/trailnet/pkg/util"
)

type pointRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type batchRequest struct {
	Points []pointRequest `json:"points" validate:"required,min=1,max=1000,dive"`
	Types  []string       `json:"types" validate:"omitempty,dive,oneof=hiking bicycle mtb horse"`
}

type networkRouteResponse struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Attributes []string `json:"attributes"`
	SeedID     int64    `json:"seed_id"`
	Fragments  int      `json:"fragments"`
	Points     int      `json:"points"`
	LengthKM   float64  `json:"length_km"`
	Polylines  []string `json:"polylines"`
}

func NewNetworkRouteResponse(t track.Track) networkRouteResponse {
	return networkRouteResponse{
		Name:       t.Name(),
		Type:       t.Key.Type().String(),
		Attributes: t.Key.Attributes(),
		SeedID:     int64(t.SeedID),
		Fragments:  len(t.Segments),
		Points:     t.PointCount(),
		LengthKM:   util.RoundFloat(t.Length(), 3),
		Polylines:  track.EncodePolylines(t),
	}
}

type nearestRouteResponse struct {
	networkRouteResponse
	DistanceM float64 `json:"distance_m"`
}

func NewNearestRouteResponse(t track.Track, lat, lon float64) nearestRouteResponse {
	return nearestRouteResponse{
		networkRouteResponse: NewNetworkRouteResponse(t),
		DistanceM:            util.RoundFloat(t.DistanceTo(geo.NewCoordinate(lat, lon)), 1),
	}
}

type networkRoutesResponse struct {
	Routes   []networkRouteResponse `json:"routes"`
	Failures []string               `json:"failures"`
}

func NewNetworkRoutesResponse(routes usecases.NetworkRoutes) networkRoutesResponse {
	resp := networkRoutesResponse{
		Routes:   make([]networkRouteResponse, 0, len(routes.Tracks)),
		Failures: make([]string, 0, len(routes.Failures)),
	}
	for _, t := range routes.Tracks {
		resp.Routes = append(resp.Routes, NewNetworkRouteResponse(t))
	}
	for _, f := range routes.Failures {
		resp.Failures = append(resp.Failures, f.Error())
	}
	return resp
}

type batchItemResponse struct {
	Lat    float64                `json:"lat"`
	Lon    float64                `json:"lon"`
	Result *networkRoutesResponse `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

func NewBatchResponse(points []pointRequest, items []usecases.BatchItem) []batchItemResponse {
	resp := make([]batchItemResponse, 0, len(items))
	for i, it := range items {
		r := batchItemResponse{Lat: points[i].Lat, Lon: points[i].Lon}
		if it.Err != nil {
			r.Error = it.Err.Error()
		} else {
			routes := NewNetworkRoutesResponse(it.Routes)
			r.Result = &routes
		}
		resp = append(resp, r)
	}
	return resp
}
