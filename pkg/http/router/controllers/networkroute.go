package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/trailnet/pkg/geo"
	helper "github.com/lintang-b-s/trailnet/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/trailnet/pkg/http/usecases"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/track"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"go.uber.org/zap"
)

const maxBatchBodyBytes = 1 << 20

type networkRouteAPI struct {
	service  NetworkRouteService
	validate *validator.Validate
	trans    ut.Translator
	log      *zap.Logger
}

func New(service NetworkRouteService, log *zap.Logger) *networkRouteAPI {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &networkRouteAPI{
		service:  service,
		validate: validate,
		trans:    trans,
		log:      log,
	}
}

func (api *networkRouteAPI) Routes(group *helper.RouteGroup) {
	group.GET("/networkRoutes", api.networkRoutes)
	group.GET("/networkRoutes/gpx", api.networkRoutesGPX)
	group.GET("/networkRoutes/geojson", api.networkRoutesGeoJSON)
	group.POST("/networkRoutes/batch", api.networkRoutesBatch)
	group.GET("/nearestNetworkRoute", api.nearestNetworkRoute)
}

func (api *networkRouteAPI) validationError(err error) error {
	vv := translateError(err, api.trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %v", vvString)
}

// parsePointQuery reads lat, lon and the optional comma separated types query params.
func (api *networkRouteAPI) parsePointQuery(r *http.Request) (pointRequest, []nr.RouteType, error) {
	var (
		request pointRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		return request, nil, errors.New("lat is required and must be a valid float")
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		return request, nil, errors.New("lon is required and must be a valid float")
	}
	if err := api.validate.Struct(request); err != nil {
		return request, nil, api.validationError(err)
	}

	var types []nr.RouteType
	if raw := query.Get("types"); raw != "" {
		types, err = nr.ParseRouteTypes(util.SplitList(raw))
		if err != nil {
			return request, nil, err
		}
	}
	return request, types, nil
}

// findRoutes parses the point query and runs the lookup. on failure the error
// response is already written.
func (api *networkRouteAPI) findRoutes(w http.ResponseWriter, r *http.Request) (usecases.NetworkRoutes, bool) {
	request, types, err := api.parsePointQuery(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return usecases.NetworkRoutes{}, false
	}
	routes, err := api.service.FindRoutes(r.Context(), request.Lat, request.Lon, types)
	if err != nil {
		api.getStatusCode(w, r, err)
		return usecases.NetworkRoutes{}, false
	}
	return routes, true
}

func (api *networkRouteAPI) networkRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	routes, ok := api.findRoutes(w, r)
	if !ok {
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNetworkRoutesResponse(routes)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *networkRouteAPI) networkRoutesGPX(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	routes, ok := api.findRoutes(w, r)
	if !ok {
		return
	}
	data, err := track.ToGPX(routes.Tracks)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="routes.gpx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (api *networkRouteAPI) networkRoutesGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	routes, ok := api.findRoutes(w, r)
	if !ok {
		return
	}
	data, err := track.ToGeoJSON(routes.Tracks).MarshalJSON()
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (api *networkRouteAPI) nearestNetworkRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, _, err := api.parsePointQuery(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.service.FindNearestRoute(r.Context(), request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestRouteResponse(route, request.Lat, request.Lon)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *networkRouteAPI) networkRoutesBatch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBatchBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, api.validationError(err))
		return
	}

	var types []nr.RouteType
	if len(request.Types) > 0 {
		var err error
		types, err = nr.ParseRouteTypes(request.Types)
		if err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}

	points := make([]geo.Coordinate, 0, len(request.Points))
	for _, pt := range request.Points {
		points = append(points, geo.NewCoordinate(pt.Lat, pt.Lon))
	}
	items := api.service.FindRoutesBatch(r.Context(), points, types)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchResponse(request.Points, items)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
