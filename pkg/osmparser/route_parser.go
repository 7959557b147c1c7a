package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

// fragment ids are wayID<<7 | key index
const maxKeysPerWay = 1 << 7

var (
	// https://wiki.openstreetmap.org/wiki/Relation:route
	acceptedRouteType = map[string]nr.RouteType{
		"hiking":  nr.HIKING,
		"foot":    nr.HIKING,
		"bicycle": nr.BICYCLE,
		"mtb":     nr.MTB,
		"horse":   nr.HORSE,
	}

	skipRelationTag = map[string]struct{}{
		"type":       struct{}{},
		"route":      struct{}{},
		"created_by": struct{}{},
		"source":     struct{}{},
		"note":       struct{}{},
		"fixme":      struct{}{},
		"FIXME":      struct{}{},
	}
)

type routeRelation struct {
	id        int64
	routeType nr.RouteType
	tags      map[string]string
}

type routeWay struct {
	nodes []int64
	tags  map[string]string
}

// ScannerFactory opens a fresh scanner over the same osm data. the parser needs
// three passes: relations, then ways, then nodes.
type ScannerFactory func(ctx context.Context) (osm.Scanner, io.Closer, error)

// RouteParser turns osm route relations into network route fragments: every member
// way of a hiking/bicycle/mtb/horse route relation becomes one fragment per route key.
type RouteParser struct {
	filter     *nr.Filter
	log        *zap.Logger
	relations  map[int64]routeRelation
	wayRoutes  map[int64][]int64 // way id -> route relation ids
	ways       map[int64]routeWay
	nodeCoords map[int64]nr.Point31
}

func NewRouteParser(filter *nr.Filter, log *zap.Logger) *RouteParser {
	return &RouteParser{
		filter:     filter,
		log:        log,
		relations:  make(map[int64]routeRelation),
		wayRoutes:  make(map[int64][]int64),
		ways:       make(map[int64]routeWay),
		nodeCoords: make(map[int64]nr.Point31),
	}
}

// Parse reads an .osm.pbf, .osm or .osm.bz2 file.
func (p *RouteParser) Parse(ctx context.Context, mapFile string) ([]*nr.RouteFragment, error) {
	return p.ParseWith(ctx, FileScannerFactory(mapFile))
}

func (p *RouteParser) ParseWith(ctx context.Context, open ScannerFactory) ([]*nr.RouteFragment, error) {
	passes := []struct {
		name string
		fn   func(o osm.Object)
	}{
		{name: "relations", fn: func(o osm.Object) {
			if r, ok := o.(*osm.Relation); ok {
				p.processRelation(r)
			}
		}},
		{name: "ways", fn: func(o osm.Object) {
			if w, ok := o.(*osm.Way); ok {
				p.processWay(w)
			}
		}},
		{name: "nodes", fn: func(o osm.Object) {
			if n, ok := o.(*osm.Node); ok {
				p.processNode(n)
			}
		}},
	}

	for _, pass := range passes {
		p.log.Info("reading openstreetmap " + pass.name + "...")
		if err := scanAll(ctx, open, pass.fn); err != nil {
			return nil, fmt.Errorf("scan %s: %w", pass.name, err)
		}
	}
	p.log.Info("openstreetmap route data read",
		zap.Int("relations", len(p.relations)),
		zap.Int("ways", len(p.ways)),
		zap.Int("nodes", len(p.nodeCoords)))

	return p.BuildFragments()
}

func scanAll(ctx context.Context, open ScannerFactory, fn func(o osm.Object)) error {
	scanner, closer, err := open(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer scanner.Close()

	for scanner.Scan() {
		fn(scanner.Object())
	}
	return scanner.Err()
}

// FileScannerFactory picks the decoder from the file extension.
func FileScannerFactory(mapFile string) ScannerFactory {
	return func(ctx context.Context) (osm.Scanner, io.Closer, error) {
		f, err := os.Open(mapFile)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case strings.HasSuffix(mapFile, ".pbf"):
			// must not be parallel
			return osmpbf.New(ctx, f, 1), f, nil
		case strings.HasSuffix(mapFile, ".bz2"):
			bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
			if err != nil {
				f.Close()
				return nil, nil, err
			}
			return osmxml.New(ctx, bz), multiCloser{bz, f}, nil
		default:
			return osmxml.New(ctx, f), f, nil
		}
	}
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var first error
	for _, c := range mc {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *RouteParser) processRelation(relation *osm.Relation) {
	if relation.Tags.Find("type") != "route" {
		return
	}
	routeType, ok := acceptedRouteType[relation.Tags.Find("route")]
	if !ok {
		return
	}

	tags := make(map[string]string, len(relation.Tags))
	for _, tag := range relation.Tags {
		if _, skip := skipRelationTag[tag.Key]; skip {
			continue
		}
		tags[tag.Key] = tag.Value
	}
	id := int64(relation.ID)
	p.relations[id] = routeRelation{
		id:        id,
		routeType: routeType,
		tags:      tags,
	}

	seen := make(map[int64]struct{})
	for _, member := range relation.Members {
		if member.Type != osm.TypeWay {
			continue
		}
		if _, dup := seen[member.Ref]; dup {
			continue
		}
		seen[member.Ref] = struct{}{}
		p.wayRoutes[member.Ref] = append(p.wayRoutes[member.Ref], id)
	}
}

func (p *RouteParser) processWay(way *osm.Way) {
	if _, ok := p.wayRoutes[int64(way.ID)]; !ok {
		return
	}
	if len(way.Nodes) < 2 {
		return
	}
	nodes := make([]int64, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		nodes = append(nodes, int64(n.ID))
		p.nodeCoords[int64(n.ID)] = nr.Point31{X: -1, Y: -1}
	}
	p.ways[int64(way.ID)] = routeWay{
		nodes: nodes,
		tags:  way.Tags.Map(),
	}
}

func (p *RouteParser) processNode(node *osm.Node) {
	if _, ok := p.nodeCoords[int64(node.ID)]; !ok {
		return
	}
	p.nodeCoords[int64(node.ID)] = nr.NewPoint31(geo.Get31TileNumberX(node.Lon), geo.Get31TileNumberY(node.Lat))
}

// RouteTags numbers the route relations of a way per route type (in relation id order)
// and flattens their tags into route_<type>_<n> groups.
func (p *RouteParser) RouteTags(wayID int64) map[string]string {
	relIDs := append([]int64(nil), p.wayRoutes[wayID]...)
	sort.Slice(relIDs, func(i, j int) bool { return relIDs[i] < relIDs[j] })

	tags := make(map[string]string)
	groupIdx := make(map[nr.RouteType]int)
	for _, relID := range relIDs {
		rel, ok := p.relations[relID]
		if !ok {
			continue
		}
		groupIdx[rel.routeType]++
		groupPrefix := rel.routeType.TagPrefix() + strconv.Itoa(groupIdx[rel.routeType])
		tags[groupPrefix] = ""
		for k, v := range rel.tags {
			tags[groupPrefix+"_"+k] = v
		}
	}
	return tags
}

// BuildFragments creates one fragment per (way, route key), ways in id order.
func (p *RouteParser) BuildFragments() ([]*nr.RouteFragment, error) {
	wayIDs := make([]int64, 0, len(p.ways))
	for id := range p.ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

	frags := make([]*nr.RouteFragment, 0, len(wayIDs))
	for _, wayID := range wayIDs {
		way := p.ways[wayID]
		points := p.wayPoints(way)
		if len(points) < 2 {
			p.log.Debug("skipping way without enough located nodes", zap.Int64("way", wayID))
			continue
		}

		keys := p.filter.Convert(nr.MergeTags(way.tags, p.RouteTags(wayID)))
		if len(keys) > maxKeysPerWay {
			p.log.Warn("way carries too many route keys, extra keys dropped",
				zap.Int64("way", wayID), zap.Int("keys", len(keys)))
			keys = keys[:maxKeysPerWay]
		}
		for i, key := range keys {
			frag, err := nr.NewRouteFragment(nr.FragmentID(wayID<<7|int64(i)), key, points)
			if err != nil {
				return nil, err
			}
			frags = append(frags, frag)
		}
	}
	p.log.Info("network route fragments built", zap.Int("fragments", len(frags)))
	return frags, nil
}

// wayPoints. located nodes of the way, nodes cut off by the extract are skipped
func (p *RouteParser) wayPoints(way routeWay) []nr.Point31 {
	points := make([]nr.Point31, 0, len(way.nodes))
	for _, n := range way.nodes {
		pt, ok := p.nodeCoords[n]
		if !ok || pt.X < 0 {
			continue
		}
		if len(points) > 0 && points[len(points)-1] == pt {
			continue
		}
		points = append(points, pt)
	}
	return points
}
