// Package pipeline implements the Pipeline Orchestrator: the per-floor
// sequencing of footprint union, edge classification, wall extrusion,
// and mesh welding that turns a BuildingSpec into a validated mesh and
// an export manifest.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/buildkernel/geokernel/core/collision"
	"github.com/buildkernel/geokernel/core/edges"
	"github.com/buildkernel/geokernel/core/geometry"
	"github.com/buildkernel/geokernel/core/kernelconfig"
	"github.com/buildkernel/geokernel/core/manifest"
	"github.com/buildkernel/geokernel/core/meshvalidator"
	"github.com/buildkernel/geokernel/core/vertical"
	"github.com/buildkernel/geokernel/core/wallstrip"
)

// RoofType is the closed set of roof styles a BuildingSpec may request.
type RoofType string

const (
	RoofFlat   RoofType = "flat"
	RoofGabled RoofType = "gabled"
	RoofHip    RoofType = "hip"
	RoofShed   RoofType = "shed"
)

// BuildingSpec is the high-level generation request.
type BuildingSpec struct {
	Width    float64
	Depth    float64
	Floors   int
	Seed     int64
	RoofType RoofType
	SpecID   string
}

// FloorplanProvider is the external floorplan collaborator: given a
// floor index it returns that floor's candidate rooms. The production
// floorplan room-layout heuristic is an excluded external concern; the
// kernel only depends on this interface.
type FloorplanProvider interface {
	GenerateFloorplan(spec BuildingSpec, floorIndex int) ([]geometry.Room, error)
}

// FloorOutput summarizes one floor's generation result.
type FloorOutput struct {
	Index             int
	RoomCount         int
	WallSegmentCount  int
}

// GenerationOutput is the top-level result of a successful generation.
type GenerationOutput struct {
	Floors       []FloorOutput
	RoofType     RoofType
	SpecID       string
	ManifestPath string
	Warnings     []string
}

// ManifestFormat is the exporter target format stamped into the written
// manifest document. The exporter itself is an external collaborator;
// the kernel only records which one the manifest was produced for.
type ManifestFormat string

const (
	FormatGLB   ManifestFormat = "glb"
	FormatBlend ManifestFormat = "blend"
)

// metrics holds the orchestrator's Prometheus instrumentation.
type metrics struct {
	generationDuration prometheus.Histogram
	floorsProcessed    prometheus.Counter
	validationFailures prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		generationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "geokernel_generation_duration_seconds",
			Help: "Wall-clock duration of a full generation call.",
		}),
		floorsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geokernel_floors_processed_total",
			Help: "Total number of floors processed across all generations.",
		}),
		validationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geokernel_validation_failures_total",
			Help: "Total number of generations that failed mesh validation.",
		}),
	}
}

// Orchestrator drives a single generation call end to end.
type Orchestrator struct {
	floorplan FloorplanProvider
	config    kernelconfig.Config
	logger    *zap.Logger
	metrics   *metrics
}

// New builds an Orchestrator. A nil logger falls back to zap.NewNop().
func New(floorplan FloorplanProvider, config kernelconfig.Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		floorplan: floorplan,
		config:    config,
		logger:    logger,
		metrics:   newMetrics(),
	}
}

// weldedVertex is one deduplicated vertex of the welded mesh, compared
// by proximity against incoming strip vertices.
type weldedVertex struct {
	v meshvalidator.Vertex
}

// meshBuilder accumulates wall strips into a single welded mesh buffer,
// deduplicating vertices within the configured merge tolerance.
type meshBuilder struct {
	tolerance float64
	verts     []weldedVertex
}

func newMeshBuilder(tolerance float64) *meshBuilder {
	return &meshBuilder{tolerance: tolerance}
}

func (b *meshBuilder) weldIndex(v meshvalidator.Vertex) int {
	for i, existing := range b.verts {
		dx := existing.v.X - v.X
		dy := existing.v.Y - v.Y
		dz := existing.v.Z - v.Z
		if dx*dx+dy*dy+dz*dz <= b.tolerance*b.tolerance {
			return i
		}
	}
	b.verts = append(b.verts, weldedVertex{v: v})
	return len(b.verts) - 1
}

func (b *meshBuilder) accumulate(s wallstrip.Strip) []meshvalidator.Face {
	var localIdx [8]int
	for i, v := range s.Verts {
		localIdx[i] = b.weldIndex(meshvalidator.Vertex{X: v.X, Y: v.Y, Z: v.Z})
	}
	faces := make([]meshvalidator.Face, 0, len(s.Faces))
	for _, f := range s.Faces {
		faces = append(faces, meshvalidator.Face{
			localIdx[f[0]], localIdx[f[1]], localIdx[f[2]], localIdx[f[3]],
		})
	}
	return faces
}

func (b *meshBuilder) mesh() meshvalidator.Mesh {
	verts := make([]meshvalidator.Vertex, len(b.verts))
	for i, wv := range b.verts {
		verts[i] = wv.v
	}
	return meshvalidator.Mesh{Verts: verts}
}

// Generate runs the full per-floor pipeline: obtain rooms, union the
// footprint, classify edges, extrude wall strips, weld them into the
// accumulating mesh, then validate and write the manifest at
// manifestPath in the given exporter format. An empty spec.SpecID is
// replaced with a freshly stamped UUIDv4, threaded through as the
// spec_id attached to any GenerationError.
func (o *Orchestrator) Generate(spec BuildingSpec, manifestPath string, format ManifestFormat) (GenerationOutput, error) {
	start := time.Now()
	defer func() { o.metrics.generationDuration.Observe(time.Since(start).Seconds()) }()

	if spec.Floors < 1 {
		return GenerationOutput{}, fmt.Errorf("pipeline: floors must be >= 1, got %d", spec.Floors)
	}
	if spec.SpecID == "" {
		spec.SpecID = uuid.NewString()
	}

	builder := newMeshBuilder(o.config.MergeDistance)
	var allFaces []meshvalidator.Face
	var floorOutputs []FloorOutput
	var edgeWarnings []string

	for i := 0; i < spec.Floors; i++ {
		rooms, err := o.floorplan.GenerateFloorplan(spec, i)
		if err != nil {
			return GenerationOutput{}, fmt.Errorf("pipeline: floorplan for floor %d: %w", i, err)
		}

		if ok, msg := collision.ValidateLayout(rooms, o.config.MicroUnit); !ok {
			return GenerationOutput{}, fmt.Errorf("pipeline: floor %d: %s", i, msg)
		}

		footprint, err := geometry.RobustUnion(rooms, o.config.MicroUnit, o.config.Grid)
		if err != nil {
			return GenerationOutput{}, fmt.Errorf("pipeline: floor %d: robust union: %w", i, err)
		}

		centroid := footprint.Centroid()
		centroidX, centroidY := centroid.X, centroid.Y

		classified, err := edges.ClassifyEdges(footprint, rooms, o.config.MicroUnit, centroidX, centroidY)
		if err != nil {
			return GenerationOutput{}, fmt.Errorf("pipeline: floor %d: classify edges: %w", i, err)
		}

		elev := vertical.FloorElevations(i, o.config.StoryHeight, o.config.WallHeight)

		for _, edge := range classified {
			strip, ok := wallstrip.BuildWallStrip(edge, elev, centroidX, centroidY, o.config.WallThickness)
			if !ok {
				edgeWarnings = append(edgeWarnings, fmt.Sprintf(
					"zero-length edge skipped on floor %d: (%g,%g)-(%g,%g)",
					i, edge.P1.X, edge.P1.Y, edge.P2.X, edge.P2.Y))
				continue
			}
			allFaces = append(allFaces, builder.accumulate(strip)...)
		}

		floorOutputs = append(floorOutputs, FloorOutput{
			Index:            i,
			RoomCount:        len(rooms),
			WallSegmentCount: len(classified),
		})
		o.metrics.floorsProcessed.Inc()
		o.logger.Info("floor generated",
			zap.Int("floor_index", i),
			zap.Int("room_count", len(rooms)),
			zap.Int("wall_segment_count", len(classified)),
		)
	}

	mesh := builder.mesh()
	mesh.Faces = allFaces

	topFloor := spec.Floors - 1
	roofTopZ := vertical.FloorElevations(topFloor, o.config.StoryHeight, o.config.WallHeight).WallTopZ
	result := meshvalidator.Validate(mesh, o.config.Grid, roofTopZ, spec.RoofType == RoofFlat)
	result.Warnings = append(edgeWarnings, result.Warnings...)
	if !result.OK() {
		o.metrics.validationFailures.Inc()
		return GenerationOutput{}, meshvalidator.Gate(result, spec.SpecID)
	}

	entries := make([]manifest.FloorEntry, len(floorOutputs))
	for i, f := range floorOutputs {
		entries[i] = manifest.FloorEntry{Index: f.Index, RoomCount: f.RoomCount, WallSegmentCount: f.WallSegmentCount}
	}
	doc := manifest.New(spec.SpecID, entries, string(spec.RoofType), string(format))
	if err := manifest.Write(manifestPath, doc); err != nil {
		return GenerationOutput{}, fmt.Errorf("pipeline: writing manifest: %w", err)
	}

	output := GenerationOutput{
		Floors:       floorOutputs,
		RoofType:     spec.RoofType,
		SpecID:       spec.SpecID,
		ManifestPath: manifestPath,
		Warnings:     result.Warnings,
	}
	o.logger.Info("generation complete",
		zap.String("spec_id", spec.SpecID),
		zap.Int("floors", len(floorOutputs)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return output, nil
}
