package viewer

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/minigis/internal/logger"
	"github.com/Faultbox/minigis/pkg/geom"
	"github.com/Faultbox/minigis/pkg/mesh"
	"github.com/Faultbox/minigis/pkg/pointcloud"
	"github.com/Faultbox/minigis/pkg/surface"
)

// PathPrompter supplies the point-cloud path. An empty path means none.
type PathPrompter interface {
	Prompt() (string, error)
}

// Scene is the mesh built once at startup together with what produced it.
type Scene struct {
	Path           string
	Points         int
	Reconstruction *surface.Result
	Mesh           *mesh.Buffer
}

// LoadScene asks for a file, loads it, reconstructs its surface and builds
// the vertex buffer. It never fails: every problem is logged and degrades to
// fewer or no points, so the viewer still opens with whatever it could read.
func LoadScene(prompter PathPrompter, opts surface.Options) *Scene {
	s := &Scene{}

	path, err := prompter.Prompt()
	if err != nil {
		logger.Warn("no point cloud selected", zap.Error(err))
	}
	s.Path = path

	points := loadPoints(path)
	s.Points = len(points)

	done := logger.Stage("surface reconstructed")
	s.Reconstruction = surface.Reconstruct(points, opts)
	done(
		zap.Int("tetrahedra", s.Reconstruction.Tetrahedra),
		zap.Int("candidates", s.Reconstruction.Candidates),
		zap.Int("components", s.Reconstruction.Components),
		zap.Int("duplicates", s.Reconstruction.Duplicates),
		zap.Int("holes", s.Reconstruction.Holes),
		zap.Int("facets", len(s.Reconstruction.Facets)),
	)
	if len(s.Reconstruction.Facets) == 0 {
		logger.Info("nothing to reconstruct, the scene stays empty", zap.Int("points", len(points)))
	}

	done = logger.Stage("vertex buffer built")
	s.Mesh = mesh.Build(s.Reconstruction.Facets)
	b := s.Mesh.Bounds()
	done(
		zap.Int("vertices", s.Mesh.VertexCount()),
		zap.Float64s("min", b.Min[:]),
		zap.Float64s("max", b.Max[:]),
	)
	return s
}

// Title decorates the window title with the file shown and its size.
func (s *Scene) Title(base string) string {
	if s.Path == "" {
		return base
	}
	return fmt.Sprintf("%s - %s (%d triangles)", base, filepath.Base(s.Path), s.Mesh.TriangleCount())
}

func loadPoints(path string) []geom.Point3 {
	if path == "" {
		logger.Info("no point cloud chosen")
		return nil
	}

	done := logger.Stage("point cloud loaded")
	points, err := pointcloud.Load(path)
	switch {
	case errors.Is(err, pointcloud.ErrMalformed):
		logger.Warn("point cloud has malformed records, keeping what was read",
			zap.String("path", path), zap.Int("points", len(points)), zap.Error(err))
	case err != nil && len(points) > 0:
		logger.Warn("point cloud read stopped early, keeping what was read",
			zap.String("path", path), zap.Int("points", len(points)), zap.Error(err))
	case err != nil:
		logger.Warn("cannot read point cloud", zap.String("path", path), zap.Error(err))
		return nil
	}

	ext := pointcloud.Stats(points)
	done(
		zap.String("path", path),
		zap.Int("points", ext.Count),
		zap.Float64s("min", []float64{ext.Min.X, ext.Min.Y, ext.Min.Z}),
		zap.Float64s("max", []float64{ext.Max.X, ext.Max.Y, ext.Max.Z}),
	)
	return points
}
