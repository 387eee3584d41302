// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/minigis/internal/engine/lighting"
	"github.com/Faultbox/minigis/internal/engine/shader"
	"github.com/Faultbox/minigis/internal/engine/shaders"
	"github.com/Faultbox/minigis/internal/logger"
	"github.com/Faultbox/minigis/pkg/math"
	"github.com/Faultbox/minigis/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Frame is everything a single draw needs besides the mesh itself.
type Frame struct {
	Projection math.Mat4
	View       math.Mat4
	Model      math.Mat4
	ViewPos    math.Vec3
	Light      lighting.PointLight
	Material   lighting.Material
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.NewProgram(shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	logger.Debug("shader program created", zap.Uint32("program", program.ID))

	return r, nil
}

// Upload copies the vertex buffer to the GPU. Position goes to attribute 0,
// the normal to attribute 1. An empty buffer uploads nothing.
func (r *Renderer) Upload(buf *mesh.Buffer) {
	r.release()

	r.vertexCount = int32(buf.VertexCount())
	if r.vertexCount == 0 {
		logger.Info("mesh is empty, nothing to upload")
		return
	}

	stride := int32(mesh.Stride * 4)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf.Data)*4, unsafe.Pointer(&buf.Data[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Int32("vertices", r.vertexCount),
	)
}

// VertexCount returns the number of vertices currently uploaded.
func (r *Renderer) VertexCount() int {
	return int(r.vertexCount)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.release()
	if r.program != nil {
		r.program.Delete()
	}
}

func (r *Renderer) release() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	r.vertexCount = 0
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw submits the uploaded mesh. Frames without vertices issue no draw call.
func (r *Renderer) Draw(f Frame) {
	if r.vertexCount == 0 {
		return
	}

	r.program.Use()
	lighting.Apply(r.program, f.Light, f.Material, f.ViewPos)
	r.program.SetMat4("projection", f.Projection)
	r.program.SetMat4("view", f.View)
	r.program.SetMat4("model", f.Model)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}
