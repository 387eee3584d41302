// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms positions and normals for per-fragment lighting.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades a single-colour object with one point light.
//
//go:embed lit.frag
var LitFragmentShader string
