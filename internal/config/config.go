// Package config handles viewer configuration loading.
package config

import (
	"fmt"

	"github.com/Faultbox/minigis/internal/logger"
	"github.com/Faultbox/minigis/pkg/surface"
)

// Config holds all viewer settings.
type Config struct {
	Window         WindowConfig    `yaml:"window"`
	Camera         CameraConfig    `yaml:"camera"`
	Scene          SceneConfig     `yaml:"scene"`
	Reconstruction surface.Options `yaml:"reconstruction"`
	Input          InputConfig     `yaml:"input"`
	Logging        logger.Options  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	CaptureMouse bool   `yaml:"capture_mouse"`
}

// CameraConfig holds the initial camera pose and its tuning.
type CameraConfig struct {
	Position       [3]float32 `yaml:"position"`
	Yaw            float32    `yaml:"yaw"`   // degrees
	Pitch          float32    `yaml:"pitch"` // degrees
	Speed          float32    `yaml:"speed"`
	Sensitivity    float32    `yaml:"sensitivity"`
	ConstrainPitch bool       `yaml:"constrain_pitch"`
}

// SceneConfig holds colours, the light and projection planes.
type SceneConfig struct {
	ClearColor    [3]float32 `yaml:"clear_color"`
	ObjectColor   [3]float32 `yaml:"object_color"`
	LightColor    [3]float32 `yaml:"light_color"`
	LightPosition [3]float32 `yaml:"light_position"`
	RotateSpeed   float32    `yaml:"rotate_speed"` // model rotation, rad/s
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	ShowFPS       bool       `yaml:"show_fps"`
}

// InputConfig selects the point cloud. An empty File opens a dialog.
type InputConfig struct {
	File string `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "MiniGIS",
			Width:        800,
			Height:       600,
			Fullscreen:   false,
			VSync:        true,
			CaptureMouse: true,
		},
		Camera: CameraConfig{
			Position:       [3]float32{0, 0, 5},
			Yaw:            -90,
			Pitch:          0,
			Speed:          2.5,
			Sensitivity:    0.1,
			ConstrainPitch: true,
		},
		Scene: SceneConfig{
			ClearColor:    [3]float32{0.1, 0.1, 0.1},
			ObjectColor:   [3]float32{1.0, 0.5, 0.31},
			LightColor:    [3]float32{1, 1, 1},
			LightPosition: [3]float32{0, 0, 3},
			RotateSpeed:   0.6,
			Near:          0.1,
			Far:           100,
		},
		Reconstruction: surface.DefaultOptions(),
		Logging:        logger.DefaultOptions(),
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		return fmt.Errorf("clip planes near=%g far=%g: need 0 < near < far", c.Scene.Near, c.Scene.Far)
	}
	return nil
}
