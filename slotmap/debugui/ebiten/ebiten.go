// Package ebiten provides Dear ImGui backend integration for the Ebiten
// game engine, for rendering slot map inspectors inside an Ebiten loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend
// implementation. Use this to integrate debugui inspectors into Ebiten
// game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
