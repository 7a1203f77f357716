package ebiten_test

import (
	"math/rand"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/slotmap/slotmap"
	"github.com/plus3/slotmap/slotmap/debugui"
	slotmap_ebiten "github.com/plus3/slotmap/slotmap/debugui/ebiten"
)

type Particle struct {
	X, Y   float64
	DX, DY float64
	Life   float64
}

// Game implements ebiten.Game, churning a particle slot map and
// rendering its inspector as an ImGui overlay.
type Game struct {
	particles    *slotmap.SlotMap[Particle]
	keys         []slotmap.Key
	inspector    *debugui.Inspector[Particle]
	imguiBackend slotmap_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Steady churn: expire a random particle, spawn a fresh one.
	if len(g.keys) > 0 && rand.Intn(4) == 0 {
		i := rand.Intn(len(g.keys))
		g.particles.Erase(g.keys[i])
		g.keys[i] = g.keys[len(g.keys)-1]
		g.keys = g.keys[:len(g.keys)-1]
	}
	g.keys = append(g.keys, g.particles.Insert(Particle{
		X: rand.Float64() * 1280, Y: rand.Float64() * 720, Life: 1.0,
	}))

	for p := range g.particles.Values() {
		p.X += p.DX
		p.Y += p.DY
	}

	// Begin ImGui frame, render the inspector, end the frame.
	g.imguiBackend.BeginFrame()
	g.inspector.Render()
	g.imguiBackend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := ebitenbackend.NewEbitenBackend()
	imguiBackend.CreateWindow("SlotMap Inspector Example", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	particles := slotmap.New[Particle](256)

	game := &Game{
		particles: particles,
		inspector: debugui.NewInspector("Particles", particles, nil),
		imguiBackend: slotmap_ebiten.ImguiBackend{
			EbitenBackend: imguiBackend,
		},
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
