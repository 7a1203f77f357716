// Package debugui provides an immediate-mode Dear ImGui inspector for
// slot maps: live stats, the free-list chain, and a table of the dense
// store. It is built entirely on the public slotmap API, so watching a
// map never perturbs its internal state.
package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/slotmap/slotmap"
)

// Inspector renders one slot map in its own ImGui window. Construct it
// once and call Render every frame between the backend's BeginFrame and
// EndFrame.
type Inspector[T any] struct {
	title  string
	m      *slotmap.SlotMap[T]
	format func(T) string

	maxRows int
}

// NewInspector creates an inspector window titled title for m. format
// turns a stored value into a one-line cell; pass nil for %v
// formatting.
func NewInspector[T any](title string, m *slotmap.SlotMap[T], format func(T) string) *Inspector[T] {
	if format == nil {
		format = func(v T) string { return fmt.Sprintf("%v", v) }
	}
	return &Inspector[T]{
		title:   title,
		m:       m,
		format:  format,
		maxRows: 256,
	}
}

// SetMaxRows limits how many dense-store rows the value table shows.
func (in *Inspector[T]) SetMaxRows(n int) {
	in.maxRows = n
}

// Render draws the inspector window for the current frame.
func (in *Inspector[T]) Render() {
	if !imgui.BeginV(in.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := in.m.CollectStats()

	imgui.Text(fmt.Sprintf("Size: %d / %d", stats.Size, stats.Capacity))
	imgui.Text(fmt.Sprintf("Free Slots: %d", stats.FreeSlots))
	imgui.Text(fmt.Sprintf("Recycled Slots: %d", stats.RecycledSlots))
	imgui.Text(fmt.Sprintf("Max Generation: %d", stats.MaxGeneration))

	imgui.Separator()

	if imgui.TreeNodeStr("Free List") {
		imgui.Text(formatFreeList(stats.FreeList))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Live Values") {
		in.renderValueTable()
		imgui.TreePop()
	}

	imgui.End()
}

func (in *Inspector[T]) renderValueTable() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("##values", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Index")
	imgui.TableSetupColumn("Key")
	imgui.TableSetupColumn("Value")
	imgui.TableHeadersRow()

	rows := in.m.Size()
	if rows > in.maxRows {
		rows = in.maxRows
	}

	for i := 0; i < rows; i++ {
		key := in.m.KeyForIndex(i)

		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", i))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("(%d, %d)", key.Index, key.Generation))
		imgui.TableNextColumn()
		imgui.Text(in.format(*in.m.At(i)))
	}

	imgui.EndTable()

	if in.m.Size() > in.maxRows {
		imgui.Text(fmt.Sprintf("... %d more", in.m.Size()-in.maxRows))
	}
}

// formatFreeList renders the chain head to tail, e.g. "2 -> 0 -> 3".
func formatFreeList(freeList []int32) string {
	if len(freeList) == 0 {
		return "(empty)"
	}

	var b strings.Builder
	for i, id := range freeList {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}
