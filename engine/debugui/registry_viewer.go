package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickloop/engine"
)

type TickableInfo struct {
	Index   int
	Type    string
	Overlay bool
}

// RegistryViewer lists the registered tickables in update and render order
// and marks the active overlay.
type RegistryViewer struct {
	engine *engine.Engine
}

func NewRegistryViewer(e *engine.Engine) *RegistryViewer {
	return &RegistryViewer{engine: e}
}

func (rv *RegistryViewer) Render() {
	if !imgui.BeginV("Registry", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	infos := describeRegistry(rv.engine.Registry().Snapshot(), rv.engine.Overlay())
	res := rv.engine.Resolution()
	imgui.Text(fmt.Sprintf("Resolution: %dx%d", res.Width, res.Height))
	imgui.Text(fmt.Sprintf("Tickables: %d", len(infos)))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("RegistryTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Type")
		imgui.TableHeadersRow()

		for _, info := range infos {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Index))
			imgui.TableNextColumn()
			if info.Overlay {
				imgui.Text(info.Type + " (overlay)")
			} else {
				imgui.Text(info.Type)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func describeRegistry(entries []engine.Tickable, overlay engine.Overlay) []TickableInfo {
	infos := make([]TickableInfo, len(entries))
	for i, t := range entries {
		infos[i] = TickableInfo{
			Index:   i,
			Type:    fmt.Sprintf("%T", t),
			Overlay: overlay != nil && t == engine.Tickable(overlay),
		}
	}
	return infos
}
