package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickloop/engine"
)

type ResourceInfo struct {
	Kind   engine.Kind
	Name   string
	File   string
	Detail string
}

type resourceBrowserCache struct {
	resources     []ResourceInfo
	lastCount     int
	sortColumn    int
	sortAscending bool
}

// ResourceBrowser lists the engine's loaded resources. Sounds can be played
// from the table.
type ResourceBrowser struct {
	engine     *engine.Engine
	cache      *resourceBrowserCache
	filterText string
	selected   string
}

func NewResourceBrowser(e *engine.Engine) *ResourceBrowser {
	return &ResourceBrowser{
		engine: e,
		cache: &resourceBrowserCache{
			lastCount:     -1,
			sortAscending: true,
		},
	}
}

func (rb *ResourceBrowser) Render() {
	if !imgui.BeginV("Resources", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rb.rebuildCacheIfNeeded()

	imgui.InputTextWithHint("##search", "Search...", &rb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		rb.filterText = ""
	}

	filtered := filterResources(rb.cache.resources, rb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ResourceTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("File")
		imgui.TableSetupColumn("Detail")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			rb.cache.sortColumn = int(spec.ColumnIndex())
			rb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortResources(rb.cache.resources, rb.cache.sortColumn, rb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, res := range filtered {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(res.Kind.String())

			imgui.TableNextColumn()
			key := res.Kind.String() + "/" + res.Name
			if imgui.SelectableBoolV(res.Name, rb.selected == key, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				rb.selected = key
			}

			imgui.TableNextColumn()
			imgui.Text(res.File)

			imgui.TableNextColumn()
			imgui.Text(res.Detail)
		}

		imgui.EndTable()
	}

	if kind, name, ok := strings.Cut(rb.selected, "/"); ok && kind == engine.KindSound.String() {
		if imgui.Button("Play " + name) {
			_ = rb.engine.PlaySound(name)
		}
		imgui.SameLine()
	}
	imgui.Text(fmt.Sprintf("Total: %d resources", len(filtered)))

	imgui.End()
}

// rebuildCacheIfNeeded refreshes the rows when resources were added or
// removed. Sprite details such as the frame index are refreshed every frame.
func (rb *ResourceBrowser) rebuildCacheIfNeeded() {
	all := rb.engine.Resources().All()
	if len(all) != rb.cache.lastCount {
		rb.cache.lastCount = len(all)
		rb.cache.resources = describeResources(all)
		sortResources(rb.cache.resources, rb.cache.sortColumn, rb.cache.sortAscending)
		return
	}
	details := make(map[string]string, len(all))
	for _, info := range describeResources(all) {
		details[info.File] = info.Detail
	}
	for i := range rb.cache.resources {
		rb.cache.resources[i].Detail = details[rb.cache.resources[i].File]
	}
}

func describeResources(all []engine.Resource) []ResourceInfo {
	infos := make([]ResourceInfo, 0, len(all))
	for _, res := range all {
		info := ResourceInfo{Kind: res.Kind(), Name: res.Name(), File: res.File()}
		switch res := res.(type) {
		case *engine.Sprite:
			info.Detail = fmt.Sprintf("frame %d/%d speed %.2f", res.FrameIndex()+1, res.FrameCount(), res.AnimationSpeed())
		case *engine.Sound:
			info.Detail = fmt.Sprintf("volume %.2f", res.Volume())
			if !res.Initialized() {
				info.Detail += " (not decoded)"
			}
		case *engine.Music:
			if res.Playing() {
				info.Detail = "playing"
			} else {
				info.Detail = "stopped"
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func sortResources(resources []ResourceInfo, column int, ascending bool) {
	sort.SliceStable(resources, func(i, j int) bool {
		a, b := resources[i], resources[j]
		var less bool

		switch column {
		case 0:
			less = a.Kind < b.Kind
		case 2:
			less = a.File < b.File
		case 3:
			less = a.Detail < b.Detail
		default:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}

		if !ascending {
			return !less
		}
		return less
	})
}

func filterResources(resources []ResourceInfo, filter string) []ResourceInfo {
	if filter == "" {
		return resources
	}

	filtered := make([]ResourceInfo, 0, len(resources))
	filterLower := strings.ToLower(filter)
	for _, res := range resources {
		if strings.Contains(strings.ToLower(res.Name), filterLower) ||
			strings.Contains(res.Kind.String(), filterLower) ||
			strings.Contains(strings.ToLower(res.File), filterLower) {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
