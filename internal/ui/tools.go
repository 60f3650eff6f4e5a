package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewControls builds the control rows under the tracing area and wires
// them to h.
func NewControls(h *Host) fyne.CanvasObject {
	// --- Data source picker, labelled by description ---
	infos := h.provider.ListSources()
	names := make(map[string]string, len(infos))
	options := make([]string, 0, len(infos))
	selected := ""
	for _, info := range infos {
		names[info.Description] = info.Name
		options = append(options, info.Description)
		if info.Name == h.provider.Active() {
			selected = info.Description
		}
	}
	h.sources = widget.NewSelect(options, nil)
	h.sources.SetSelected(selected)
	h.sources.OnChanged = func(desc string) {
		h.SelectSource(names[desc])
	}

	h.next = widget.NewButtonWithIcon("つぎへ", theme.NavigateNextIcon(), h.Next)
	h.next.Importance = widget.HighImportance

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentClearIcon(), h.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			path, err := h.Export()
			if err != nil {
				logger.Errorf("Export failed: %v", err)
				h.SetStatus("Error exporting worksheet")
				return
			}
			h.SetStatus("Saved " + path)
		}),
	)

	// --- Free text ---
	entry := widget.NewEntry()
	entry.SetPlaceHolder("なぞりたい文字を入力してね")
	submit := widget.NewButton("文字を表示", func() {
		h.SubmitText(entry.Text)
	})
	submit.Disable()
	entry.OnChanged = func(s string) {
		if h.canSubmit(s) {
			submit.Enable()
		} else {
			submit.Disable()
		}
	}
	entry.OnSubmitted = func(s string) {
		h.SubmitText(s)
	}

	sourceRow := container.NewHBox(
		widget.NewLabel("キャラクター:"),
		h.sources,
		widget.NewSeparator(),
		h.next,
		layout.NewSpacer(),
		tb,
	)
	textRow := container.NewBorder(nil, nil,
		widget.NewLabel("好きな文字を入力してなぞろう！"), submit,
		entry,
	)
	return container.NewVBox(sourceRow, textRow)
}
