package ui

import (
	"context"
	"image/color"
	"strings"
	"sync"
	"time"

	"TraceBoard/internal/character"
	"TraceBoard/internal/settings"
	"TraceBoard/internal/trace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/kataras/golog"
)

var logger = golog.Child("[ui]")

const (
	loadFailedMessage = "キャラクターの読み込みに失敗しました"
	loadingMessage    = "読み込み中..."
)

// Observer is told what the child is currently tracing.
type Observer interface {
	ShowCharacter(c character.Character)
	ShowText(text string)
}

type Options struct {
	Provider    *character.Provider
	Settings    *settings.Settings
	Surface     *trace.Surface
	StrokeWidth float32
	// Scale is device pixels per Fyne unit; 0 asks the window.
	Scale        float32
	ImageTimeout time.Duration
	ExportDir    string
	ExportFont   string
	Observer     Observer
	Status       string
}

// Host is the tracing window: character display, guide text with the drawing
// layer on top, and the controls.
type Host struct {
	opts     Options
	window   fyne.Window
	provider *character.Provider
	settings *settings.Settings
	board    *TraceWidget
	images   *imageLoader

	mu          sync.Mutex
	current     *character.Character
	displayText string
	loads       int    // fetches in flight
	idleStatus  string // status bar text when nothing is loading

	glyph    *canvas.Text
	picture  *canvas.Image
	guide    *canvas.Text
	tracing  *fyne.Container
	errLabel *widget.Label
	status   *widget.Label
	next     *widget.Button
	sources  *widget.Select
}

func NewHost(a fyne.App, opts Options) *Host {
	if opts.Surface == nil {
		opts.Surface = trace.NewSurface()
	}
	if opts.Provider == nil {
		opts.Provider = character.Default()
	}
	if opts.Settings == nil {
		opts.Settings = settings.New(a.Preferences())
	}

	h := &Host{
		opts:       opts,
		window:     a.NewWindow("文字なぞり練習"),
		provider:   opts.Provider,
		settings:   opts.Settings,
		board:      NewTraceWidget(opts.Surface, opts.StrokeWidth),
		images:     newImageLoader(opts.ImageTimeout),
		errLabel:   widget.NewLabel(""),
		idleStatus: "Ready",
	}
	if opts.Status != "" {
		h.idleStatus = opts.Status
	}
	h.status = widget.NewLabel(h.idleStatus)
	h.errLabel.Importance = widget.DangerImportance
	h.errLabel.Hide()

	h.glyph = canvas.NewText("", color.Black)
	h.glyph.TextSize = 96
	h.glyph.Alignment = fyne.TextAlignCenter
	h.picture = canvas.NewImageFromResource(nil)
	h.picture.FillMode = canvas.ImageFillContain
	h.picture.SetMinSize(fyne.NewSize(120, 120))
	h.picture.Hide()

	h.guide = canvas.NewText("", color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	h.guide.TextSize = 96
	h.guide.Alignment = fyne.TextAlignCenter
	h.tracing = container.NewStack(container.NewCenter(h.guide), h.board)

	h.settings.Apply(h.provider)
	controls := NewControls(h)

	display := container.NewStack(container.NewCenter(h.glyph), container.NewCenter(h.picture))
	content := container.NewBorder(
		container.NewVBox(display, h.errLabel),
		container.NewVBox(controls, h.status),
		nil, nil,
		h.tracing,
	)
	h.window.SetContent(content)
	h.window.Resize(fyne.NewSize(1024, 768))
	return h
}

func (h *Host) Window() fyne.Window            { return h.window }
func (h *Host) Board() *TraceWidget            { return h.board }
func (h *Host) Provider() *character.Provider { return h.provider }

func (h *Host) DisplayText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.displayText
}

// Character returns the character on screen, if free text is not showing.
func (h *Host) Character() (character.Character, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return character.Character{}, false
	}
	return *h.current, true
}

func (h *Host) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads > 0
}

// SetStatus sets the status bar text shown whenever no load is running.
func (h *Host) SetStatus(text string) {
	h.mu.Lock()
	h.idleStatus = text
	busy := h.loads > 0
	h.mu.Unlock()
	if !busy {
		h.status.SetText(text)
	}
}

// setLoading counts fetches in and out. Next stays disabled and the status
// bar says so until the last overlapping fetch is done.
func (h *Host) setLoading(on bool) {
	h.mu.Lock()
	if on {
		h.loads++
	} else if h.loads > 0 {
		h.loads--
	}
	busy := h.loads > 0
	idle := h.idleStatus
	h.mu.Unlock()

	if busy {
		h.status.SetText(loadingMessage)
	} else {
		h.status.SetText(idle)
	}
	if h.next == nil {
		return
	}
	if busy {
		h.next.Disable()
	} else {
		h.next.Enable()
	}
}

// LoadRandom fetches a character in the background. Overlapping loads are
// not cancelled; whichever finishes last is what stays on screen.
func (h *Host) LoadRandom() {
	h.setLoading(true)
	h.errLabel.Hide()
	go func() {
		c, err := h.provider.Random(context.Background())
		var res fyne.Resource
		if err == nil && c.Image.IsURL() {
			var imgErr error
			res, imgErr = h.images.Load(context.Background(), c.Image.Value())
			if imgErr != nil {
				logger.Warnf("Failed to load image for %s: %v", c.ID, imgErr)
			}
		}
		fyne.Do(func() {
			h.applyResult(c, res, err)
		})
	}()
}

func (h *Host) applyResult(c character.Character, res fyne.Resource, err error) {
	h.setLoading(false)
	if err != nil {
		logger.Errorf("Failed to load character: %v", err)
		h.errLabel.SetText(loadFailedMessage + ": " + character.UserMessage(err))
		h.errLabel.Show()
		return
	}
	h.errLabel.Hide()

	h.mu.Lock()
	h.current = &c
	h.displayText = c.Name
	h.mu.Unlock()

	h.showImage(c, res)
	h.guide.Text = c.Name
	h.guide.Refresh()
	if h.opts.Observer != nil {
		h.opts.Observer.ShowCharacter(c)
	}
}

func (h *Host) showImage(c character.Character, res fyne.Resource) {
	switch {
	case c.Image.Kind() == character.KindURL && res != nil:
		h.picture.Resource = res
		h.picture.Refresh()
		h.picture.Show()
		h.glyph.Hide()
	case c.Image.Kind() == character.KindURL:
		// picture could not be fetched; the name is still traceable
		h.picture.Hide()
		h.glyph.Text = "?"
		h.glyph.Refresh()
		h.glyph.Show()
	default:
		h.picture.Hide()
		h.glyph.Text = c.Image.Value()
		h.glyph.Refresh()
		h.glyph.Show()
	}
}

func (h *Host) canSubmit(text string) bool {
	return strings.TrimSpace(text) != ""
}

// SubmitText shows free text instead of a character. Blank input is ignored.
func (h *Host) SubmitText(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	h.mu.Lock()
	h.current = nil
	h.displayText = text
	h.mu.Unlock()

	h.glyph.Hide()
	h.picture.Hide()
	h.guide.Text = text
	h.guide.Refresh()
	if h.opts.Observer != nil {
		h.opts.Observer.ShowText(text)
	}
	return true
}

// Next clears the ink and loads another character.
func (h *Host) Next() {
	h.board.Clear()
	h.LoadRandom()
}

// SelectSource switches data source, remembers it and loads a character.
// Unknown names leave everything as it was.
func (h *Host) SelectSource(name string) {
	if !h.provider.SelectSource(name) {
		logger.Warnf("Ignoring unknown data source %q", name)
		return
	}
	h.settings.SetDataSource(name)
	h.board.Clear()
	h.LoadRandom()
}

func (h *Host) Clear() {
	h.board.Clear()
}

// RunApp shows the host window and blocks until it is closed.
func RunApp(a fyne.App, opts Options) {
	h := NewHost(a, opts)
	if opts.Scale == 0 {
		h.board.SetScale(h.window.Canvas().Scale())
	} else {
		h.board.SetScale(opts.Scale)
	}
	h.LoadRandom()
	h.window.ShowAndRun()
}
