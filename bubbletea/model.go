package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yasmin-chat/yasmin"
	yasminjson "github.com/yasmin-chat/yasmin/json"
	"github.com/yasmin-chat/yasmin/probe"
)

var _ tea.Model = Model{}

// presenceInterval is how often the status line re-reads reachability
// when no transition channel is wired.
const presenceInterval = 5 * time.Second

// Config carries display settings and capabilities the controller does
// not own.
type Config struct {
	// ModelName is shown in the status line; empty means the service
	// default.
	ModelName string
	// ExportDir receives transcript exports.
	ExportDir string
	// Recognizer enables voice input when available. Nil means no
	// microphone key.
	Recognizer yasmin.Recognizer
	// Presence delivers reachability transitions from the monitor. Nil
	// falls back to polling the controller on a timer.
	Presence <-chan probe.Event
}

// Model is the Bubble Tea model for the yasmin TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable thread area. Exported for test access.
	Viewport viewport.Model

	ctl    *yasmin.Controller
	ctx    context.Context
	cfg    Config
	theme  yasmin.Theme
	styles Styles

	spinner spinner.Model
	picker  pickerState

	blocks  []MessageBlock
	running bool
	online  bool
	notice  string
	err     error
	ready   bool
	width   int
	height  int
}

// pickerState wraps the conversation picker overlay.
type pickerState struct {
	list    list.Model
	visible bool
}

// New creates a TUI model over the given controller.
func New(ctl *yasmin.Controller, cfg Config) Model {
	theme := yasmin.ThemeByName(ctl.Prefs().Theme)

	ti := textinput.New()
	ti.Placeholder = "اكتب رسالتك..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		Input:   ti,
		ctl:     ctl,
		cfg:     cfg,
		theme:   theme,
		styles:  NewStyles(theme),
		spinner: sp,
		picker:  pickerState{list: newPicker()},
		online:  ctl.Online(),
	}
	return m.rebuildThread(ctl.Store().Active(), false)
}

// Running returns whether an exchange is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refreshCmd(), m.presenceCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		if m.picker.visible {
			return m.handlePickerKey(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PresenceMsg:
		m.online = msg.Online
		return m, m.presenceCmd()

	case ExchangeDoneMsg:
		return m.handleExchangeDone(msg)

	case ConversationLoadedMsg:
		return m.handleConversationLoaded(msg)

	case SummariesMsg:
		if msg.Err != nil {
			// Non-fatal: the picker shows whatever the store already has.
			m.notice = "تعذر تحميل قائمة المحادثات"
			msg.List = m.ctl.Store().Summaries()
		}
		m.picker.list.SetItems(pickerItems(msg.List))
		return m, nil

	case DeleteDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "تم حذف المحادثة"
		m = m.rebuildThread(m.ctl.Store().Active(), false)
		return m, m.refreshCmd()

	case ExportDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "تم حفظ النسخة في " + msg.Path
		return m, nil

	case TranscriptMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.notice = ""
		m.Input.SetValue(msg.Text)
		m.Input.CursorEnd()
		return m, nil
	}

	// Pass remaining messages to sub-components. The viewport always
	// receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running && !m.picker.visible {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "..."
	}
	if m.picker.visible {
		return m.picker.list.View() + "\n" + m.statusLine()
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	inputH := 1
	statusH := 1
	borderH := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusH - borderH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	m.picker.list.SetSize(msg.Width, msg.Height-statusH-1)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlR:
		if m.running {
			return m, nil
		}
		return m.startRegenerate()

	case tea.KeyCtrlN:
		if m.running {
			return m, nil
		}
		m.ctl.NewChat()
		m.err = nil
		m.notice = ""
		m = m.rebuildThread(m.ctl.Store().Active(), false)
		return m, nil

	case tea.KeyCtrlP:
		if m.running {
			return m, nil
		}
		m.picker.visible = true
		return m, m.refreshCmd()

	case tea.KeyCtrlD:
		if m.running {
			return m, nil
		}
		id := m.ctl.Store().ActiveID()
		if id == "" {
			m.notice = "لا يمكن حذف محادثة غير محفوظة"
			return m, nil
		}
		return m, m.deleteCmd(id)

	case tea.KeyCtrlE:
		return m, m.exportCmd()

	case tea.KeyCtrlS:
		p := m.ctl.Prefs()
		p.Speech = !p.Speech
		m.ctl.SetPrefs(p)
		if p.Speech {
			m.notice = "نطق الردود: مفعّل"
		} else {
			m.notice = "نطق الردود: متوقف"
		}
		return m, nil

	case tea.KeyCtrlT:
		return m.toggleTheme(), nil

	case tea.KeyCtrlG:
		if m.running || m.cfg.Recognizer == nil || !m.cfg.Recognizer.Available() {
			return m, nil
		}
		m.notice = "جارٍ الاستماع..."
		return m, m.listenCmd()
	}

	// When idle, pass keys to both input (for typing) and viewport (for
	// scrolling). Only forward non-character keys to the viewport to
	// avoid conflicts (e.g. 'j'/'k' are viewport scroll AND text).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.picker.visible = false
		return m, nil

	case tea.KeyEnter:
		sum, ok := selectedSummary(m.picker.list)
		if !ok {
			return m, nil
		}
		m.picker.visible = false
		return m, m.loadCmd(sum.ID)

	case tea.KeyCtrlD:
		sum, ok := selectedSummary(m.picker.list)
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(sum.ID)
	}

	var cmd tea.Cmd
	m.picker.list, cmd = m.picker.list.Update(msg)
	return m, cmd
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.notice = ""
	m.running = true

	// The controller appends the user message on its own goroutine; show
	// it immediately so the echo does not wait on the network.
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
}

func (m Model) startRegenerate() (tea.Model, tea.Cmd) {
	conv := m.ctl.Store().Active()
	if conv.LastConfirmedAssistant() < 0 {
		m.notice = "لا يوجد رد لإعادة توليده"
		return m, nil
	}
	m.err = nil
	m.notice = ""
	m.running = true
	return m, tea.Batch(m.regenerateCmd(), m.spinner.Tick)
}

func (m Model) handleExchangeDone(msg ExchangeDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false
	offline := msg.Result != nil && msg.Result.Offline
	if msg.Err != nil && !errors.Is(msg.Err, yasmin.ErrEmptyMessage) {
		m.err = msg.Err
	}
	m = m.rebuildThread(m.ctl.Store().Active(), offline)
	cmd := m.Input.Focus()
	return m, cmd
}

func (m Model) handleConversationLoaded(msg ConversationLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, yasmin.ErrConversationNotFound) {
			// The stale entry was evicted and a fresh thread is already
			// active; tell the user rather than erroring.
			m.notice = "المحادثة لم تعد موجودة، بدأنا محادثة جديدة"
			m.err = nil
			m = m.rebuildThread(m.ctl.Store().Active(), false)
			return m, m.refreshCmd()
		}
		m.err = msg.Err
		return m, nil
	}
	m.err = nil
	m.notice = ""
	m = m.rebuildThread(msg.Conversation, false)
	return m, nil
}

// toggleTheme flips dark/light, rebuilds the styles, and re-renders the
// thread under them.
func (m Model) toggleTheme() Model {
	p := m.ctl.Prefs()
	if p.Theme == "light" {
		p.Theme = "dark"
	} else {
		p.Theme = "light"
	}
	m.ctl.SetPrefs(p)
	m.theme = yasmin.ThemeByName(p.Theme)
	m.styles = NewStyles(m.theme)
	return m.rebuildThread(m.ctl.Store().Active(), false)
}

// rebuildThread rebuilds the block list from a conversation snapshot.
// offlineLast marks the trailing assistant reply as a canned fallback;
// history fetched from the service never carries that flag.
func (m Model) rebuildThread(conv *yasmin.Conversation, offlineLast bool) Model {
	last := conv.LastAssistant()
	blocks := make([]MessageBlock, 0, len(conv.Messages))
	for i, msg := range conv.Messages {
		switch msg.Role {
		case yasmin.RoleUser:
			blocks = append(blocks, NewUserMessageBlock(msg.Content, m.styles))
		case yasmin.RoleAssistant:
			blocks = append(blocks, NewAssistantBlock(msg.Content, offlineLast && i == last, m.theme, m.styles))
		case yasmin.RoleError:
			blocks = append(blocks, NewErrorBlock(msg.Content, m.styles))
		}
	}
	m.blocks = blocks
	if m.ready {
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return m.styles.Muted.Render("ياسمين — مساعدتك الذكية. اكتب رسالة للبدء.")
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	var parts []string
	if m.online {
		parts = append(parts, m.styles.Success.Render("● متصل"))
	} else {
		parts = append(parts, m.styles.Offline.Render("○ غير متصل"))
	}
	name := m.cfg.ModelName
	if model := m.ctl.Prefs().Model; model != "" {
		name = model
	}
	if name == "" {
		name = "النموذج الافتراضي"
	}
	parts = append(parts, m.styles.Muted.Render(name))
	if m.ctl.Prefs().Speech {
		parts = append(parts, m.styles.Accent.Render("🔊"))
	}

	switch {
	case m.running:
		parts = append(parts, m.spinner.View()+m.styles.Muted.Render("جارٍ التوليد..."))
	case m.err != nil:
		parts = append(parts, m.styles.Error.Render(fmt.Sprintf("خطأ: %v", m.err)))
	case m.notice != "":
		parts = append(parts, m.styles.Muted.Render(m.notice))
	default:
		parts = append(parts, m.styles.Muted.Render("Enter إرسال · ^R إعادة توليد · ^N جديدة · ^P القائمة · ^C خروج"))
	}
	return fitWidth(strings.Join(parts, "  "), m.width)
}

// commandContext is the context command goroutines run under: the
// program context set by Run, or Background when the model was built
// without one (tests drive Update directly).
func (m Model) commandContext() context.Context {
	if m.ctx != nil {
		return m.ctx
	}
	return context.Background()
}

func (m Model) sendCmd(text string) tea.Cmd {
	ctl, ctx := m.ctl, m.commandContext()
	return func() tea.Msg {
		res, err := ctl.Send(ctx, text)
		return ExchangeDoneMsg{Result: res, Err: err}
	}
}

func (m Model) regenerateCmd() tea.Cmd {
	ctl, ctx := m.ctl, m.commandContext()
	return func() tea.Msg {
		res, err := ctl.Regenerate(ctx)
		return ExchangeDoneMsg{Result: res, Err: err}
	}
}

func (m Model) loadCmd(id string) tea.Cmd {
	ctl, ctx := m.ctl, m.commandContext()
	return func() tea.Msg {
		conv, err := ctl.Load(ctx, id)
		return ConversationLoadedMsg{Conversation: conv, Err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctl, ctx := m.ctl, m.commandContext()
	return func() tea.Msg {
		list, err := ctl.Refresh(ctx)
		return SummariesMsg{List: list, Err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctl, ctx := m.ctl, m.commandContext()
	return func() tea.Msg {
		return DeleteDoneMsg{ID: id, Err: ctl.Delete(ctx, id)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	ctl, dir := m.ctl, m.cfg.ExportDir
	return func() tea.Msg {
		conv := ctl.Store().Active()
		if len(conv.Messages) == 0 {
			return ExportDoneMsg{Err: errors.New("لا توجد رسائل للتصدير")}
		}
		name := conv.ID
		if name == "" {
			name = time.Now().Format("20060102-150405")
		}
		path := filepath.Join(dir, name+".json")
		if err := yasminjson.Save(path, conv); err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

func (m Model) listenCmd() tea.Cmd {
	rec, ctx := m.cfg.Recognizer, m.commandContext()
	return func() tea.Msg {
		text, err := rec.Listen(ctx)
		return TranscriptMsg{Text: text, Err: err}
	}
}

// presenceCmd returns the next reachability reading: a blocking wait on
// the monitor's transition channel when one is wired, so the status line
// flips the moment the service comes back, with a timed poll of the
// controller as the fallback.
func (m Model) presenceCmd() tea.Cmd {
	if events := m.cfg.Presence; events != nil {
		return func() tea.Msg {
			ev, ok := <-events
			if !ok {
				return nil
			}
			return PresenceMsg{Online: ev.Online}
		}
	}
	ctl := m.ctl
	return tea.Tick(presenceInterval, func(time.Time) tea.Msg {
		return PresenceMsg{Online: ctl.Online()}
	})
}
