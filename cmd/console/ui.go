package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
	"github.com/jwebster45206/legacy-engine/pkg/generation"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/muesli/reflow/wordwrap"
)

const (
	PlaceHolderText = "What do you do? (try: look, north, talk to elder)"
	historyShown    = 5
)

type entryKind int

const (
	entryPlayer entryKind = iota
	entryGame
	entryFailure
	entryNote
)

type transcriptEntry struct {
	kind entryKind
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *world.GameState
	transcript   []transcriptEntry
	lastResponse string
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type commandResultMsg struct {
	result *engine.CommandResult
	err    error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	placeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Underline(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, gs *world.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		config:       cfg,
		client:       client,
		gameState:    gs,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	if gs != nil && gs.CurrentLocation != nil {
		m.lastResponse = fmt.Sprintf("%s\n\n%s", gs.CurrentLocation.Name, gs.CurrentLocation.Description)
		m.transcript = append(m.transcript, transcriptEntry{kind: entryGame, text: m.lastResponse})
	}
	return m
}

// renderMarkup styles *items*, **characters** and ***places***.
func renderMarkup(text string) string {
	return generation.RenderMarkup(text, func(kind generation.MarkupKind, name string) string {
		switch kind {
		case generation.MarkupPlace:
			return placeStyle.Render(name)
		case generation.MarkupNPC:
			return speakerStyle.Render(name)
		default:
			return itemStyle.Render(name)
		}
	})
}

// formatResponse wraps a game message and highlights a leading "speaker:".
func formatResponse(text string, width int) string {
	if width < 10 {
		width = 10
	}

	wrapped := wordwrap.String(text, width)
	lines := strings.Split(wrapped, "\n")
	if idx := strings.Index(lines[0], ":"); idx > 0 && idx <= 24 && len(strings.Fields(lines[0][:idx])) <= 3 {
		lines[0] = speakerStyle.Render(lines[0][:idx+1]) + renderMarkup(lines[0][idx+1:])
		for i := 1; i < len(lines); i++ {
			lines[i] = renderMarkup(lines[i])
		}
		return strings.Join(lines, "\n")
	}
	return renderMarkup(wrapped)
}

func writeMetadata(gs *world.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	if gs == nil || gs.Player == nil {
		content.WriteString("No game state loaded\n")
		return content.String()
	}

	p := gs.Player
	content.WriteString("Player:\n")
	content.WriteString(p.Name + "\n\n")

	content.WriteString("Location:\n")
	if gs.CurrentLocation != nil {
		content.WriteString(gs.CurrentLocation.Name + "\n")
	}
	content.WriteString(p.Location.String() + "\n\n")

	if gs.CurrentLocation != nil {
		if len(gs.CurrentLocation.Objects) > 0 {
			content.WriteString("You see:\n")
			for _, o := range gs.CurrentLocation.Objects {
				content.WriteString("• " + o + "\n")
			}
			content.WriteString("\n")
		}
		if len(gs.CurrentLocation.NPCs) > 0 {
			content.WriteString("People here:\n")
			for _, n := range gs.CurrentLocation.NPCs {
				content.WriteString("• " + n + "\n")
			}
			content.WriteString("\n")
		}
	}

	content.WriteString("Inventory:\n")
	if p.Inventory.Len() == 0 {
		content.WriteString("Empty\n\n")
	} else {
		for _, s := range p.Inventory.Stacks() {
			content.WriteString(fmt.Sprintf("• %s x%d\n", s.Name, s.Count))
		}
		content.WriteString("\n")
	}

	if len(p.Stats) > 0 {
		content.WriteString("Stats:\n")
		for _, k := range []string{"health", "level"} {
			if v, ok := p.Stats[k]; ok {
				content.WriteString(fmt.Sprintf("• %s: %d\n", k, v))
			}
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /history: Journey\n")
	content.WriteString("• /copy: Copy last reply\n")

	return content.String()
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("LEGACY") + "\n\n")
	content.WriteString("The world remembers what you do. Type a command below.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryPlayer:
			content.WriteString(userStyle.Render("> ") + wordwrap.String(e.text, chatWidth-2) + "\n\n")
		case entryGame:
			content.WriteString(formatResponse(e.text, chatWidth) + "\n\n")
		case entryFailure:
			content.WriteString(errorStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		case entryNote:
			content.WriteString(noteStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.gameState))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.loading = true
			m.progressTick = 0
			m.transcript = append(m.transcript, transcriptEntry{kind: entryPlayer, text: input})
			m.writeChatContent()

			return m, tea.Batch(m.sendCommand(input), progressTick())
		}

	case commandResultMsg:
		m.loading = false
		switch {
		case msg.err != nil:
			m.transcript = append(m.transcript, transcriptEntry{kind: entryFailure, text: "Error: " + msg.err.Error()})
		case msg.result.Success:
			m.lastResponse = msg.result.Message
			m.transcript = append(m.transcript, transcriptEntry{kind: entryGame, text: msg.result.Message})
		default:
			m.lastResponse = msg.result.Message
			m.transcript = append(m.transcript, transcriptEntry{kind: entryFailure, text: msg.result.Message})
		}
		if msg.err == nil && msg.result.GameState != nil {
			m.gameState = msg.result.GameState
			m.metaViewport.SetContent(writeMetadata(m.gameState))
		}
		m.writeChatContent()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		m.transcript = append(m.transcript, transcriptEntry{kind: entryNote, text: `Console commands:
/help     Show this help
/history  Show your recent journey
/copy     Copy the last reply to the clipboard
Ctrl+C    Quit

Type "help" (no slash) for the game's own command list.`})

	case "/history":
		var text strings.Builder
		text.WriteString("Your journey so far:\n")
		if m.gameState == nil || m.gameState.Player == nil || len(m.gameState.Player.History) == 0 {
			text.WriteString("Nothing yet.")
		} else {
			for _, h := range m.gameState.Player.RecentHistory(historyShown) {
				text.WriteString("• " + h + "\n")
			}
		}
		m.transcript = append(m.transcript, transcriptEntry{kind: entryNote, text: strings.TrimRight(text.String(), "\n")})

	case "/copy":
		if m.lastResponse == "" {
			m.transcript = append(m.transcript, transcriptEntry{kind: entryNote, text: "Nothing to copy yet."})
			break
		}
		if err := clipboard.WriteAll(m.lastResponse); err != nil {
			m.transcript = append(m.transcript, transcriptEntry{kind: entryFailure, text: "Copy failed: " + err.Error()})
			break
		}
		m.transcript = append(m.transcript, transcriptEntry{kind: entryNote, text: "Copied the last reply to the clipboard."})

	default:
		m.transcript = append(m.transcript, transcriptEntry{kind: entryFailure, text: fmt.Sprintf("Unknown console command %s (try /help)", input)})
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) sendCommand(input string) tea.Cmd {
	return func() tea.Msg {
		result, err := sendCommand(m.client, m.config.APIBaseURL, m.config.PlayerName, input)
		return commandResultMsg{result, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved. The world will remember you.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
