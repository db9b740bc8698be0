package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configures a game Model.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig // Initial size in cells, FPS and seed
	Player  string
	Journal *storage.Journal // Optional
	Sink    audio.Sink       // Optional; nil plays nothing
	Logger  *log.Logger      // Optional
	Clock   flappy.Clock     // Optional; defaults to the wall clock
}

// session holds the state engine hooks write to. Bubble Tea copies the
// model on every update, so hook targets live behind a pointer.
type session struct {
	shake int
	best  int
	runs  int
}

// Model is the Bubble Tea model for one flappy game.
type Model struct {
	engine  *flappy.Engine
	sched   *flappy.FrameScheduler
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	journal *storage.Journal
	player  string
	cues    *audio.Cues
	logger  *log.Logger
	state   *session

	board     RunsBoard
	showBoard bool
	quitting  bool
}

// NewModel creates a model with an idle engine.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	defaults := core.DefaultConfig()
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = defaults.ScreenW, defaults.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = defaults.TickRate
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = flappy.SystemClock{}
	}
	sink := opts.Sink
	if sink == nil {
		sink = audio.Muted()
	}

	sched := flappy.NewFrameScheduler()
	w, h := PlayfieldFor(rt.ScreenW, rt.ScreenH, opts.Config.Viewport)

	m := Model{
		sched:   sched,
		cfg:     opts.Config,
		runtime: rt,
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH-helpRows),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		journal: opts.Journal,
		player:  opts.Player,
		cues:    audio.NewCues(sink),
		logger:  logger,
		state:   &session{},
		board:   NewRunsBoard(opts.Journal, opts.Player, rt.ScreenW, rt.ScreenH),
	}
	m.help.Width = rt.ScreenW

	m.engine = flappy.New(opts.Config,
		flappy.WithClock(clock),
		flappy.WithScheduler(sched),
		flappy.WithSeed(rt.Seed),
		flappy.WithViewport(w, h),
		flappy.WithLogger(logger),
		flappy.WithHooks(m.cues.Hooks()),
		flappy.WithHooks(flappy.Hooks{
			OnCollision: func(flappy.CollisionEvent) { m.state.shake = shakeTicks },
			OnGameOver:  m.recordRun,
			OnRestart:   func(flappy.RestartEvent) { m.state.shake = 0 },
		}),
	)
	m.refreshStats()

	return m
}

// Engine exposes the underlying engine.
func (m Model) Engine() *flappy.Engine { return m.engine }

// recordRun writes a finished game to the journal.
func (m Model) recordRun(ev flappy.GameOverEvent) {
	m.logger.Info("game over", "player", m.player, "score", ev.Score, "collisions", ev.Collisions, "duration", ev.Duration)
	if m.journal == nil {
		return
	}
	_, err := m.journal.Record(storage.Run{
		Player:     m.player,
		Score:      ev.Score,
		Collisions: ev.Collisions,
		Duration:   ev.Duration,
	})
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
		return
	}
	m.refreshStats()
}

func (m Model) refreshStats() {
	if m.journal == nil {
		return
	}
	stats, err := m.journal.PlayerStats(m.player)
	if err != nil {
		m.logger.Warn("could not load runs", "error", err)
		return
	}
	m.state.best = stats.Best
	m.state.runs = stats.Runs
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("flappy")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)

	case tea.KeyMsg:
		if m.showBoard {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wasPlaying := m.engine.Phase() == flappy.PhasePlaying

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.cues.Stop()
		return m, tea.Quit
	case core.ActionJump:
		m.engine.Jump()
	case core.ActionStart:
		m.engine.Start()
	case core.ActionRestart:
		m.engine.Restart()
	case core.ActionRuns:
		if wasPlaying {
			return m, nil
		}
		m.board.Reload()
		m.showBoard = true
		return m, nil
	default:
		return m, nil
	}

	if !wasPlaying && m.sched.Active() {
		return m, frameCmd(m.runtime.TickRate, m.sched.Generation())
	}
	return m, nil
}

// handleFrame fires one engine frame and keeps the loop going while the
// same scheduler generation is active.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if !m.sched.Fire(msg.Gen) {
		return m, nil
	}
	if m.state.shake > 0 {
		m.state.shake--
	}
	if m.sched.Active() && m.sched.Generation() == msg.Gen {
		return m, frameCmd(m.runtime.TickRate, msg.Gen)
	}
	return m, nil
}

// handleResize passes the new terminal size to the engine without
// resetting the game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-helpRows)
	m.help.Width = msg.Width
	m.engine.Resize(PlayfieldFor(msg.Width, msg.Height, m.cfg.Viewport))
	m.board.SetSize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board, cmd := m.board.Update(msg)
	m.board = board
	if board.Quitting() {
		m.quitting = true
		m.cues.Stop()
		return m, tea.Quit
	}
	if board.Closed() {
		m.showBoard = false
		m.board.Reset()
	}
	return m, cmd
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}

	DrawGame(m.screen, m.engine.Snapshot(), m.cfg.Viewport, m.state.shake, Overlay{
		Best: m.state.best,
		Runs: m.state.runs,
	})
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
