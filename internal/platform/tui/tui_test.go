package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, journal *storage.Journal) (Model, *flappy.ManualClock) {
	t.Helper()
	clock := flappy.NewManualClock(time.Unix(1_700_000_000, 0))
	m := NewModel(Options{
		Config:  config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 26, TickRate: 60, Seed: 7},
		Player:  "tester",
		Journal: journal,
		Clock:   clock,
	})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", keySpace, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"enter", keyEnter, core.ActionStart},
		{"s", runeKey('s'), core.ActionStart},
		{"r", runeKey('r'), core.ActionRestart},
		{"tab", keyTab, core.ActionRuns},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", keyCtrlC, core.ActionQuit},
		{"other", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPlayfieldFor(t *testing.T) {
	vp := config.DefaultFlappyConfig().Viewport
	tests := []struct {
		name       string
		cols, rows int
		wantW      float64
		wantH      float64
	}{
		{"small terminal", 40, 12, 240, 250},
		{"capped", 200, 60, 500, 800},
		{"tiny", 0, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PlayfieldFor(tt.cols, tt.rows, vp)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PlayfieldFor(%d, %d) = %v x %v, want %v x %v", tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestModelJumpStartsFrameLoop(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, keySpace)
	if m.Engine().Phase() != flappy.PhasePlaying {
		t.Fatalf("Phase = %v, want playing", m.Engine().Phase())
	}
	if cmd == nil {
		t.Fatal("starting a game should schedule a frame")
	}
	if v := m.Engine().Snapshot().Bird.Velocity; v != -9 {
		t.Errorf("Velocity = %v, want -9", v)
	}

	// Further flaps don't start a second loop.
	if _, cmd := update(t, m, keySpace); cmd != nil {
		t.Error("flap while playing scheduled another frame loop")
	}
}

func TestModelEnterStartsWithoutImpulse(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, keyEnter)
	if m.Engine().Phase() != flappy.PhasePlaying || cmd == nil {
		t.Fatalf("enter should start the game and schedule a frame")
	}
	if v := m.Engine().Snapshot().Bird.Velocity; v != 0 {
		t.Errorf("Velocity = %v, want 0", v)
	}
}

func TestModelFrameGenerations(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m, _ = update(t, m, keyEnter)
	gen := m.sched.Generation()

	clock.Advance(16670 * time.Microsecond)
	m, cmd := update(t, m, FrameMsg{Gen: gen})
	if cmd == nil {
		t.Fatal("active frame should schedule the next one")
	}
	if pos := m.Engine().Snapshot().Bird.Position; pos <= 0 {
		t.Fatalf("frame did not advance the bird: %v", pos)
	}

	if _, cmd := update(t, m, FrameMsg{Gen: gen + 1}); cmd != nil {
		t.Error("frame from an unknown generation kept the loop alive")
	}
}

func TestModelIdleFramesAreDropped(t *testing.T) {
	m, _ := newTestModel(t, nil)
	before := m.Engine().Snapshot()

	m, cmd := update(t, m, FrameMsg{Gen: m.sched.Generation()})
	if cmd != nil {
		t.Error("idle model scheduled a frame")
	}
	if m.Engine().Snapshot().Bird != before.Bird {
		t.Error("idle frame moved the bird")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, keyEnter)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	s := m.Engine().Snapshot()
	if s.Phase != flappy.PhasePlaying {
		t.Errorf("resize changed phase to %v", s.Phase)
	}
	if s.Field.Width != 360 || s.Field.Height != 450 {
		t.Errorf("Field = %+v, want 360x450", s.Field)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, want 60x19", m.screen.Width(), m.screen.Height())
	}
}

func TestModelPlaysToGameOverAndRecords(t *testing.T) {
	journal, err := storage.OpenJournal(t.Name())
	if err != nil {
		t.Fatalf("OpenJournal() failed: %v", err)
	}
	defer journal.Close()

	m, clock := newTestModel(t, journal)
	m, _ = update(t, m, keyEnter)

	for i := 0; i < 5000 && m.Engine().Phase() == flappy.PhasePlaying; i++ {
		clock.Advance(16670 * time.Microsecond)
		m, _ = update(t, m, FrameMsg{Gen: m.sched.Generation()})
	}
	if m.Engine().Phase() != flappy.PhaseGameOver {
		t.Fatalf("Phase = %v, want game_over", m.Engine().Phase())
	}
	if m.sched.Active() {
		t.Error("frame loop still active after game over")
	}

	if n, _ := journal.Count("tester"); n != 1 {
		t.Errorf("journal runs = %d, want 1", n)
	}
	view := m.View()
	if !strings.Contains(view, "GAME OVER") || !strings.Contains(view, "runs 1") {
		t.Errorf("game over view missing overlay:\n%s", view)
	}

	// Restart goes back to idle; jump starts a fresh loop.
	m, _ = update(t, m, runeKey('r'))
	if m.Engine().Phase() != flappy.PhaseIdle || m.Engine().Lives() != 4 {
		t.Fatalf("after restart phase=%v lives=%d", m.Engine().Phase(), m.Engine().Lives())
	}
	if _, cmd := update(t, m, keySpace); cmd == nil {
		t.Error("jump after restart did not schedule frames")
	}
}

func TestModelRunsBoard(t *testing.T) {
	journal, err := storage.OpenJournal(t.Name())
	if err != nil {
		t.Fatalf("OpenJournal() failed: %v", err)
	}
	defer journal.Close()
	journal.Record(storage.Run{Player: "tester", Score: 12, Collisions: 4, Duration: 9 * time.Second})
	journal.Record(storage.Run{Player: "someone-else", Score: 99})

	m, _ := newTestModel(t, journal)
	m, _ = update(t, m, keyTab)
	if !m.showBoard {
		t.Fatal("tab should open the runs board")
	}
	if m.board.Rows() != 1 {
		t.Errorf("board rows = %d, want 1", m.board.Rows())
	}
	view := m.View()
	if !strings.Contains(view, "RUNS - tester") || !strings.Contains(view, "best 12") {
		t.Errorf("board view:\n%s", view)
	}

	m, _ = update(t, m, keyEsc)
	if m.showBoard {
		t.Error("esc should close the runs board")
	}

	// The board is unavailable mid-game.
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keyTab)
	if m.showBoard {
		t.Error("runs board opened while playing")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestDrawGameIdle(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	e := flappy.New(cfg, flappy.WithSeed(1), flappy.WithViewport(480, 600))
	screen := core.NewScreen(80, 25)

	DrawGame(screen, e.Snapshot(), cfg.Viewport, 0, Overlay{})

	out := screen.String()
	if !strings.Contains(out, "SCORE 0") {
		t.Errorf("HUD missing score:\n%s", out)
	}
	if !strings.Contains(screen.Row(0), "●●●●") {
		t.Errorf("HUD row = %q, want four full lives", screen.Row(0))
	}
	if !strings.Contains(out, "F L A P P Y") {
		t.Error("idle panel missing")
	}
	if !strings.ContainsRune(out, birdChar) {
		t.Error("bird not drawn")
	}
}

func TestDrawGameObstaclesAndLives(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	e := flappy.New(cfg, flappy.WithSeed(1), flappy.WithViewport(480, 600))
	e.Start()
	// Gap rows 4..14 at 25px per row; columns 50..66 at 6px per column.
	e.PlaceObstacle(flappy.ObstacleSpec{X: 300, GapTop: 100})
	e.Advance(0)

	screen := core.NewScreen(80, 25)
	DrawGame(screen, e.Snapshot(), cfg.Viewport, 0, Overlay{})

	if got := screen.GetCell(55, 1); got.Rune != obstacleChar || got.Color != core.ColorGreen {
		t.Errorf("top piece cell = %+v", got)
	}
	if got := screen.GetCell(55, 8); got.Rune == obstacleChar {
		t.Error("gap drawn as obstacle")
	}
	if got := screen.GetCell(55, 20); got.Rune != obstacleChar {
		t.Errorf("bottom piece cell = %+v", got)
	}
}

func TestDrawGameShakeOffsetsPlayfield(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	e := flappy.New(cfg, flappy.WithSeed(1), flappy.WithViewport(480, 600))
	snap := e.Snapshot()

	still := core.NewScreen(80, 25)
	DrawGame(still, snap, cfg.Viewport, 0, Overlay{})
	shaken := core.NewScreen(80, 25)
	DrawGame(shaken, snap, cfg.Viewport, 2, Overlay{})

	// Bird spans columns 8..16 at rest; a shake of 2 moves it one right.
	row := 13
	if still.GetCell(8, row).Rune != birdChar {
		t.Fatalf("bird not at rest position: %q", still.Row(row))
	}
	if shaken.GetCell(8, row).Rune == birdChar && shaken.GetCell(17, row).Rune != birdChar {
		t.Errorf("shake did not move the bird: %q", shaken.Row(row))
	}
	if shaken.GetCell(9, row).Color != core.ColorBrightRed {
		t.Error("bird should flash red while shaking")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestSSHSessionOptions(t *testing.T) {
	srv := &SSHServer{config: DefaultSSHServerConfig(), logger: logging.Discard()}

	opts := srv.sessionOptions("alice", 100, 30)
	if opts.Player != "alice" || opts.Runtime.ScreenW != 100 || opts.Runtime.ScreenH != 30 {
		t.Errorf("options = %+v", opts)
	}
	if out, ok := opts.Sink.(*audio.Output); !ok || out.Enabled() {
		t.Error("remote sessions must be muted")
	}
	m := NewModel(opts)
	if m.Engine().Phase() != flappy.PhaseIdle {
		t.Error("session model should start idle")
	}
}
