package app

import (
	"fmt"
	"os"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calibrate-app/calibrate/internal/config"
	"github.com/calibrate-app/calibrate/internal/question"
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/scoring"
	"github.com/calibrate-app/calibrate/internal/screens/results"
	roundscreen "github.com/calibrate-app/calibrate/internal/screens/round"
)

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Bank.Path = "bank.csv"
	cfg.Round.Size = 3
	cfg.Round.Seed = 1
	cfg.LLM.Timeout = time.Second
	return cfg
}

func testBank(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Category: "Animals",
			Prompt:   fmt.Sprintf("Question %d?", i+1),
			Options:  [2]string{"True", "False"},
		}
	}
	return qs
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func newTestModel(t *testing.T, opts Options) (AppModel, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	if opts.Config == nil {
		opts.Config = testConfig()
	}
	opts.Logger = zap.New(core)
	opts.now = fixedNow
	return newAppModel(opts), logs
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestNewRoundShortensToBank(t *testing.T) {
	m, logs := newTestModel(t, Options{Questions: testBank(2)})

	s, err := m.newRound()
	require.NoError(t, err)
	rs, ok := s.(*roundscreen.RoundScreen)
	require.True(t, ok)
	assert.Equal(t, "Q 1/2", rs.Status())
	assert.Equal(t, 1, logs.FilterMessage("round shortened to fit the bank").Len())
}

func TestNewRoundUnknownCategory(t *testing.T) {
	cfg := testConfig()
	cfg.Round.Category = "Sport"
	m, _ := newTestModel(t, Options{Config: cfg, Questions: testBank(5)})

	_, err := m.newRound()
	assert.ErrorContains(t, err, "Sport")
}

func TestEscapeRouting(t *testing.T) {
	m, _ := newTestModel(t, Options{Questions: testBank(5)})

	_, cmd := update(t, m, esc)
	assert.Nil(t, cmd, "esc on the home screen does nothing")

	s, err := m.newRound()
	require.NoError(t, err)
	m.router.Push(s)

	_, cmd = update(t, m, esc)
	assert.Nil(t, cmd, "the round screen handles esc itself")
	assert.Equal(t, 2, m.router.Depth())

	m.router.Replace(results.New(results.Options{Result: &scoring.Result{Total: 1}}))
	_, cmd = update(t, m, esc)
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func completedRound(t *testing.T) roundscreen.CompletedMsg {
	t.Helper()
	sess, err := round.Start(testBank(2), 2)
	require.NoError(t, err)
	_, err = sess.Submit("True", round.Conf95)
	require.NoError(t, err)
	_, err = sess.Submit("True", round.Conf55)
	require.NoError(t, err)

	res, err := scoring.Evaluate(sess.Submissions())
	require.NoError(t, err)
	return roundscreen.CompletedMsg{SessionID: sess.ID(), Submissions: sess.Submissions(), Result: res}
}

func TestRoundCompletedShowsResults(t *testing.T) {
	dir := t.TempDir()
	m, logs := newTestModel(t, Options{Questions: testBank(5), ExportDir: dir})
	s, _ := m.newRound()
	m.router.Push(s)

	_, cmd := update(t, m, completedRound(t))
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Results", replace.Screen.Title())

	m, _ = update(t, m, replace)
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Results", m.router.Active().Title())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, logs.FilterMessage("round exported").Len())
}

func TestRoundCompletedExportFailureIsReported(t *testing.T) {
	file := t.TempDir() + "/not-a-dir"
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	m, logs := newTestModel(t, Options{Questions: testBank(5), ExportDir: file + "/sub"})
	_, cmd := update(t, m, completedRound(t))
	require.NotNil(t, cmd)
	assert.IsType(t, router.ReplaceScreenMsg{}, cmd())
	assert.Equal(t, 1, logs.FilterMessage("export failed").Len())
}

func TestScoringErrorReturnsHome(t *testing.T) {
	m, logs := newTestModel(t, Options{Questions: testBank(5)})
	_, cmd := update(t, m, roundscreen.CompletedMsg{Err: &scoring.EmptyRoundError{}})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, 1, logs.FilterMessage("scoring round").Len())
}

func TestAbandonedRoundIsNotedOnHome(t *testing.T) {
	m, logs := newTestModel(t, Options{Questions: testBank(5)})
	_, cmd := update(t, m, roundscreen.AbandonedMsg{SessionID: "s1", Answered: 1, Total: 3})
	assert.Nil(t, cmd)

	entries := logs.FilterMessage("round abandoned").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["answered"])
	assert.Contains(t, m.home.View(100, 40), "abandoned after 1 of 3")
}

func TestViewHandlesSizes(t *testing.T) {
	m, _ := newTestModel(t, Options{Questions: testBank(5)})

	v := m.View()
	assert.True(t, v.AltScreen)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.NotNil(t, m.View().Content)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotNil(t, m.View().Content)
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{Questions: testBank(5)})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
