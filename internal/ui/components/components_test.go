package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/calibrate-app/calibrate/internal/round"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestOptionPicker(t *testing.T) {
	p := NewOptionPicker([2]string{"Nile", "Amazon"})
	if p.Chosen() != "" {
		t.Fatalf("new picker chose %q, want nothing", p.Chosen())
	}

	tests := []struct {
		key  string
		want string
	}{
		{"down", "Amazon"},
		{"up", "Nile"},
		{"2", "Amazon"},
		{"a", "Nile"},
		{"b", "Amazon"},
		{"1", "Nile"},
	}
	for _, tc := range tests {
		var handled bool
		p, handled = p.Update(key(tc.key))
		if !handled {
			t.Errorf("key %q not handled", tc.key)
		}
		if p.Chosen() != tc.want {
			t.Errorf("after %q chosen = %q, want %q", tc.key, p.Chosen(), tc.want)
		}
	}

	if _, handled := p.Update(key("7")); handled {
		t.Error("digit 7 belongs to the confidence picker")
	}
}

func TestOptionPickerView(t *testing.T) {
	p := OptionPicker{Options: [2]string{"Nile", "Amazon"}, Selected: 1}
	out := p.View(-1)
	if !strings.Contains(out, "A)  Nile") || !strings.Contains(out, "B)  Amazon") {
		t.Errorf("view missing options:\n%s", out)
	}
	if !strings.Contains(out, "●  B)") {
		t.Errorf("selected option not marked:\n%s", out)
	}
}

func TestConfidencePickerStartsUnset(t *testing.T) {
	var c ConfidencePicker
	if c.Value.IsSet() {
		t.Fatalf("zero picker value = %v, want unset", c.Value)
	}

	c, _ = c.Update(key("right"))
	if c.Value != round.Conf55 {
		t.Errorf("first arrow from unset = %v, want 55%%", c.Value)
	}

	var d ConfidencePicker
	d, _ = d.Update(key("left"))
	if d.Value != round.Conf55 {
		t.Errorf("left from unset = %v, want 55%%", d.Value)
	}
}

func TestConfidencePickerKeys(t *testing.T) {
	var c ConfidencePicker

	c, _ = c.Update(key("8"))
	if c.Value != round.Conf85 {
		t.Fatalf("8 -> %v, want 85%%", c.Value)
	}
	c, _ = c.Update(key("right"))
	c, _ = c.Update(key("right"))
	if c.Value != round.Conf95 {
		t.Errorf("right clamps at 95%%, got %v", c.Value)
	}
	c, _ = c.Update(key("h"))
	if c.Value != round.Conf85 {
		t.Errorf("h -> %v, want 85%%", c.Value)
	}
	c, _ = c.Update(key("5"))
	c, _ = c.Update(key("left"))
	if c.Value != round.Conf55 {
		t.Errorf("left clamps at 55%%, got %v", c.Value)
	}

	if _, handled := c.Update(key("a")); handled {
		t.Error("a belongs to the option picker")
	}
}

func TestConfidencePickerDigits(t *testing.T) {
	tests := []struct {
		key     string
		want    round.Confidence
		handled bool
	}{
		{"5", round.Conf55, true},
		{"6", round.Conf65, true},
		{"7", round.Conf75, true},
		{"9", round.Conf95, true},
		{"4", round.Unset, false},
		{"0", round.Unset, false},
	}
	for _, tt := range tests {
		c, handled := ConfidencePicker{}.Update(key(tt.key))
		if handled != tt.handled || c.Value != tt.want {
			t.Errorf("%s -> %v (handled %v), want %v (%v)", tt.key, c.Value, handled, tt.want, tt.handled)
		}
	}
}

func TestConfidencePickerView(t *testing.T) {
	out := ConfidencePicker{Value: round.Conf75}.View()
	for _, l := range round.Levels() {
		if !strings.Contains(out, l.String()) {
			t.Errorf("view missing %s", l)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    ProgressBar
		want float64
	}{
		{ProgressBar{Done: 0, Total: 40}, 0},
		{ProgressBar{Done: 10, Total: 40}, 0.25},
		{ProgressBar{Done: 50, Total: 40}, 1},
		{ProgressBar{Done: 3, Total: 0}, 0},
	}
	for _, tc := range tests {
		if got := tc.p.Fraction(); got != tc.want {
			t.Errorf("%+v.Fraction() = %v, want %v", tc.p, got, tc.want)
		}
	}

	out := ProgressBar{Done: 3, Total: 8, Width: 40}.View()
	if !strings.Contains(out, "3/8") {
		t.Errorf("view missing counter: %q", out)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var ran string
	m := NewMenu([]MenuItem{
		{Label: "START", Disabled: true},
		{Label: "HELP", Action: func() tea.Cmd { ran = "help"; return nil }},
		{Label: "QUIT", Action: func() tea.Cmd { ran = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("up onto a disabled item moved to %d", m.Selected)
	}

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	if ran != "quit" {
		t.Errorf("enter ran %q, want quit", ran)
	}
	if !strings.Contains(m.View(), "QUIT") {
		t.Error("view missing label")
	}
}
