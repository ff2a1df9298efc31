package wizard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/timeline"
	"github.com/tessro/printq/internal/timeutil"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleEntries() []timeline.Entry {
	anchor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	q := core.Queue{
		core.NewPrint("Benchy", 30),
		core.NewGap("Prep Time", 15),
		core.NewPrint("Vase", 120),
		core.NewWait("Wait Until", timeutil.MustParseClock("18:00")),
	}
	return timeline.Project(anchor, q).Entries
}

func isPrint(item core.Item) bool { return item.Kind() == core.KindPrint }

func TestItemModelFilter(t *testing.T) {
	m := NewItemModel("Pick", sampleEntries(), isPrint)
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 prints, got %d", len(m.entries))
	}

	all := NewItemModel("Pick", sampleEntries(), nil)
	if len(all.entries) != 4 {
		t.Errorf("nil filter should keep every entry, got %d", len(all.entries))
	}
}

func TestItemModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"first", []string{"enter"}, "Benchy"},
		{"down", []string{"j", "enter"}, "Vase"},
		{"clamped", []string{"j", "j", "j", "enter"}, "Vase"},
		{"up at top", []string{"k", "enter"}, "Benchy"},
		{"end", []string{"G", "enter"}, "Vase"},
		{"home", []string{"G", "g", "enter"}, "Benchy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = NewItemModel("Pick", sampleEntries(), isPrint)
			for _, k := range tt.keys {
				model, _ = model.Update(key(k))
			}
			got := model.(ItemModel).Selected()
			if got == nil {
				t.Fatal("expected a selection")
			}
			if got.ItemName() != tt.want {
				t.Errorf("selected %q, want %q", got.ItemName(), tt.want)
			}
		})
	}
}

func TestItemModelCancel(t *testing.T) {
	var model tea.Model = NewItemModel("Pick", sampleEntries(), isPrint)
	model, cmd := model.Update(key("esc"))
	if cmd == nil {
		t.Error("esc should quit")
	}
	if model.(ItemModel).Selected() != nil {
		t.Error("esc should not select")
	}
}

func TestItemModelEmpty(t *testing.T) {
	var model tea.Model = NewItemModel("Pick", nil, isPrint)
	model, _ = model.Update(key("enter"))
	model, _ = model.Update(key("G"))
	if model.(ItemModel).Selected() != nil {
		t.Error("empty picker should not select")
	}
	if !strings.Contains(model.View(), "Nothing to pick") {
		t.Error("empty picker should say so")
	}
}

func TestItemModelView(t *testing.T) {
	view := NewItemModel("Start which print?", sampleEntries(), isPrint).View()
	for _, want := range []string{"Start which print?", "Benchy", "Vase", "10:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestClockModel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "7:30", "07:30", false},
		{"padded", "18:05", "18:05", false},
		{"bad hour", "25:00", "", true},
		{"garbage", "soon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewClockModel("Wait until", nil)
			m.input.SetValue(tt.input)

			model, _ := m.Update(key("enter"))
			got := model.(ClockModel)
			if got.Value() != tt.want {
				t.Errorf("Value() = %q, want %q", got.Value(), tt.want)
			}
			if (got.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", got.err, tt.wantErr)
			}
		})
	}
}

func TestClockModelHint(t *testing.T) {
	m := NewClockModel("Wait until", func(in string) string {
		if in == "" {
			return ""
		}
		return "holds until " + in
	})
	if strings.Contains(m.View(), "holds until") {
		t.Error("empty input should not show a hint")
	}
	m.input.SetValue("09:00")
	if !strings.Contains(m.View(), "holds until 09:00") {
		t.Error("hint should reflect the input")
	}
}

func TestClockModelCancel(t *testing.T) {
	m := NewClockModel("Wait until", nil)
	m.input.SetValue("09:00")
	model, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Error("esc should quit")
	}
	if model.(ClockModel).Value() != "" {
		t.Error("cancel should leave no value")
	}
}

func TestValidators(t *testing.T) {
	if validateName("  ") == nil {
		t.Error("blank name should be rejected")
	}
	if validateName("Benchy") != nil {
		t.Error("name should be accepted")
	}
	if validateDuration("1h30m") != nil {
		t.Error("1h30m should parse")
	}
	if validateDuration("forever") == nil {
		t.Error("forever should be rejected")
	}
}
