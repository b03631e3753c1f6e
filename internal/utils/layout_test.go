package utils

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDetailBuilder_Row(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Row("Name", "mirror/alpine")

	got := db.String()
	if !strings.Contains(got, "Name") {
		t.Error("Row should contain label")
	}
	if !strings.Contains(got, "mirror/alpine") {
		t.Error("Row should contain value")
	}
}

func TestDetailBuilder_Section(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Section("Images")

	got := db.String()
	if !strings.Contains(got, "── Images") {
		t.Error("Section should contain heading")
	}
	if !strings.Contains(got, "───") {
		t.Error("Section should contain padding dashes")
	}
}

func TestDetailBuilder_Blank(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Row("A", "1")
	db.Blank()
	db.Row("B", "2")

	got := db.String()
	if !strings.Contains(got, "\n\n") {
		t.Error("Blank should insert empty line")
	}
}

func TestDetailBuilder_Combined(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Section("Info")
	db.Row("Repository", "test")
	db.Blank()
	db.Section("Tags")
	db.Row("Pushed", "active")

	got := db.String()
	if !strings.Contains(got, "Info") {
		t.Error("should contain first section")
	}
	if !strings.Contains(got, "Tags") {
		t.Error("should contain second section")
	}
	if !strings.Contains(got, "test") {
		t.Error("should contain first value")
	}
	if !strings.Contains(got, "active") {
		t.Error("should contain second value")
	}
}

func TestDetailBuilder_RuleWidth(t *testing.T) {
	narrow := NewDetailBuilder(10, lipgloss.NewStyle())
	narrow.SetRuleWidth(10)
	narrow.Section("Images")

	wide := NewDetailBuilder(10, lipgloss.NewStyle())
	wide.SetRuleWidth(60)
	wide.Section("Images")

	if len(wide.String()) <= len(narrow.String()) {
		t.Error("wider rule should produce a longer heading")
	}
}
