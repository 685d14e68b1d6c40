package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// sceneItem is one entry of the scene picker.
type sceneItem struct {
	Label     string
	Detail    string
	Selection snapshot.Selection
	Disabled  bool // listed but not exportable (scene not loaded)
}

// sceneItems lists "all scenes", every partition in dump order and the
// untracked roots.
func sceneItems(reg scene.Registry) ([]sceneItem, error) {
	parts, err := reg.Partitions()
	if err != nil {
		return nil, err
	}
	active, err := reg.ActivePartition()
	if err != nil {
		return nil, err
	}
	untracked, err := snapshot.ResolveUntracked(reg)
	if err != nil {
		return nil, err
	}

	items := []sceneItem{{Label: "All scenes", Detail: fmt.Sprintf("%d scenes", len(parts)), Selection: snapshot.AllScenes()}}
	for i, p := range parts {
		detail := fmt.Sprintf("%d roots", len(p.Roots))
		switch {
		case !p.Loaded:
			detail = "not loaded"
		case active != nil && p.Handle == active.Handle:
			detail += ", active"
		}
		items = append(items, sceneItem{
			Label:     p.Name,
			Detail:    detail,
			Selection: snapshot.SceneAt(i),
			Disabled:  !p.Loaded,
		})
	}
	items = append(items, sceneItem{
		Label:     snapshot.UntrackedScene,
		Detail:    fmt.Sprintf("%d roots", len(untracked)),
		Selection: snapshot.SceneNamed(snapshot.UntrackedScene),
	})
	return items, nil
}

// =============================================================================
// SceneListModel - Interactive scene selection
// =============================================================================

// SceneListModel is the bubbletea model for interactive scene selection.
type SceneListModel struct {
	Items    []sceneItem
	Cursor   int
	Selected *sceneItem
}

// NewSceneListModel creates a new scene list model.
func NewSceneListModel(items []sceneItem) SceneListModel {
	return SceneListModel{Items: items}
}

func (m SceneListModel) Init() tea.Cmd {
	return nil
}

func (m SceneListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Items) == 0 || m.Items[m.Cursor].Disabled {
			return m, nil
		}
		m.Selected = &m.Items[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m SceneListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scene"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, it := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-28s %s", cursor, it.Label, listDimStyle.Render(it.Detail))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case it.Disabled:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickScene runs the picker. ok is false when the user quit without
// choosing.
func pickScene(reg scene.Registry) (sel snapshot.Selection, ok bool, err error) {
	items, err := sceneItems(reg)
	if err != nil {
		return sel, false, err
	}
	final, err := tea.NewProgram(NewSceneListModel(items)).Run()
	if err != nil {
		return sel, false, fmt.Errorf("scene picker: %w", err)
	}
	m, _ := final.(SceneListModel)
	if m.Selected == nil {
		return sel, false, nil
	}
	return m.Selected.Selection, true, nil
}
