package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"postboard/internal/client"
	"postboard/internal/models"
	"postboard/internal/validation"
)

type mode int

const (
	modeList mode = iota
	modeFilter
	modeForm
)

type formField int

const (
	fieldName formField = iota
	fieldDescription
)

type model struct {
	theme Theme
	store *client.Store
	deps  Deps

	mode   mode
	cursor int
	width  int
	height int

	spinner spinner.Model
	filter  textinput.Model

	name        textinput.Model
	description textarea.Model
	focus       formField
	formErr     string
	submitting  bool

	toast string
}

func Run(deps Deps) error {
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by name"
	filter.CharLimit = 0

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 0

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 0
	desc.ShowLineNumbers = false
	desc.SetHeight(4)

	return model{
		theme:       DefaultTheme(),
		store:       deps.Store,
		deps:        deps,
		mode:        modeList,
		spinner:     sp,
		filter:      filter,
		name:        name,
		description: desc,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, cmdFetchPosts(m.store), listenEvents(m.deps.Events))
}

func (m model) visible() []models.PostPrimitive {
	return m.store.FilteredPosts()
}

func (m model) clampCursor() model {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.description.SetWidth(max(msg.Width-12, 20))
		return m, nil

	case spinner.TickMsg:
		if !m.store.State().Loading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case postsLoadedMsg:
		return m.clampCursor(), nil

	case postCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m = m.closeForm()
		m.cursor = 0
		m.toast = fmt.Sprintf("Created %q", msg.post.Name)
		return m.clampCursor(), nil

	case postDeletedMsg:
		if msg.err == nil {
			m.toast = fmt.Sprintf("Deleted %q", msg.post.Name)
		}
		return m.clampCursor(), nil

	case postEventMsg:
		m.store.ApplyEvent(msg.event)
		return m.clampCursor(), listenEvents(m.deps.Events)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.toast = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "/":
		m.mode = modeFilter
		return m, m.filter.Focus()
	case "esc":
		m.filter.SetValue("")
		m.store.SetFilter("")
		return m.clampCursor(), nil
	case "n":
		return m.openForm()
	case "r":
		return m, tea.Batch(cmdFetchPosts(m.store), m.spinner.Tick)
	case "d":
		items := m.visible()
		if len(items) == 0 {
			return m, nil
		}
		m.cursor = min(m.cursor, len(items)-1)
		return m, cmdDeletePost(m.store, items[m.cursor].ID)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeList
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeList
		m.filter.Blur()
		m.filter.SetValue("")
		m.store.SetFilter("")
		return m.clampCursor(), nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.store.SetFilter(m.filter.Value())
	m.cursor = 0
	return m, cmd
}

func (m model) openForm() (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.focus = fieldName
	m.formErr = ""
	m.name.SetValue("")
	m.description.Reset()
	m.description.Blur()
	return m, m.name.Focus()
}

func (m model) closeForm() model {
	m.mode = modeList
	m.formErr = ""
	m.name.Blur()
	m.description.Blur()
	return m
}

func (m model) switchFocus() (model, tea.Cmd) {
	if m.focus == fieldName {
		m.focus = fieldDescription
		m.name.Blur()
		return m, m.description.Focus()
	}
	m.focus = fieldName
	m.description.Blur()
	return m, m.name.Focus()
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.closeForm(), nil
	case tea.KeyTab, tea.KeyShiftTab:
		return m.switchFocus()
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyEnter:
		if m.focus == fieldName {
			return m.switchFocus()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	in := validation.CreatePostRequest{
		Name:        m.name.Value(),
		Description: m.description.Value(),
	}
	if err := validation.ValidateCreatePost(in); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			m.formErr = appErr.Message
		} else {
			m.formErr = err.Error()
		}
		return m, nil
	}

	m.formErr = ""
	m.submitting = true
	return m, tea.Batch(cmdCreatePost(m.store, in), m.spinner.Tick)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	st := m.store.State()

	header := m.theme.Title.Render("Postboard") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("%d posts", len(st.Items))) + "\n"

	var b strings.Builder
	b.WriteString(header)
	if st.Error != "" {
		b.WriteString("\n" + m.theme.Error.Render(st.Error) + "\n")
	}
	if m.toast != "" {
		b.WriteString("\n" + m.theme.Help.Render(m.toast) + "\n")
	}
	b.WriteString("\n")

	if m.mode == modeForm {
		b.WriteString(m.viewForm())
		return wrap.Render(b.String())
	}

	if m.mode == modeFilter || st.Filter != "" {
		b.WriteString(m.filter.View() + "\n\n")
	}

	b.WriteString(m.theme.Card.Render(m.viewList(st)))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.helpLine()))
	return wrap.Render(b.String())
}

func (m model) viewList(st client.State) string {
	if st.Loading && !st.Loaded {
		return m.spinner.View() + " Loading posts..."
	}

	items := client.FilterPosts(st.Items, st.Filter)
	if len(items) == 0 {
		if st.Filter != "" {
			return fmt.Sprintf("No posts match %q.", st.Filter)
		}
		return "No posts yet. Press n to create one."
	}

	var b strings.Builder
	for i, p := range items {
		line := fmt.Sprintf("%s  %s", p.Name, m.theme.Subtitle.Render(p.CreatedAt.Local().Format("2006-01-02 15:04")))
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if desc := firstLine(p.Description); desc != "" {
			b.WriteString("    " + m.theme.Subtitle.Render(desc) + "\n")
		}
	}
	if st.Loading {
		b.WriteString(m.spinner.View() + " Refreshing...")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("New post") + "\n\n")
	b.WriteString(m.theme.Label.Render("Name") + "\n")
	b.WriteString(m.name.View() + "\n\n")
	b.WriteString(m.theme.Label.Render("Description") + "\n")
	b.WriteString(m.description.View() + "\n")
	if m.formErr != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.formErr) + "\n")
	}
	if m.submitting {
		b.WriteString("\n" + m.spinner.View() + " Saving...\n")
	}
	return m.theme.Card.Render(strings.TrimRight(b.String(), "\n")) + "\n" +
		m.theme.Help.Render("tab switch field • ctrl+s save • esc cancel")
}

func (m model) helpLine() string {
	if m.mode == modeFilter {
		return "type to filter • enter keep • esc clear"
	}
	return "↑/↓ navigate • / filter • n new • d delete • r refresh • q quit"
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	const limit = 72
	if r := []rune(s); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}
