package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

const columnWidth = 30

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(columnWidth)
	activeColumnStyle = columnStyle.BorderForeground(lipgloss.Color("12"))
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cardStyle         = lipgloss.NewStyle()
	selectedCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dropStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	alertStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	priorityColors = map[models.TaskPriority]lipgloss.Color{
		models.TaskPriorityHigh:   lipgloss.Color("9"),
		models.TaskPriorityMedium: lipgloss.Color("11"),
		models.TaskPriorityLow:    lipgloss.Color("10"),
	}
)

// cursor marks a card, or a drop slot while a card is grabbed
type cursor struct {
	column int
	row    int
	drop   bool
}

// RenderColumns draws the three status columns side by side
func RenderColumns(cols board.Columns) string {
	return renderColumns(cols, cursor{column: -1})
}

func renderColumns(cols board.Columns, cur cursor) string {
	rendered := make([]string, 0, len(models.Statuses))
	for i, status := range models.Statuses {
		tasks := cols[status]

		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", Label(status), len(tasks))))
		b.WriteString("\n")

		active := cur.column == i
		for row, task := range tasks {
			if active && cur.drop && cur.row == row {
				b.WriteString(dropStyle.Render("▸ drop here"))
				b.WriteString("\n")
			}
			b.WriteString(card(task, active && !cur.drop && cur.row == row))
			b.WriteString("\n")
		}
		if active && cur.drop && cur.row >= len(tasks) {
			b.WriteString(dropStyle.Render("▸ drop here"))
			b.WriteString("\n")
		}
		if len(tasks) == 0 && !(active && cur.drop) {
			b.WriteString(helpStyle.Render("no tasks"))
		}

		style := columnStyle
		if active {
			style = activeColumnStyle
		}
		rendered = append(rendered, style.Render(strings.TrimRight(b.String(), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func card(task dto.TaskDTO, selected bool) string {
	marker := lipgloss.NewStyle().Foreground(priorityColors[task.Priority]).Render("●")
	title := fmt.Sprintf("#%d %s", task.ID, task.Title)
	if selected {
		title = selectedCardStyle.Render("> " + title)
	} else {
		title = cardStyle.Render("  " + title)
	}
	line := marker + title
	if task.Assignee.FullName != "" {
		line += "\n   " + helpStyle.Render(task.Assignee.FullName)
	}
	return line
}

// Label is the human-readable column title of a status
func Label(status models.TaskStatus) string {
	if status == models.TaskStatusInProgress {
		return "In progress"
	}
	return string(status)
}
