package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"column": func(cols board.Columns, status models.TaskStatus) []dto.TaskDTO {
		return cols[status]
	},
	"statusLabel": statusLabel,
	"lower":       strings.ToLower,
}

func statusLabel(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusInProgress:
		return "In progress"
	default:
		return string(status)
	}
}

func mustTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"))
}
