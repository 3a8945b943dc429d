package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateWelcome           = "welcome"
	TemplateApplicationStatus = "application_status"
	TemplateNewApplication    = "new_application"
)

var defaultTemplates = map[string]string{
	TemplateWelcome: `<p>Hi {{.Name}},</p>
<p>Welcome to JobPortal! Your {{.UserType}} account is ready.</p>
<p><a href="{{.ActionURL}}">Open your dashboard</a></p>`,

	TemplateApplicationStatus: `<p>Hi {{.Name}},</p>
<p>Your application for <b>{{.JobTitle}}</b> is now <b>{{.Status}}</b>.</p>
<p><a href="{{.ActionURL}}">View your applications</a></p>`,

	TemplateNewApplication: `<p>Hi {{.CompanyName}},</p>
<p>{{.SeekerName}} applied to <b>{{.JobTitle}}</b>.</p>
<p><a href="{{.ActionURL}}">Review applications</a></p>`,
}

// TemplateManager хранит html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с шаблонами по умолчанию
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет (или заменяет) шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
