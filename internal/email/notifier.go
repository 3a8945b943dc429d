package email

import (
	"fmt"
	"strings"
)

// Notifier собирает письма из шаблонов и отдает их Sender
type Notifier struct {
	sender    Sender
	templates *TemplateManager
	siteURL   string
}

func NewNotifier(sender Sender, templates *TemplateManager, siteURL string) *Notifier {
	return &Notifier{
		sender:    sender,
		templates: templates,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

// SendWelcome - письмо после регистрации
func (n *Notifier) SendWelcome(to, name, userType string) error {
	return n.send(to, "Welcome to JobPortal", TemplateWelcome, TemplateData{
		"Name":      name,
		"UserType":  userType,
		"ActionURL": n.siteURL + "/dashboard/" + userType,
	})
}

// SendApplicationStatus - соискателю об изменении статуса заявки
func (n *Notifier) SendApplicationStatus(to, name, jobTitle, status string) error {
	return n.send(to, fmt.Sprintf("Your application for %s was updated", jobTitle), TemplateApplicationStatus, TemplateData{
		"Name":      name,
		"JobTitle":  jobTitle,
		"Status":    status,
		"ActionURL": n.siteURL + "/dashboard/seeker/applications",
	})
}

// SendNewApplication - компании о новом отклике
func (n *Notifier) SendNewApplication(to, companyName, jobTitle, seekerName string) error {
	return n.send(to, fmt.Sprintf("New application for %s", jobTitle), TemplateNewApplication, TemplateData{
		"CompanyName": companyName,
		"JobTitle":    jobTitle,
		"SeekerName":  seekerName,
		"ActionURL":   n.siteURL + "/dashboard/company/applications",
	})
}

func (n *Notifier) send(to, subject, templateName string, data TemplateData) error {
	html, err := n.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return n.sender.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
	})
}
