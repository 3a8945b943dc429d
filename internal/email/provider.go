package email

// Sender отправляет готовое сообщение (SMTP, mock)
type Sender interface {
	Send(email *Email) error
}

// Config содержит конфигурацию SMTP сервера
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
