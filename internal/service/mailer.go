package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is implemented by anything that can deliver the two
// account-related mails. Kept as an interface so tests can swap in a
// recording fake
type Mailer interface {
	SendAccountActivation(to, token string) error
	SendPasswordReset(to, token string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(
			viper.GetString("mail.host"),
			viper.GetInt("mail.port"),
			viper.GetString("mail.user"),
			viper.GetString("mail.password"),
		),
		from: viper.GetString("mail.from"),
	}
}

func (m *SMTPMailer) SendAccountActivation(to, token string) error {
	link := fmt.Sprintf("http://%v:%v/#/account-activation=%v",
		viper.GetString("host.domain"), viper.GetInt("host.port"), token)

	body := fmt.Sprintf(
		"<p>Please, click on the link below to activate your account</p><a href='%v'>Activate</a>",
		link)

	return m.send(to, "Account activation", body)
}

func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("http://%v:%v/#/password-reset=%v",
		viper.GetString("host.domain"), viper.GetInt("host.port"), token)

	body := fmt.Sprintf(
		"<p>Please, click on the link below to reset your password</p><a href='%v'>Reset</a>",
		link)

	return m.send(to, "Password reset", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
