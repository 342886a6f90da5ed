package mailing

import (
	"fmt"
	"foodgram/internal/utils"
	"gopkg.in/gomail.v2"
	"strconv"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	err = dialer.DialAndSend(mailer)
	if err != nil {
		return err
	}

	return nil
}

func SendWelcomeMail(toEmail string, firstName string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Foodgram! Start publishing your recipes at <a href=\"%s\">%s</a>.</p>",
		firstName,
		LoadMailConfig().AppURL,
		LoadMailConfig().AppURL,
	)
	return SendMail(toEmail, "Welcome to Foodgram", body)
}

func SendPasswordResetMail(toEmail string, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", LoadMailConfig().AppURL, token)
	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p><a href=\"%s\">Reset your password</a>. The link expires in 30 minutes.</p>",
		resetURL,
	)
	return SendMail(toEmail, "Foodgram password reset", body)
}
