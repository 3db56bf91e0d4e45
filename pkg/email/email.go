package email

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/hr_management/configs"
)

// SendFunc 与 smtp.SendMail 签名一致，测试时可以替换
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender 通过 SMTP 发送申请人审批通知
type Sender struct {
	config  configs.SMTPConfig
	appName string
	send    SendFunc
}

// NewSender 创建邮件发送器；SMTP 未配置时返回 nil
func NewSender(config configs.SMTPConfig, appName string) *Sender {
	if !config.Enabled() {
		return nil
	}
	return &Sender{config: config, appName: appName, send: smtp.SendMail}
}

// WithSendFunc 替换底层发送函数
func (s *Sender) WithSendFunc(send SendFunc) *Sender {
	s.send = send
	return s
}

// SendApprovalEmail 通知申请人账号已审批通过
func (s *Sender) SendApprovalEmail(toEmail, employeeName string) error {
	subject, body := approvalMessage(s.appName, employeeName)
	return s.sendHTML(toEmail, subject, body)
}

func approvalMessage(appName, employeeName string) (subject, body string) {
	subject = fmt.Sprintf("Your %s account has been approved", appName)
	body = fmt.Sprintf(`
<html>
<body>
    <p>Hello %s,</p>
    <p>Your application to %s has been approved. You can now sign in and clock in with your personal QR code.</p>
    <p><small>This is an automated message, please do not reply.</small></p>
</body>
</html>
`, html.EscapeString(employeeName), html.EscapeString(appName))
	return subject, body
}

func (s *Sender) sendHTML(toEmail, subject, body string) error {
	// CRLF 行尾
	msg := []byte(strings.Join([]string{
		"To: " + toEmail,
		"From: " + s.config.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n"))

	// 无需认证的 SMTP 服务器使用 nil auth
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := s.send(addr, auth, s.config.Sender, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
