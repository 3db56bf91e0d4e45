package email

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// APIFunc 与 sendgrid.API 签名一致，测试时可以替换
type APIFunc func(request rest.Request) (*rest.Response, error)

// SendgridSender 通过 SendGrid Web API 发送审批通知
type SendgridSender struct {
	key     string
	from    *sgmail.Email
	appName string
	call    APIFunc
}

// NewSendgridSender 创建 SendGrid 发送器；未配置 API key 或发件地址时返回 nil
func NewSendgridSender(apiKey, fromAddress, appName string) *SendgridSender {
	if apiKey == "" || fromAddress == "" {
		return nil
	}
	return &SendgridSender{
		key:     apiKey,
		from:    sgmail.NewEmail(appName, fromAddress),
		appName: appName,
		call:    sendgrid.API,
	}
}

// WithAPIFunc 替换底层 HTTP 调用
func (s *SendgridSender) WithAPIFunc(call APIFunc) *SendgridSender {
	s.call = call
	return s
}

// SendApprovalEmail 通知申请人账号已审批通过
func (s *SendgridSender) SendApprovalEmail(toEmail, employeeName string) error {
	subject, body := approvalMessage(s.appName, employeeName)

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(toEmail, employeeName, subject, body))

	res, err := s.call(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *SendgridSender) prepare(toEmail, toName, subject, body string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", body))
	return m
}
