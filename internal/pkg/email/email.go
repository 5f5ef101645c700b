package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vowlink/wedding_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendLeadNotification 新线索通知商家
func (s *Service) SendLeadNotification(to, coupleName, snippet string) error {
	subject := "新的咨询线索 - 婚礼商家平台"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #be185d;">您收到一条新线索</h2>
        <p>您好，</p>
        <p><strong>%s</strong> 刚刚向您发来咨询：</p>
        <div style="background-color: #f3f4f6; padding: 15px; margin: 20px 0; border-left: 4px solid #be185d;">
            %s
        </div>
        <p>请登录平台查看并及时回复，尽快接受或婉拒该线索。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, coupleName, snippet)

	return s.sendHTML(to, subject, body)
}

// SendWelcome 注册欢迎邮件
func (s *Service) SendWelcome(to, name string) error {
	subject := "欢迎入驻 - 婚礼商家平台"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #be185d;">欢迎加入！</h2>
        <p>您好，%s！</p>
        <p>感谢您入驻婚礼商家平台。</p>
        <p>现在您可以：</p>
        <ul>
            <li>完善商家展示信息和服务城市</li>
            <li>接收并管理新人的咨询线索</li>
            <li>开通订阅提升搜索排名</li>
        </ul>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, name)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
