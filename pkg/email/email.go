package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"classboard/pkg/logger"
)

// Config 邮件配置
type Config struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口
	Username string // 邮箱账号
	Password string // 邮箱密码
	From     string // 发件人
	FromName string // 发件人名称
}

// ContactData 联系表单通知邮件数据
type ContactData struct {
	SiteName string // 站点名称
	Name     string // 留言人
	Email    string // 留言人邮箱
	Subject  string // 留言主题
	Message  string // 留言内容
}

// Service 邮件服务
type Service struct {
	config Config
	logger *logger.Logger
}

// NewService 创建邮件服务
func NewService(config Config, logger *logger.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// contactTemplate 联系表单通知邮件模板
var contactTemplate = template.Must(template.New("contact").Parse(`
<html>
<body>
<h2>{{.SiteName}} - 新的联系留言</h2>
<p><b>来自：</b>{{.Name}} &lt;{{.Email}}&gt;</p>
<p><b>主题：</b>{{.Subject}}</p>
<hr>
<p>{{.Message}}</p>
</body>
</html>`))

// SendContactNotification 发送联系表单通知邮件
func (s *Service) SendContactNotification(to string, data ContactData) error {
	buf := new(bytes.Buffer)
	if err := contactTemplate.Execute(buf, data); err != nil {
		return fmt.Errorf("渲染邮件模板失败: %w", err)
	}

	subject := fmt.Sprintf("%s - 新留言：%s", data.SiteName, data.Subject)
	return s.send(to, subject, buf.String())
}

// send 通过SMTP发送邮件
func (s *Service) send(to, subject, body string) error {
	header := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From),
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for k, v := range header {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.config.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("创建TLS连接失败: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("创建SMTP客户端失败: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP认证失败: %w", err)
	}
	if err = client.Mail(s.config.From); err != nil {
		return fmt.Errorf("设置发件人失败: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("设置收件人失败: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("准备发送数据失败: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("写入邮件内容失败: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("关闭数据写入失败: %w", err)
	}

	s.logger.Info("邮件已发送", "to", to, "subject", subject)
	return nil
}
