package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendDispatchNotice mails a delivery slip for one order to the dispatch desk
func (s *Service) SendDispatchNotice(to string, notice DispatchNotice) error {
	subject := fmt.Sprintf("[Dispatch] %d can(s) for door %s (order %s)", notice.Quantity, notice.DoorNo, shortID(notice.OrderID))
	body := BuildDispatchNoticeBody(notice)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
