package mail

import (
	"github.com/gofiber/fiber/v2"
)

func SendVerificationEmail(sender MailSender, email string, name string, verifyURL string) error {
	body, err := renderHTML("email-verification", fiber.Map{
		"name":      name,
		"verifyURL": verifyURL,
	})
	if err != nil {
		return err
	}
	return sender.Send(&Message{
		To:      []string{email},
		Subject: "Verify your email address",
		Body:    body,
		IsHTML:  true,
	})
}
