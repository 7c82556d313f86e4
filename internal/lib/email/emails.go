package email

// SendWelcomeEmail greets a newly registered walker.
func (c *Client) SendWelcomeEmail(to, username string) error {
	data := map[string]string{
		"Username": username,
	}

	return c.SendEmail(
		to,
		"Welcome to NZ Walks!",
		TemplateWelcome,
		data,
	)
}
