package email

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateWelcome is sent once a user has registered.
	TemplateWelcome Template = "welcome"
)
