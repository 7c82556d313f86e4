package email

// PreviewData holds sample values for every template, keyed by template
// name, so templates can be rendered without a real recipient.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Username": "walker@example.com",
	},
}
