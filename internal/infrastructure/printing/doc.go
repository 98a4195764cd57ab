// Package printing renders meeting documents: the minutes ("ata") as HTML and
// PDF, and the HTML bodies of the meeting emails.
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	engine := NewTemplateEngine()
//	html, err := engine.RenderMinutes(BuildMinutes(m, names))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := renderer.Render(ctx, &RenderRequest{HTML: html, Title: m.Name})
package printing
