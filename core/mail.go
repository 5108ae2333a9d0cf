package core

import (
	"bytes"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path"
	"strings"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

const emailTemplatesDir = "templates/email"

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}

	// EmailTemplates renders EmailMessage contents from `<name>.txt` and `<name>.gohtml` files,
	// each wrapped by the matching `_base` file.
	EmailTemplates struct {
		text map[string]*texttmpl.Template
		html map[string]*htmltmpl.Template
	}
)

// ParseEmailTemplates parses every email template found under templates/email in `fsys`.
// Missing keys are errors in debug and test mode.
func ParseEmailTemplates(fsys fs.FS, strict bool) (*EmailTemplates, error) {
	tmpls := &EmailTemplates{
		text: make(map[string]*texttmpl.Template),
		html: make(map[string]*htmltmpl.Template),
	}

	entries, err := fs.ReadDir(fsys, emailTemplatesDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading email templates")
	}
	for _, entry := range entries {
		fname := entry.Name()
		ext := path.Ext(fname)
		if entry.IsDir() || strings.HasPrefix(fname, "_") || !(ext == ".txt" || ext == ".gohtml") {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		base, fp := path.Join(emailTemplatesDir, "_base"+ext), path.Join(emailTemplatesDir, fname)

		if ext == ".txt" {
			tmpl, err := texttmpl.ParseFS(fsys, base, fp)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %s", fname)
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			tmpls.text[name] = tmpl
		} else {
			tmpl, err := htmltmpl.ParseFS(fsys, base, fp)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %s", fname)
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			tmpls.html[name] = tmpl
		}
	}
	return tmpls, nil
}

// Render fills the text and HTML contents of `m`.
func (t *EmailTemplates) Render(m *EmailMessage) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
	}
	if m.TemplateName == "" {
		return nil
	}

	if tmpl, ok := t.text[m.TemplateName]; ok && m.BodyStr == "" {
		var buff bytes.Buffer
		if err := tmpl.Execute(&buff, m.TemplateData); err != nil {
			return errors.Wrapf(err, "rendering %s.txt", m.TemplateName)
		}
		m.TextContent = buff.String()
	}
	if tmpl, ok := t.html[m.TemplateName]; ok {
		var buff bytes.Buffer
		if err := tmpl.Execute(&buff, m.TemplateData); err != nil {
			return errors.Wrapf(err, "rendering %s.gohtml", m.TemplateName)
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }

// ParseAddressList parses a comma separated list of addresses; an empty list is not an error.
func ParseAddressList(list string) ([]mail.Address, error) {
	list = CleanString(list)
	if list == "" {
		return nil, nil
	}
	ptrs, err := mail.ParseAddressList(list)
	if err != nil {
		return nil, errors.Wrap(err, "parsing address list")
	}
	addrs := make([]mail.Address, 0, len(ptrs))
	for _, a := range ptrs {
		addrs = append(addrs, *a)
	}
	return addrs, nil
}
