package core

import (
	"net/mail"
	"reflect"
	"testing"
	"testing/fstest"
)

var testTemplates = fstest.MapFS{
	"templates/email/_base.txt":       {Data: []byte(`{{template "content" .}} -- {{.Team}}`)},
	"templates/email/_base.gohtml":    {Data: []byte(`<p>{{template "content" .}}</p>`)},
	"templates/email/hello.txt":       {Data: []byte(`{{define "content"}}Hello {{.Name}}{{end}}`)},
	"templates/email/hello.gohtml":    {Data: []byte(`{{define "content"}}Hello <b>{{.Name}}</b>{{end}}`)},
	"templates/email/text_only.txt":   {Data: []byte(`{{define "content"}}Bye{{end}}`)},
	"templates/email/notes.md":        {Data: []byte(`ignored`)},
	"templates/email/_partial.gohtml": {Data: []byte(`ignored`)},
}

func TestEmailTemplates_Render(t *testing.T) {
	tmpls, err := ParseEmailTemplates(testTemplates, true)
	if err != nil {
		t.Fatalf("ParseEmailTemplates() error = %v", err)
	}

	tests := []struct {
		name     string
		msg      EmailMessage
		wantText string
		wantHTML string
		wantErr  bool
	}{
		{
			name:     "text and html",
			msg:      EmailMessage{TemplateName: "hello", TemplateData: map[string]string{"Name": "<Ada>", "Team": "Alama"}},
			wantText: "Hello <Ada> -- Alama",
			wantHTML: "<p>Hello <b>&lt;Ada&gt;</b></p>",
		},
		{
			name:     "text only",
			msg:      EmailMessage{TemplateName: "text_only", TemplateData: map[string]string{"Team": "Alama"}},
			wantText: "Bye -- Alama",
		},
		{
			name:     "plain body wins over text template",
			msg:      EmailMessage{BodyStr: "plain", TemplateName: "hello", TemplateData: map[string]string{"Name": "Ada", "Team": "Alama"}},
			wantText: "plain",
			wantHTML: "<p>Hello <b>Ada</b></p>",
		},
		{name: "no template", msg: EmailMessage{BodyStr: "plain"}, wantText: "plain"},
		{name: "unknown template", msg: EmailMessage{TemplateName: "lol"}},
		{name: "missing key", msg: EmailMessage{TemplateName: "hello", TemplateData: map[string]string{"Name": "Ada"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			err := tmpls.Render(&msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if msg.TextContent != tt.wantText {
				t.Errorf("TextContent = %q; want %q", msg.TextContent, tt.wantText)
			}
			if msg.HTMLContent != tt.wantHTML {
				t.Errorf("HTMLContent = %q; want %q", msg.HTMLContent, tt.wantHTML)
			}
		})
	}
}

func TestParseEmailTemplates_missingDir(t *testing.T) {
	if _, err := ParseEmailTemplates(fstest.MapFS{}, false); err == nil {
		t.Error("ParseEmailTemplates() error = nil; want an error")
	}
}

func TestParseAddressList(t *testing.T) {
	tests := []struct {
		list    string
		want    []mail.Address
		wantErr bool
	}{
		{list: "  "},
		{list: "advisor@alama.test", want: []mail.Address{{Address: "advisor@alama.test"}}},
		{
			list: "Ada <ada@alama.test>, bob@alama.test",
			want: []mail.Address{{Name: "Ada", Address: "ada@alama.test"}, {Address: "bob@alama.test"}},
		},
		{list: "not an address", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAddressList(tt.list)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAddressList(%q) error = %v, wantErr %v", tt.list, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseAddressList(%q) = %v; want %v", tt.list, got, tt.want)
		}
	}
}
