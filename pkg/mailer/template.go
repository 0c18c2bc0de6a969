package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
)

const emailTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Meeting Summary</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .header {
            border-bottom: 2px solid #e9ecef;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .header h1 {
            color: #2c3e50;
            margin: 0;
            font-size: 28px;
        }
        .summary-content {
            line-height: 1.8;
        }
        .summary-content h1, .summary-content h2, .summary-content h3 {
            color: #2c3e50;
            margin-top: 30px;
            margin-bottom: 15px;
        }
        .summary-content ul, .summary-content ol {
            padding-left: 25px;
        }
        .summary-content li {
            margin-bottom: 8px;
        }
        .summary-content blockquote {
            border-left: 4px solid #3498db;
            margin: 20px 0;
            background-color: #f8f9fa;
            padding: 15px 20px;
            border-radius: 4px;
        }
        .summary-content code {
            background-color: #f1f3f4;
            padding: 2px 6px;
            border-radius: 3px;
            font-family: 'Courier New', Courier, monospace;
        }
        .summary-content pre {
            background-color: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            overflow-x: auto;
            border: 1px solid #e9ecef;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            text-align: center;
            color: #6c757d;
            font-size: 14px;
        }
        .summary-id {
            font-family: 'Courier New', Courier, monospace;
            background-color: #f8f9fa;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>&#128221; Meeting Summary</h1>
            <p style="margin: 10px 0 0 0; color: #6c757d;">
                Summary ID: <span class="summary-id">{{.SummaryID}}</span>
            </p>
        </div>

        <div class="summary-content">
            {{.Content}}
        </div>

        <div class="footer">
            <p>This summary was generated by AI and sent from the Meeting Notes Summarizer.</p>
            <p>Generated on {{.GeneratedAt}}</p>
        </div>
    </div>
</body>
</html>
`

var emailTemplate = template.Must(template.New("summary-email").Parse(emailTemplateHTML))

type templateData struct {
	SummaryID   string
	Content     template.HTML
	GeneratedAt string
}

// renderBody converts the summary markdown to HTML and wraps it in the
// branded email template.
func renderBody(summaryMarkdown, summaryID string, now time.Time) (string, error) {
	var content bytes.Buffer
	if err := goldmark.Convert([]byte(summaryMarkdown), &content); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	data := templateData{
		SummaryID:   summaryID,
		Content:     template.HTML(content.String()),
		GeneratedAt: now.Format("Monday, January 2, 2006 at 15:04"),
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return body.String(), nil
}
