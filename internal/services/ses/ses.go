// Package ses sends financial-health scorecard reports via AWS SES.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "financial-health-engine/internal/config"
	"financial-health-engine/internal/models"
	"financial-health-engine/internal/services/ratio"
	"financial-health-engine/internal/utils"
)

// Service handles SES email operations.
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email.
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// ReportParams contains data for a scorecard report email.
type ReportParams struct {
	UserName     string
	UserEmail    string
	Cards        []ratio.Scorecard
	DashboardURL string
}

// SendEmailResult contains the result of sending an email.
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service.
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	return &Service{
		client:    ses.NewFromConfig(cfg),
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email.
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendScorecardReport emails a profile its current scorecards with the
// recommendation and improvement guidance for each ratio.
func (s *Service) SendScorecardReport(ctx context.Context, params ReportParams) (*SendEmailResult, error) {
	htmlBody, err := renderReportHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := renderReportText(params)

	subject := fmt.Sprintf("%s, your financial health scorecard is ready", params.UserName)

	return s.SendEmail(ctx, EmailParams{
		To:       params.UserEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// BuildReportParams assembles report params from a profile's current state.
func BuildReportParams(profile *models.Profile, dashboardURL string) ReportParams {
	var cards []ratio.Scorecard
	if profile.Ratios != nil {
		cards = ratio.Scorecards(*profile.Ratios)
	}

	return ReportParams{
		UserName:     profile.Name,
		UserEmail:    profile.Email,
		Cards:        cards,
		DashboardURL: dashboardURL,
	}
}

var reportTemplate = template.Must(template.New("scorecard_report").Funcs(template.FuncMap{
	"fmtValue": formatCardValue,
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4572D3; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .ratio-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .ratio-card h3 { margin: 0 0 10px 0; color: #4572D3; }
        .ratio-card .value { font-size: 20px; font-weight: bold; }
        .ratio-card .healthy { color: #28a745; }
        .ratio-card .attention { color: #dc3545; }
        .ratio-card .guidance { color: #666; font-size: 14px; margin-top: 10px; }
        .cta-button { display: inline-block; background: #4572D3; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Your Financial Health Scorecard</h1>
        <p>Hi {{.UserName}}, here is where your six ratios stand today</p>
    </div>
    <div class="content">
        {{range .Cards}}
        <div class="ratio-card">
            <h3>{{.Title}}</h3>
            <div class="value {{if .Healthy}}healthy{{else}}attention{{end}}">{{fmtValue .}}</div>
            <p class="guidance">{{.Description}}</p>
            <p class="guidance"><strong>Recommendation:</strong> {{.Recommendation}}</p>
            <p class="guidance"><strong>How to improve:</strong> {{.Improvement}}</p>
        </div>
        {{end}}

        {{if .DashboardURL}}
        <div style="text-align: center;">
            <a href="{{.DashboardURL}}" class="cta-button">Open Your Dashboard</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by Financial Health Engine</p>
        <p>You received this because you requested your scorecard report.</p>
    </div>
</body>
</html>`))

// renderReportHTML renders the HTML email body.
func renderReportHTML(params ReportParams) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderReportText renders the plain text version.
func renderReportText(params ReportParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.UserName))
	buf.WriteString("Here is your financial health scorecard:\n\n")

	for i, card := range params.Cards {
		buf.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, card.Title, formatCardValue(card)))
		buf.WriteString(fmt.Sprintf("   %s\n", card.Description))
		buf.WriteString(fmt.Sprintf("   Recommendation: %s\n", card.Recommendation))
		buf.WriteString(fmt.Sprintf("   How to improve: %s\n\n", card.Improvement))
	}

	if params.DashboardURL != "" {
		buf.WriteString(fmt.Sprintf("Open your dashboard: %s\n\n", params.DashboardURL))
	}

	buf.WriteString("Best regards,\nFinancial Health Engine Team\n")

	return buf.String()
}

func formatCardValue(card ratio.Scorecard) string {
	if card.Unit == ratio.UnitMultiple {
		return fmt.Sprintf("%.1fx", card.Value)
	}
	return fmt.Sprintf("%.2f%%", card.Value)
}
