package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/njoroge256/aerodesk/configs"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
)

const bookingReportTemplate = `
<html>
<head><style>
body { font-family: Arial, sans-serif; margin: 40px; }
h1 { color: #1a3c6e; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; font-size: 12px; text-align: left; }
th { background: #1a3c6e; color: #fff; }
.summary { margin-top: 20px; font-size: 14px; }
</style></head>
<body>
<h1>Booking Summary Report</h1>
<p>Period: {{.Start}} to {{.End}}</p>
<table>
<tr><th>Reference</th><th>Flight</th><th>Route</th><th>Passenger</th><th>Status</th><th>Amount</th></tr>
{{range .Bookings}}
<tr><td>{{.Reference}}</td><td>{{.FlightNumber}}</td><td>{{.Origin}}-{{.Destination}}</td><td>{{.PassengerName}}</td><td>{{.Status}}</td><td>{{printf "%.2f" .Amount}} {{.Currency}}</td></tr>
{{end}}
</table>
<p class="summary">Total bookings: {{len .Bookings}} — Total value: {{printf "%.2f" .Total}}</p>
</body>
</html>`

// GenerateBookingSummaryPDF renders the period's bookings through headless
// Chrome and uploads the PDF, returning its hosted URL.
func GenerateBookingSummaryPDF(start, end time.Time) (string, error) {
	var bookings []models.Booking
	if err := database.DB.
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return "", err
	}

	var total float64
	for _, b := range bookings {
		total += b.Amount
	}

	tmpl, err := template.New("booking_report").Parse(bookingReportTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Start    string
		End      string
		Bookings []models.Booking
		Total    float64
	}{
		Start:    start.Format("2006-01-02"),
		End:      end.Format("2006-01-02"),
		Bookings: bookings,
		Total:    total,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}

	pdfBytes, err := generatePDFFromHTML(renderedHTML.String())
	if err != nil {
		return "", err
	}

	return uploadReportToCloudinary(pdfBytes, start, end)
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReportToCloudinary(fileBytes []byte, start, end time.Time) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/bookings_%s_%s_%s", start.Format("20060102"), end.Format("20060102"), uuid.New().String()),
		Folder:       "aerodesk_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
