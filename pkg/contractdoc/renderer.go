// Package contractdoc renders the lease handed to the e-signature provider
// and stores the signed copy it returns.
package contractdoc

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type Fee struct {
	Name   string
	Amount int64
}

type Lease struct {
	AgreementID     string
	TenantName      string
	TenantEmail     string
	LandlordName    string
	RoomTitle       string
	StartDate       time.Time
	EndDate         *time.Time
	MonthlyRent     int64
	Deposit         int64
	ElectricityRate int64
	WaterRate       int64
	Fees            []Fee
	Notes           string
	PaymentRef      string
	PaidAt          time.Time
}

const leaseTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Lease {{.AgreementID}}</title></head>
<body>
<h1>Residential Lease Agreement</h1>
<p>Reference: {{.AgreementID}}</p>
<p>Landlord: {{.LandlordName}}</p>
<p>Tenant: {{.TenantName}} ({{.TenantEmail}})</p>
<p>Premises: {{.RoomTitle}}</p>
<h2>Term</h2>
<p>Start: {{date .StartDate}}{{if .EndDate}}, end: {{date .EndDate}}{{end}}</p>
<h2>Payment</h2>
<table>
<tr><td>Monthly rent</td><td>{{vnd .MonthlyRent}}</td></tr>
<tr><td>Deposit</td><td>{{vnd .Deposit}} (paid, ref {{.PaymentRef}}, {{date .PaidAt}})</td></tr>
<tr><td>Electricity</td><td>{{vnd .ElectricityRate}} / kWh</td></tr>
<tr><td>Water</td><td>{{vnd .WaterRate}} / m3</td></tr>
{{range .Fees}}<tr><td>{{.Name}}</td><td>{{vnd .Amount}}</td></tr>
{{end}}</table>
{{if .Notes}}<h2>Notes</h2><p>{{.Notes}}</p>{{end}}
<h2>Signatures</h2>
<p>Landlord: signed</p>
<p>Tenant: <span id="tenant-signature"></span></p>
</body></html>
`

var lease = template.Must(template.New("lease").Funcs(template.FuncMap{
	"vnd":  FormatVND,
	"date": formatDate,
}).Parse(leaseTemplate))

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(l Lease) ([]byte, error) {
	var buf bytes.Buffer
	if err := lease.Execute(&buf, l); err != nil {
		return nil, fmt.Errorf("render lease: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatVND groups thousands with dots: 3000000 -> "3.000.000 VND".
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return sign + string(out) + " VND"
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("02/01/2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("02/01/2006")
	}
	return ""
}
