package statement

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

var printTemplate = template.Must(template.New("statement").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return formatMoney(d) },
	"date":  formatDate,
	"day": func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Statement - {{.Customer.Name}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; }
td.num { text-align: right; }
@media print { button { display: none; } }
</style>
</head>
<body>
<h1>{{.Customer.Name}}</h1>
{{with .Customer.Phone}}<p>Phone: {{.}}</p>{{end}}
<p>Period: {{day .From}} to {{day .To}} &middot; Generated {{date .GeneratedAt}}</p>
<p>Opening balance: {{.Currency}} {{money .OpeningBalance}}</p>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{date .OccurredAt}}</td>
<td class="num">{{money .BalanceBefore}}</td>
<td class="num">{{money .AbsAmount}}</td>
<td>{{.Label}}</td>
<td class="num">{{money .BalanceAfter}}</td>
<td>{{.Notes}}</td>
</tr>
{{else}}<tr><td colspan="6">No transactions in this period.</td></tr>
{{end}}</tbody>
</table>
<p>Sales: {{money .Totals.Sales}} &middot; Debts: {{money .Totals.Debts}} &middot; Payments: {{money .Totals.Payments}}</p>
<p><strong>Remaining balance: {{.Currency}} {{money .ClosingBalance}}</strong></p>
<button onclick="window.print()">Print</button>
</body>
</html>
`))

type printView struct {
	Statement
	Columns []string
}

func WriteHTML(w io.Writer, st Statement) error {
	if err := printTemplate.Execute(w, printView{Statement: st, Columns: Columns}); err != nil {
		return fmt.Errorf("WriteHTML: %w", err)
	}
	return nil
}
