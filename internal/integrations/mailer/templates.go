package mailer

import "html/template"

// confirmationData поля письма-подтверждения
type confirmationData struct {
	ClientName    string
	ClientEmail   string
	Date          string
	Hour          string
	AgencyName    string
	AgencyAddress string
	PdfURL        string
	ForBank       bool
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Confirmación de Cita BBVA</title>
    <style>
        body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; color: #333; background-color: #f4f4f4; }
        .container { max-width: 600px; margin: 20px auto; background: #fff; padding: 30px; border-top: 5px solid #003366; }
        .details { background-color: #e6f2ff; padding: 15px; border-left: 5px solid #0056b3; }
        .details strong { color: #003366; }
        .button { display: inline-block; background-color: #0056b3; color: #ffffff; padding: 10px 20px; text-decoration: none; }
        .footer { text-align: center; font-size: 12px; color: #777; }
    </style>
</head>
<body>
<div class="container">
    <h1>{{if .ForBank}}Nueva Cita Agendada{{else}}Confirmación de Cita Bancaria{{end}}</h1>
    {{if .ForBank}}
    <p>El cliente <strong>{{.ClientName}}</strong> ({{.ClientEmail}}) agendó una cita para la apertura de cuenta.</p>
    {{else}}
    <p>Estimado/a <strong>{{.ClientName}}</strong>,</p>
    <p>Le confirmamos que su cita en BBVA ha sido agendada exitosamente con los siguientes detalles:</p>
    {{end}}
    <div class="details">
        <p><strong>Fecha:</strong> {{.Date}}</p>
        <p><strong>Hora:</strong> {{.Hour}}</p>
        <p><strong>Agencia:</strong> {{.AgencyName}}</p>
        <p><strong>Dirección:</strong> {{.AgencyAddress}}</p>
    </div>
    <a class="button" href="{{.PdfURL}}">Descargar comprobante PDF</a>
    <div class="footer">
        <p>Por favor, preséntese 10 minutos antes con su documento de identidad.</p>
        <p>&copy; BBVA</p>
    </div>
</div>
</body>
</html>
`))
