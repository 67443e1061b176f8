package notifications

import (
	"fmt"
	"net/url"
	"strings"
)

// PdfLinks строит ссылки на PDF-подтверждение записи
type PdfLinks struct {
	baseURL string
}

// NewPdfLinks создает построитель ссылок
func NewPdfLinks(baseURL string) *PdfLinks {
	return &PdfLinks{baseURL: baseURL}
}

// BuildPdfURL возвращает ссылку вида <base>&text=Cita_BBVA_<id>.pdf
func (l *PdfLinks) BuildPdfURL(appointmentID string) string {
	sep := "&"
	if !strings.Contains(l.baseURL, "?") {
		sep = "?"
	}
	return fmt.Sprintf("%s%stext=Cita_BBVA_%s.pdf", l.baseURL, sep, url.QueryEscape(appointmentID))
}
