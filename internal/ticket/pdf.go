package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Data carries everything a rendered ticket shows. Bus fields may be blank
// when the bus was deleted after the booking was made.
type Data struct {
	BookingID      string
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	BusNumber      string
	RouteFrom      string
	RouteTo        string
	DepartureTime  string
	ArrivalTime    string
	Seats          []int32
	TotalAmount    float64
	BookingDate    string
	Status         string
}

// Render produces the ticket PDF with a BOOKING:<id> QR code.
func Render(d Data) ([]byte, error) {
	qrPNG, err := qrcode.Encode("BOOKING:"+d.BookingID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode ticket QR: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Bus Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID: %s", d.BookingID),
		fmt.Sprintf("Passenger: %s", d.PassengerName),
		fmt.Sprintf("Email: %s", d.PassengerEmail),
		fmt.Sprintf("Phone: %s", d.PassengerPhone),
		"",
		fmt.Sprintf("Bus Number: %s", orDash(d.BusNumber)),
		fmt.Sprintf("Route: %s to %s", orDash(d.RouteFrom), orDash(d.RouteTo)),
		fmt.Sprintf("Departure: %s", orDash(d.DepartureTime)),
		fmt.Sprintf("Arrival: %s", orDash(d.ArrivalTime)),
		fmt.Sprintf("Seats: %s", joinSeats(d.Seats)),
		fmt.Sprintf("Total Amount: $%.2f", d.TotalAmount),
		"",
		fmt.Sprintf("Booking Date: %s", d.BookingDate),
		fmt.Sprintf("Status: %s", strings.ToUpper(d.Status)),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("ticket-qr", 150, 20, 45, 45, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func joinSeats(seats []int32) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
