package notify

import (
	"fmt"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// Builders dos e-mails transacionais. O texto vai em inglês (cliente
// final do salão), os templates ficam todos aqui para facilitar revisão.

func appointmentLine(ap *models.Appointment, loc *time.Location) string {
	when := ap.StartTime.In(loc).Format("Monday, 02 Jan 2006 at 15:04")

	what := ap.Service.Name
	if ap.SubService != nil {
		what = fmt.Sprintf("%s — %s", ap.Service.Name, ap.SubService.Name)
	}

	return fmt.Sprintf("%s on %s", what, when)
}

func AppointmentRequested(ap *models.Appointment, loc *time.Location) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received your booking request for %s.\n"+
			"Your reference code is %s — keep it to manage your booking.\n\n"+
			"We will confirm your appointment shortly.\n\n"+
			"Essie's Hair Studio",
		ap.CustomerName, appointmentLine(ap, loc), ap.Reference,
	)

	return Email{
		To:      ap.CustomerEmail,
		ToName:  ap.CustomerName,
		Subject: "Booking request received",
		Body:    body,
	}
}

func AppointmentConfirmed(ap *models.Appointment, loc *time.Location) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your appointment is confirmed: %s.\n\n"+
			"If you need to cancel, use your reference code %s.\n\n"+
			"See you soon!\nEssie's Hair Studio",
		ap.CustomerName, appointmentLine(ap, loc), ap.Reference,
	)

	return Email{
		To:      ap.CustomerEmail,
		ToName:  ap.CustomerName,
		Subject: "Appointment confirmed",
		Body:    body,
	}
}

func AppointmentCancelled(ap *models.Appointment, loc *time.Location) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your appointment (%s) has been cancelled.\n",
		ap.CustomerName, appointmentLine(ap, loc),
	)
	if ap.CancelReason != "" {
		body += fmt.Sprintf("Reason: %s\n", ap.CancelReason)
	}
	body += "\nYou are welcome to book a new time anytime.\n\nEssie's Hair Studio"

	return Email{
		To:      ap.CustomerEmail,
		ToName:  ap.CustomerName,
		Subject: "Appointment cancelled",
		Body:    body,
	}
}

// NewBookingAlert avisa a equipe do salão sobre um novo pedido de horário.
func NewBookingAlert(adminEmail string, ap *models.Appointment, loc *time.Location) Email {
	body := fmt.Sprintf(
		"New booking request:\n\n"+
			"Customer: %s (%s)\n"+
			"Booking:  %s\n"+
			"Reference: %s\n",
		ap.CustomerName, ap.CustomerPhone, appointmentLine(ap, loc), ap.Reference,
	)

	return Email{
		To:      adminEmail,
		ToName:  "Salon staff",
		Subject: fmt.Sprintf("New booking: %s", ap.CustomerName),
		Body:    body,
	}
}

func WigOrderConfirmation(order *models.WigOrder) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for your order!\n\n"+
			"Item:      %s x%d\n"+
			"Total:     GHS %.2f\n"+
			"Reference: %s\n\n"+
			"We will contact you about delivery.\n\n"+
			"Essie's Hair Studio",
		order.CustomerName, order.Wig.Name, order.Quantity, order.TotalPrice, order.Reference,
	)

	return Email{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: "Order received",
		Body:    body,
	}
}

func WigOrderCancelled(order *models.WigOrder) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your order %s (%s x%d) has been cancelled.\n\n"+
			"Essie's Hair Studio",
		order.CustomerName, order.Reference, order.Wig.Name, order.Quantity,
	)

	return Email{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: "Order cancelled",
		Body:    body,
	}
}

func ProductOrderCancelled(order *models.ProductOrder) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your order %s (%s x%d) has been cancelled.\n\n"+
			"Essie's Hair Studio",
		order.CustomerName, order.Reference, order.ProductName, order.Quantity,
	)

	return Email{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: "Order cancelled",
		Body:    body,
	}
}

func ProductOrderConfirmation(order *models.ProductOrder) Email {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for your order!\n\n"+
			"Item:      %s x%d\n"+
			"Total:     GHS %.2f\n"+
			"Reference: %s\n\n"+
			"We will contact you about delivery.\n\n"+
			"Essie's Hair Studio",
		order.CustomerName, order.ProductName, order.Quantity, order.TotalPrice, order.Reference,
	)

	return Email{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: "Order received",
		Body:    body,
	}
}
