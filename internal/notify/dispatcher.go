package notify

import (
	"context"
	"log"
	"time"
)

// Dispatcher envia e-mails em segundo plano. Falha de e-mail nunca
// derruba uma reserva — só loga.
type Dispatcher struct {
	mailer Mailer
	queue  chan Email
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Email, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if d.mailer == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.mailer.Send(ctx, msg); err != nil {
			log.Println("mail error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Email) {
	if msg.To == "" {
		return
	}

	select {
	case d.queue <- msg:
	default:
		log.Println("mail queue full, dropping message")
	}
}
