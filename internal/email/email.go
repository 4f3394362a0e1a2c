package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/jetcharter/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send delivers a booking notification. Delivery is a stdout stub for now;
// the event carries everything a mail template needs.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %s (%s -> %s, $%d)\n",
		event.ClientEmail, event.Type, event.BookingID, event.Origin, event.Destination, event.PriceUSD)
	return nil
}
