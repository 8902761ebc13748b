package order

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/drovo/drovo-service/internal/domain"
	orderdto "github.com/drovo/drovo-service/internal/usecase/dto/order"
	"github.com/drovo/drovo-service/internal/usecase/external"
)

// SendFeedback mails buyer feedback to the shop. Delivery is the whole
// operation, so a mail failure is returned.
func (uc *DefaultOrderUsecase) SendFeedback(ctx context.Context, input *orderdto.FeedbackInput) error {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	switch {
	case name == "":
		return domain.NewValidationError("name is required")
	case message == "":
		return domain.NewValidationError("message is required")
	case input.Rating < 1 || input.Rating > 5:
		return domain.NewValidationError("rating must be between 1 and 5")
	case input.ShopID == "":
		return domain.NewValidationError("shopId is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.NewValidationError("a valid email is required")
	}

	shop, err := uc.ShopRepo.GetShopByID(ctx, input.ShopID)
	if err != nil {
		return fmt.Errorf("load shop: %w", err)
	}

	m := domain.Mail{
		To:      shop.Email,
		ReplyTo: input.Email,
		Subject: "Feedback from " + name,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nRating: %d/5\n\n%s\n",
			name, input.Email, input.Rating, message),
	}
	err = uc.Caller.Do(ctx, external.LoadBearing, "mail.feedback", func(ctx context.Context) error {
		return uc.Mailer.SendMail(ctx, m)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}
