package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
)

// PaymentService runs the pending -> {success, failed} state machine and
// keeps the append-only audit trail.
type PaymentService struct {
	db      *gorm.DB
	gateway Gateway
}

func NewPaymentService(db *gorm.DB, gateway Gateway) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

// VerifyResult is the outcome reported back to the gateway page.
type VerifyResult struct {
	Status    string `json:"status"`
	OrderUUID string `json:"order_uuid,omitempty"`
}

// CreateFakePayment get-or-creates the payment for the caller's pending
// order. Amount is frozen from the order total.
func (s *PaymentService) CreateFakePayment(userID, orderID uint, method string) (*models.Payment, error) {
	if method == "" {
		method = models.PaymentMethodFake
	}

	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != models.OrderStatusPending {
			return ErrOrderNotPayable
		}

		err = lockForUpdate(tx).
			Where("order_id = ?", order.ID).
			First(&payment).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			payment = models.Payment{
				OrderID: order.ID,
				Amount:  order.TotalPrice,
				Method:  method,
				Status:  models.PaymentStatusPending,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}
		case err != nil:
			return err
		}

		return appendLog(tx, payment.ID, models.PaymentEventCreated, map[string]interface{}{
			"user_id": userID,
			"method":  method,
		})
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// VerifyFakePayment validates the card-shaped input, then resolves the
// pending payment through the gateway. Every attempt is logged before the
// outcome is known.
func (s *PaymentService) VerifyFakePayment(refCode, cardNumber, cvv2, otp string) (*VerifyResult, error) {
	if !isDigits(cardNumber) || len(cardNumber) < 12 || len(cardNumber) > 19 {
		return nil, ErrInvalidCard
	}
	if !isDigits(cvv2) || len(cvv2) < 3 || len(cvv2) > 4 {
		return nil, ErrInvalidCVV
	}
	if !isDigits(otp) || len(otp) != 6 {
		return nil, ErrInvalidOTP
	}

	last4 := cardNumber[len(cardNumber)-4:]

	var result VerifyResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := lockForUpdate(tx).
			Where("ref_code = ?", refCode).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status != models.PaymentStatusPending {
			return ErrPaymentProcessed
		}

		// Logged before the draw so failed attempts leave a trace too.
		if err := appendLog(tx, payment.ID, models.PaymentEventVerifyAttempt, map[string]interface{}{
			"card_last4": last4,
		}); err != nil {
			return err
		}

		var order models.Order
		if err := tx.First(&order, payment.OrderID).Error; err != nil {
			return fmt.Errorf("failed to load order for payment: %w", err)
		}

		if s.gateway.Authorize(&payment) {
			now := time.Now()
			payment.Status = models.PaymentStatusSuccess
			payment.PaidAt = &now
			meta, _ := json.Marshal(map[string]string{"card_last4": last4})
			payment.Meta = string(meta)
			if err := tx.Save(&payment).Error; err != nil {
				return fmt.Errorf("failed to mark payment success: %w", err)
			}

			order.Status = models.OrderStatusPreparing
			if err := tx.Save(&order).Error; err != nil {
				return fmt.Errorf("failed to advance order status: %w", err)
			}

			if err := appendLog(tx, payment.ID, models.PaymentEventVerifySuccess, map[string]interface{}{
				"order_id": order.ID,
			}); err != nil {
				return err
			}

			result = VerifyResult{Status: models.PaymentStatusSuccess, OrderUUID: order.UUID}
			return nil
		}

		payment.Status = models.PaymentStatusFailed
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed to mark payment failed: %w", err)
		}
		if err := appendLog(tx, payment.ID, models.PaymentEventVerifyFailed, nil); err != nil {
			return err
		}

		result = VerifyResult{Status: models.PaymentStatusFailed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetPaymentByRefCode is used by the gateway page to show the amount.
func (s *PaymentService) GetPaymentByRefCode(refCode string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("ref_code = ?", refCode).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func appendLog(tx *gorm.DB, paymentID uint, event string, payload map[string]interface{}) error {
	body := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = string(raw)
	}
	return tx.Create(&models.PaymentLog{
		PaymentID: paymentID,
		Event:     event,
		Payload:   body,
	}).Error
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
