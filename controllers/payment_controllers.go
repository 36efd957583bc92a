package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/services"
	"github.com/dinehub/restaurant-app/utils"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(db *gorm.DB, gateway services.Gateway) *PaymentController {
	return &PaymentController{payments: services.NewPaymentService(db, gateway)}
}

// CreateFakePayment opens a payment for the caller's pending order and
// returns the gateway handle.
func (pc *PaymentController) CreateFakePayment(c *gin.Context) {
	var req struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Method  string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.payments.CreateFakePayment(middlewares.UserID(c), req.OrderID, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment created", gin.H{
		"payment_id":  payment.ID,
		"ref_code":    payment.RefCode,
		"amount":      payment.Amount,
		"gateway_url": fmt.Sprintf("/fake-gateway/%s", payment.RefCode),
	})
}

// VerifyFakePayment is the unauthenticated gateway callback. Input shape is
// checked before any state is touched.
func (pc *PaymentController) VerifyFakePayment(c *gin.Context) {
	var req struct {
		RefCode    string `json:"ref_code" binding:"required"`
		CardNumber string `json:"card_number" binding:"required"`
		CVV2       string `json:"cvv2" binding:"required"`
		OTP        string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := pc.payments.VerifyFakePayment(req.RefCode, req.CardNumber, req.CVV2, req.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Payment failed"
	if result.Status == models.PaymentStatusSuccess {
		message = "Payment successful"
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}

// GetPaymentByRefCode lets the gateway page display the amount to pay.
func (pc *PaymentController) GetPaymentByRefCode(c *gin.Context) {
	payment, err := pc.payments.GetPaymentByRefCode(c.Param("ref_code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment", gin.H{
		"ref_code": payment.RefCode,
		"amount":   payment.Amount,
		"status":   payment.Status,
	})
}
