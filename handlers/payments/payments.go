package payments

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/handlers/notifications"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// Fee collection from students runs through Stripe. Marking a transaction
// paid-in here is bookkeeping only; it never drives the status workflow.

type CreatePaymentIntentRequest struct {
	TransactionID uint   `json:"transaction_id"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
}

func CreatePaymentIntent(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var req CreatePaymentIntentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.TransactionID == 0 || req.Currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction id and currency are required"})
		return
	}

	var transaction models.Transaction
	if err := workflow.TransactionsFor(utils.DB, actor).First(&transaction, req.TransactionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if transaction.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction has no amount to collect"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(transaction.Amount * 100)), // Stripe wants the smallest currency unit
		Currency: stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	if req.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(req.CustomerEmail)
	}

	params.Metadata = map[string]string{
		"transaction_id": strconv.FormatUint(uint64(transaction.ID), 10),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
	})
}

func HandleStripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Writer.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(payload, c.Request.Header.Get("Stripe-Signature"), endpointSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Type == "payment_intent.succeeded" {
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			log.Printf("Error parsing webhook JSON: %v", err)
			c.Writer.WriteHeader(http.StatusBadRequest)
			return
		}

		handlePaymentSuccess(paymentIntent)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func handlePaymentSuccess(paymentIntent stripe.PaymentIntent) {
	transactionID := paymentIntent.Metadata["transaction_id"]
	if transactionID == "" {
		log.Printf("PaymentIntent does not have transaction_id in metadata")
		return
	}

	var transaction models.Transaction
	if err := utils.DB.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		log.Printf("Failed to find transaction %s for payment: %v", transactionID, err)
		return
	}

	if err := utils.DB.Model(&transaction).Updates(map[string]interface{}{
		"paid":        true,
		"payment_ref": paymentIntent.ID,
	}).Error; err != nil {
		log.Printf("Failed to mark transaction %s as paid: %v", transactionID, err)
		return
	}

	log.Printf("Transaction %s marked as paid (intent %s)", transactionID, paymentIntent.ID)
	notifications.Notify(transaction.SuperagentID, "Payment received",
		"Payment received for "+transaction.StudentName+"'s application.")
}
