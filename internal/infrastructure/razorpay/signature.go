package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/drovo/drovo-service/internal/domain"
)

// Sign computes the hex HMAC-SHA256 of "orderId|paymentId".
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret string, proof domain.PaymentProof) error {
	if proof.GatewayOrderID == "" || proof.GatewayPaymentID == "" || proof.Signature == "" {
		return domain.ErrInvalidSignature
	}
	expected := Sign(secret, proof.GatewayOrderID, proof.GatewayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(proof.Signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}

func (g *HTTPGateway) VerifySignature(proof domain.PaymentProof) error {
	return VerifySignature(g.keySecret, proof)
}
