package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type Config struct {
	ServerKey   string
	ClientKey   string
	Environment string // "sandbox" or "production"
}

type MidtransClient struct {
	Snap      snap.Client
	CoreAPI   coreapi.Client
	ClientKey string
}

func Setup(cfg *Config) *MidtransClient {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(cfg.ServerKey, env)

	var coreAPIClient coreapi.Client
	coreAPIClient.New(cfg.ServerKey, env)

	return &MidtransClient{
		Snap:      snapClient,
		CoreAPI:   coreAPIClient,
		ClientKey: cfg.ClientKey,
	}
}

// CreateTransaction opens a Snap payment page. The SDK returns a typed
// *midtrans.Error, which is only converted to error when non-nil.
func (m *MidtransClient) CreateTransaction(req *snap.Request) (*snap.Response, error) {
	res, mErr := m.Snap.CreateTransaction(req)
	if mErr != nil {
		return nil, mErr
	}
	return res, nil
}

func (m *MidtransClient) TransactionStatus(orderID string) (*coreapi.TransactionStatusResponse, error) {
	res, mErr := m.CoreAPI.CheckTransaction(orderID)
	if mErr != nil {
		return nil, mErr
	}
	return res, nil
}

// IsPaid reports whether a transaction status means the money was captured.
func IsPaid(transactionStatus, fraudStatus string) bool {
	switch transactionStatus {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "" || fraudStatus == "accept"
	}
	return false
}

// VerifySignature checks the signature_key of a payment notification:
// sha512(order_id + status_code + gross_amount + server key).
func (m *MidtransClient) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + m.Snap.ServerKey))
	expected := hex.EncodeToString(hash[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
