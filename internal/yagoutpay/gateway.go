package yagoutpay

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"cartflow/internal/store"
)

// CallbackKind tells ProcessCallback which leg of the redirect pair
// the gateway hit.
type CallbackKind string

const (
	CallbackSuccess CallbackKind = "success"
	CallbackFailure CallbackKind = "failure"
)

// InitiateResult is what the storefront needs to auto-submit the
// hosted-checkout redirect form.
type InitiateResult struct {
	MerchantID      string `json:"me_id"`
	MerchantRequest string `json:"merchant_request"`
	Hash            string `json:"hash"`
	PostURL         string `json:"post_url"`
}

// Outcome is the normalized transaction result surfaced to callers
// after an API call or a callback.
type Outcome struct {
	OrderID       string         `json:"order_id"`
	Amount        string         `json:"amount"`
	Status        string         `json:"status"`
	StatusMessage string         `json:"status_message,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	ErrorCode     string         `json:"error_code,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	Response      map[string]any `json:"response,omitempty"`
}

// Gateway orchestrates the build-encrypt-send and receive-decrypt-
// parse legs of the YagoutPay integration. The codec stays pure; all
// state lives in the injected TransactionStore.
type Gateway struct {
	creds    *Credentials
	defaults PGDefaults
	client   *Client
	txns     store.TransactionStore
	logger   *zap.Logger
}

func NewGateway(creds *Credentials, defaults PGDefaults, client *Client, txns store.TransactionStore, logger *zap.Logger) (*Gateway, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &Gateway{
		creds:    creds,
		defaults: defaults,
		client:   client,
		txns:     txns,
		logger:   logger,
	}, nil
}

// Initiate builds and encrypts the hosted-channel payload, computes
// the integrity hash and records the transaction as initiated.
func (g *Gateway) Initiate(ctx context.Context, req *PaymentRequest) (*InitiateResult, error) {
	plain := BuildHostedPayload(req, g.creds)

	encrypted, err := Encrypt(plain, g.creds.Key)
	if err != nil {
		return nil, err
	}
	hash, err := Hash(g.creds.MerchantID, req.OrderNo, req.Amount, g.creds.Key)
	if err != nil {
		return nil, err
	}

	if err := g.recordInitiated(ctx, req, "hosted"); err != nil {
		return nil, err
	}

	g.logger.Info("payment initiated",
		zap.String("order_no", req.OrderNo),
		zap.String("amount", req.Amount),
		zap.String("channel", "hosted"))

	return &InitiateResult{
		MerchantID:      g.creds.MerchantID,
		MerchantRequest: encrypted,
		Hash:            hash,
		PostURL:         g.creds.PostURL,
	}, nil
}

// CallAPI runs the API-direct channel end to end: encrypt, POST,
// decrypt the gateway's response and finalize the record.
func (g *Gateway) CallAPI(ctx context.Context, req *PaymentRequest) (*Outcome, error) {
	payload := BuildAPIPayload(req, g.creds, g.defaults)
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &EncodingError{Op: "api payload encode", Err: err}
	}
	encrypted, err := Encrypt(string(raw), g.creds.Key)
	if err != nil {
		return nil, err
	}

	if err := g.recordInitiated(ctx, req, "api"); err != nil {
		return nil, err
	}

	resp, err := g.client.PostPayment(ctx, g.creds.APIURL, g.creds.MerchantID, encrypted)
	if err != nil {
		if _, casErr := g.txns.CompareAndSwapStatus(ctx, req.OrderNo, store.StatusInitiated, store.StatusFailed, ""); casErr != nil {
			g.logger.Warn("failed to mark transaction failed", zap.String("order_no", req.OrderNo), zap.Error(casErr))
		}
		return nil, err
	}

	outcome := &Outcome{
		OrderID:       req.OrderNo,
		Amount:        req.Amount,
		Status:        resp.Status,
		StatusMessage: resp.StatusMessage,
	}
	if resp.Response != "" {
		g.decryptAPIResponse(resp.Response, outcome)
	}

	next := store.StatusFailed
	if strings.EqualFold(resp.Status, "Success") {
		next = store.StatusSuccess
	}
	swapped, err := g.txns.CompareAndSwapStatus(ctx, req.OrderNo, store.StatusInitiated, next, outcome.TransactionID)
	if err != nil {
		g.logger.Warn("transaction status update failed", zap.String("order_no", req.OrderNo), zap.Error(err))
	} else if !swapped {
		g.logger.Warn("transaction already finalized", zap.String("order_no", req.OrderNo))
	}

	g.logger.Info("api payment completed",
		zap.String("order_no", req.OrderNo),
		zap.String("gateway_status", resp.Status))

	return outcome, nil
}

// decryptAPIResponse fills outcome from the encrypted response blob.
// A blob we cannot decrypt or parse is logged and skipped; the
// gateway's plain status/statusMessage still stand.
func (g *Gateway) decryptAPIResponse(encrypted string, outcome *Outcome) {
	decrypted, err := Decrypt(encrypted, g.creds.Key)
	if err != nil {
		g.logger.Warn("could not decrypt gateway response", zap.String("order_no", outcome.OrderID), zap.Error(err))
		return
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(decrypted), &parsed); err != nil {
		g.logger.Warn("could not parse decrypted gateway response", zap.String("order_no", outcome.OrderID), zap.Error(err))
		return
	}
	outcome.Response = parsed
	if id, ok := parsed["transactionId"].(string); ok {
		outcome.TransactionID = id
	}
}

// ProcessCallback handles a gateway-originated success/failure
// callback. Inbound handling is deliberately lenient: the gateway
// will not retry indefinitely, so a decrypt failure degrades to a
// best-effort outcome instead of propagating.
//
// The inbound hash field is not re-verified against the decrypted
// payload; callers trusting these fields inherit that gap.
func (g *Gateway) ProcessCallback(ctx context.Context, fields map[string]string, kind CallbackKind) *Outcome {
	outcome := &Outcome{
		OrderID:       firstNonEmpty(fields["order_no"], fields["order_id"], "unknown"),
		Amount:        firstNonEmpty(fields["amount"], "0.00"),
		TransactionID: firstNonEmpty(fields["transaction_id"], fields["txn_id"]),
		Status:        string(kind),
	}
	if kind == CallbackFailure {
		outcome.ErrorCode = firstNonEmpty(fields["error_code"], "PAYMENT_FAILED")
		outcome.ErrorMessage = firstNonEmpty(fields["error_message"], "Payment could not be completed")
	}

	if mr := fields["merchant_response"]; mr != "" {
		g.mergeMerchantResponse(mr, outcome)
	}

	next := store.StatusSuccess
	if kind == CallbackFailure {
		next = store.StatusFailed
	}
	swapped, err := g.txns.CompareAndSwapStatus(ctx, outcome.OrderID, store.StatusInitiated, next, outcome.TransactionID)
	switch {
	case err != nil:
		g.logger.Warn("callback for unknown or failing transaction",
			zap.String("order_no", outcome.OrderID), zap.Error(err))
	case !swapped:
		g.logger.Info("callback for already finalized transaction",
			zap.String("order_no", outcome.OrderID))
	}

	g.logger.Info("callback processed",
		zap.String("order_no", outcome.OrderID),
		zap.String("kind", string(kind)))

	return outcome
}

// mergeMerchantResponse decrypts the callback blob and folds whatever
// fields it can recover into the outcome. Best effort only.
func (g *Gateway) mergeMerchantResponse(encrypted string, outcome *Outcome) {
	decrypted, err := Decrypt(encrypted, g.creds.Key)
	if err != nil {
		g.logger.Warn("could not decrypt merchant_response",
			zap.String("order_no", outcome.OrderID), zap.Error(err))
		return
	}

	// The blob is either the gateway's JSON form or the same
	// tilde/pipe section layout as the outbound request.
	var parsed map[string]any
	if err := json.Unmarshal([]byte(decrypted), &parsed); err == nil {
		outcome.Response = parsed
		if id, ok := parsed["transactionId"].(string); ok && id != "" {
			outcome.TransactionID = id
		}
		return
	}

	sections := strings.Split(decrypted, "~")
	if len(sections) > 0 {
		txn := strings.Split(sections[0], "|")
		// Positional Txn_Details: order number and amount sit at
		// indices 2 and 3.
		if len(txn) > 3 {
			if outcome.OrderID == "unknown" && txn[2] != "" {
				outcome.OrderID = txn[2]
			}
			if txn[3] != "" {
				outcome.Amount = txn[3]
			}
		}
	}
}

// Transaction looks up a record; unknown orders return
// store.ErrNotFound rather than an error condition.
func (g *Gateway) Transaction(ctx context.Context, orderNo string) (*store.TransactionRecord, error) {
	return g.txns.Get(ctx, orderNo)
}

func (g *Gateway) recordInitiated(ctx context.Context, req *PaymentRequest, channel string) error {
	now := time.Now().UTC()
	return g.txns.Put(ctx, &store.TransactionRecord{
		OrderNo:      req.OrderNo,
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		EmailID:      req.EmailID,
		MobileNo:     req.MobileNo,
		BillAddress:  req.BillAddress,
		BillCity:     req.BillCity,
		BillState:    req.BillState,
		BillCountry:  req.BillCountry,
		BillZip:      req.BillZip,
		Channel:      channel,
		Status:       store.StatusInitiated,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
