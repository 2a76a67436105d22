package yagoutpay

import "strings"

// Fixed transaction constants for the Ethiopian Birr deployment.
const (
	CountryETH     = "ETH"
	CurrencyETB    = "ETB"
	TxnTypeSale    = "SALE"
	ChannelWeb     = "WEB"
	ChannelAPI     = "API"
	custIsLoggedIn = "Y"
)

// Credentials holds the process-wide gateway configuration. Loaded
// once at startup and immutable afterwards.
type Credentials struct {
	MerchantID   string
	AggregatorID string
	Key          []byte // 32 bytes, see DecodeKey
	PostURL      string
	APIURL       string
}

// Validate checks that every required credential is present.
func (c *Credentials) Validate() error {
	if c.MerchantID == "" {
		return &ConfigError{Field: "merchant id", Reason: "not set"}
	}
	if c.AggregatorID == "" {
		return &ConfigError{Field: "aggregator id", Reason: "not set"}
	}
	if len(c.Key) != KeySize {
		return &ConfigError{Field: "encryption key", Reason: "wrong length"}
	}
	if c.PostURL == "" {
		return &ConfigError{Field: "post url", Reason: "not set"}
	}
	if c.APIURL == "" {
		return &ConfigError{Field: "api url", Reason: "not set"}
	}
	return nil
}

// PGDefaults are the channel defaults applied when an API-direct
// request does not pick a payment gateway explicitly. Kept in
// configuration so deployments can audit and override them.
type PGDefaults struct {
	PGID       string
	Paymode    string
	SchemeID   string
	WalletType string
}

// PaymentRequest is the normalized payment-initiation request both
// channels serialize from.
type PaymentRequest struct {
	OrderNo      string
	Amount       string // decimal string, exactly two fractional digits
	CustomerName string
	EmailID      string
	MobileNo     string
	SuccessURL   string
	FailureURL   string

	BillAddress string
	BillCity    string
	BillState   string
	BillCountry string
	BillZip     string

	ShipAddress  string
	ShipCity     string
	ShipState    string
	ShipCountry  string
	ShipZip      string
	ShipDays     string
	AddressCount string

	ItemCount    string
	ItemValue    string
	ItemCategory string

	UDF1 string
	UDF2 string
	UDF3 string
	UDF4 string
	UDF5 string
	UDF6 string
	UDF7 string

	// API-direct gateway selection.
	PGID       string
	Paymode    string
	SchemeID   string
	WalletType string
}

// BuildHostedPayload serializes the request for the hosted-redirect
// channel: sections joined with '~', fields within a section joined
// with '|'. The gateway parses positionally, so every position is
// emitted even when empty.
func BuildHostedPayload(req *PaymentRequest, creds *Credentials) string {
	sections := [][]string{
		// Txn_Details
		{creds.AggregatorID, creds.MerchantID, req.OrderNo, req.Amount,
			CountryETH, CurrencyETB, TxnTypeSale, req.SuccessURL, req.FailureURL, ChannelWeb},
		// Pg_Details (blank for aggregator-hosted)
		{"", "", "", ""},
		// Card_Details (blank for aggregator-hosted)
		{"", "", "", "", ""},
		// Cust_Details
		{req.CustomerName, req.EmailID, req.MobileNo, "", custIsLoggedIn},
		// Bill_Details
		{req.BillAddress, req.BillCity, req.BillState, req.BillCountry, req.BillZip},
		// Ship_Details
		{req.ShipAddress, req.ShipCity, req.ShipState, req.ShipCountry, req.ShipZip, req.ShipDays, req.AddressCount},
		// Item_Details
		{req.ItemCount, req.ItemValue, req.ItemCategory},
		// UPI_Details
		{"", ""},
		// Other_Details
		{req.UDF1, req.UDF2, req.UDF3, req.UDF4, req.UDF5},
	}

	joined := make([]string, len(sections))
	for i, fields := range sections {
		joined[i] = strings.Join(fields, "|")
	}
	return strings.Join(joined, "~")
}

// apiPayload is the structured form the API-direct channel encrypts.
// Field names follow the gateway's documented JSON contract, spelling
// quirks included ("sucessUrl").
type apiPayload struct {
	CardDetails  apiCardDetails  `json:"card_details"`
	OtherDetails apiOtherDetails `json:"other_details"`
	ShipDetails  apiShipDetails  `json:"ship_details"`
	TxnDetails   apiTxnDetails   `json:"txn_details"`
	ItemDetails  apiItemDetails  `json:"item_details"`
	CustDetails  apiCustDetails  `json:"cust_details"`
	PGDetails    apiPGDetails    `json:"pg_details"`
	BillDetails  apiBillDetails  `json:"bill_details"`
}

type apiCardDetails struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
	CardName    string `json:"cardName"`
}

type apiOtherDetails struct {
	UDF1 string `json:"udf1"`
	UDF2 string `json:"udf2"`
	UDF3 string `json:"udf3"`
	UDF4 string `json:"udf4"`
	UDF5 string `json:"udf5"`
	UDF6 string `json:"udf6"`
	UDF7 string `json:"udf7"`
}

type apiShipDetails struct {
	ShipAddress  string `json:"shipAddress"`
	ShipCity     string `json:"shipCity"`
	ShipState    string `json:"shipState"`
	ShipCountry  string `json:"shipCountry"`
	ShipZip      string `json:"shipZip"`
	ShipDays     string `json:"shipDays"`
	AddressCount string `json:"addressCount"`
}

type apiTxnDetails struct {
	AgID            string `json:"agId"`
	MeID            string `json:"meId"`
	OrderNo         string `json:"orderNo"`
	Amount          string `json:"amount"`
	Country         string `json:"country"`
	Currency        string `json:"currency"`
	TransactionType string `json:"transactionType"`
	SuccessURL      string `json:"sucessUrl"`
	FailureURL      string `json:"failureUrl"`
	Channel         string `json:"channel"`
}

type apiItemDetails struct {
	ItemCount    string `json:"itemCount"`
	ItemValue    string `json:"itemValue"`
	ItemCategory string `json:"itemCategory"`
}

type apiCustDetails struct {
	CustomerName string `json:"customerName"`
	EmailID      string `json:"emailId"`
	MobileNumber string `json:"mobileNumber"`
	UniqueID     string `json:"uniqueId"`
	IsLoggedIn   string `json:"isLoggedIn"`
}

type apiPGDetails struct {
	PGID       string `json:"pg_Id"`
	Paymode    string `json:"paymode"`
	SchemeID   string `json:"scheme_Id"`
	WalletType string `json:"wallet_type"`
}

type apiBillDetails struct {
	BillAddress string `json:"billAddress"`
	BillCity    string `json:"billCity"`
	BillState   string `json:"billState"`
	BillCountry string `json:"billCountry"`
	BillZip     string `json:"billZip"`
}

// BuildAPIPayload builds the nested object for the API-direct
// channel. Gateway-selection fields fall back to the configured
// defaults when the request leaves them empty.
func BuildAPIPayload(req *PaymentRequest, creds *Credentials, defaults PGDefaults) *apiPayload {
	return &apiPayload{
		CardDetails: apiCardDetails{},
		OtherDetails: apiOtherDetails{
			UDF1: req.UDF1, UDF2: req.UDF2, UDF3: req.UDF3, UDF4: req.UDF4,
			UDF5: req.UDF5, UDF6: req.UDF6, UDF7: req.UDF7,
		},
		ShipDetails: apiShipDetails{
			ShipAddress:  req.ShipAddress,
			ShipCity:     req.ShipCity,
			ShipState:    req.ShipState,
			ShipCountry:  req.ShipCountry,
			ShipZip:      req.ShipZip,
			ShipDays:     req.ShipDays,
			AddressCount: req.AddressCount,
		},
		TxnDetails: apiTxnDetails{
			AgID:            creds.AggregatorID,
			MeID:            creds.MerchantID,
			OrderNo:         req.OrderNo,
			Amount:          req.Amount,
			Country:         CountryETH,
			Currency:        CurrencyETB,
			TransactionType: TxnTypeSale,
			Channel:         ChannelAPI,
		},
		ItemDetails: apiItemDetails{
			ItemCount:    req.ItemCount,
			ItemValue:    req.ItemValue,
			ItemCategory: req.ItemCategory,
		},
		CustDetails: apiCustDetails{
			CustomerName: req.CustomerName,
			EmailID:      req.EmailID,
			MobileNumber: req.MobileNo,
			IsLoggedIn:   custIsLoggedIn,
		},
		PGDetails: apiPGDetails{
			PGID:       firstNonEmpty(req.PGID, defaults.PGID),
			Paymode:    firstNonEmpty(req.Paymode, defaults.Paymode),
			SchemeID:   firstNonEmpty(req.SchemeID, defaults.SchemeID),
			WalletType: firstNonEmpty(req.WalletType, defaults.WalletType),
		},
		BillDetails: apiBillDetails{
			BillAddress: req.BillAddress,
			BillCity:    req.BillCity,
			BillState:   req.BillState,
			BillCountry: req.BillCountry,
			BillZip:     req.BillZip,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
