package models

// InitiatePaymentRequest is the hosted-channel checkout body posted
// by the storefront. Field names follow the gateway integration
// contract. The "amount" tag is a custom validation registered with
// Echo's validator: decimal string with exactly two fractional
// digits.
type InitiatePaymentRequest struct {
	OrderNo      string `json:"order_no" validate:"required"`
	Amount       string `json:"amount" validate:"required,amount"`
	SuccessURL   string `json:"success_url" validate:"required,url"`
	FailureURL   string `json:"failure_url" validate:"required,url"`
	CustomerName string `json:"customer_name"`
	EmailID      string `json:"email_id" validate:"required,email"`
	MobileNo     string `json:"mobile_no" validate:"required,numeric,min=7,max=20"`

	BillAddress string `json:"bill_address"`
	BillCity    string `json:"bill_city"`
	BillState   string `json:"bill_state"`
	BillCountry string `json:"bill_country"`
	BillZip     string `json:"bill_zip"`
}

// APIPaymentRequest is the API-direct checkout body. It extends the
// hosted request with shipping/item/user-defined fields and the
// gateway-selection block.
type APIPaymentRequest struct {
	OrderNo      string `json:"order_no" validate:"required"`
	Amount       string `json:"amount" validate:"required,amount"`
	CustomerName string `json:"customer_name"`
	EmailID      string `json:"email_id" validate:"required,email"`
	MobileNo     string `json:"mobile_no" validate:"required,numeric,min=7,max=20"`

	BillAddress string `json:"bill_address"`
	BillCity    string `json:"bill_city"`
	BillState   string `json:"bill_state"`
	BillCountry string `json:"bill_country"`
	BillZip     string `json:"bill_zip"`

	ShipAddress  string `json:"ship_address"`
	ShipCity     string `json:"ship_city"`
	ShipState    string `json:"ship_state"`
	ShipCountry  string `json:"ship_country"`
	ShipZip      string `json:"ship_zip"`
	ShipDays     string `json:"ship_days"`
	AddressCount string `json:"address_count"`

	ItemCount    string `json:"item_count"`
	ItemValue    string `json:"item_value"`
	ItemCategory string `json:"item_category"`

	UDF1 string `json:"udf_1"`
	UDF2 string `json:"udf_2"`
	UDF3 string `json:"udf_3"`
	UDF4 string `json:"udf_4"`
	UDF5 string `json:"udf_5"`
	UDF6 string `json:"udf_6"`
	UDF7 string `json:"udf_7"`

	PGID       string `json:"pg_id"`
	Paymode    string `json:"paymode"`
	SchemeID   string `json:"scheme_id"`
	WalletType string `json:"wallet_type"`
}

// APIResponse is the common JSON envelope for the /api routes.
type APIResponse struct {
	Status bool        `json:"status"`
	Msg    string      `json:"msg"`
	Obj    interface{} `json:"obj"`
}
